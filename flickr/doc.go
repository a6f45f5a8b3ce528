// Package flickr provides a client for the Flickr interestingness list.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Service: a synchronous transport. HTTPService talks to the REST API,
//     MockService serves deterministic fixtures keyed by page.
//   - Client: validates a call, refuses to start it on the primary execution
//     context, runs it on an executor and delivers the outcome to a Callback.
//   - Failure: the classified reason a call did not succeed.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := flickr.NewHTTPClient(
//		"your-api-key",
//		logger,
//		flickr.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := exec.WithWorker(context.Background())
//	err = client.GetInterestingPhotos(ctx, 1, 50, flickr.CallbackFuncs{
//		OnSuccess: func(page *flickr.PhotoPage, _ *flickr.Response) {
//			fmt.Println(page.Len())
//		},
//		OnFailure: func(f flickr.Failure) {
//			fmt.Println(f)
//		},
//	})
//
// # Error Handling
//
// Every completed call yields exactly one outcome: a *PhotoPage, or a Failure
// which is one of
//
//   - *NetworkFailure: no response was received
//   - *HTTPFailure: a response carried a non-success status
//   - *ConversionFailure: the body could not be decoded
//   - *UnexpectedFailure: anything else
//
// Use a type switch to handle them:
//
//	switch f := f.(type) {
//	case *flickr.HTTPFailure:
//		if f.IsUnauthorized() {
//			// Handle auth failure
//		}
//	}
//
// Calls that cannot be started return ErrInvalidArgument or ErrPrimaryContext
// directly and never reach the callback.
package flickr
