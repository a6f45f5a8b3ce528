package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/interesting/config"
	"github.com/s0up4200/interesting/flickr"
	"github.com/s0up4200/interesting/flickr/exec"
	"github.com/s0up4200/interesting/notify"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *flickr.Client
	requests *exec.Go
	notifier *notify.Notifier

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "interesting",
	Short: "Browse Flickr's interesting photos from the terminal",
	Long: `interesting fetches the daily Flickr interestingness list page by page,
optionally filters it with an expression, and prints the photos.

Network, HTTP and decoding failures are reported as short notifications.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build information shown by the version command
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(photosCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	requests = exec.NewGo()
	opts := []flickr.Option{
		flickr.WithEndpoint(cfg.Flickr.Endpoint),
		flickr.WithTimeout(cfg.Flickr.Timeout),
		flickr.WithUserAgent("interesting/" + version),
		flickr.WithExecutors(requests, exec.Sync),
	}
	if cfg.Flickr.Breaker.Enabled {
		opts = append(opts, flickr.WithCircuitBreaker("flickr", cfg.Flickr.Breaker.Failures, cfg.Flickr.Breaker.CoolDown))
	}

	client, err = flickr.NewHTTPClient(cfg.Flickr.APIKey, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Flickr client: %w", err)
	}

	notifier = notify.NewNotifier(
		notify.NewConsoleToaster(os.Stderr),
		logger,
		notify.WithDuration(cfg.Notify.Duration),
	)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Skips config loading
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "interesting %s (built %s)\n", version, buildTime)
	},
}
