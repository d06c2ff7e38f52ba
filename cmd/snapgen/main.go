package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/studiowebux/snapgen/internal/app"
	"github.com/studiowebux/snapgen/internal/cli"
	"github.com/studiowebux/snapgen/internal/config"
	"github.com/studiowebux/snapgen/internal/keybinds"
	"github.com/studiowebux/snapgen/internal/logging"
	"github.com/studiowebux/snapgen/internal/tui"
	"github.com/studiowebux/snapgen/internal/types"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snapgen",
	Short: "snapgen - random strings and passphrases from a generation service",
	Long: `snapgen is a client for a remote string and passphrase generation service.

Run without arguments to start the interactive TUI. Subcommands generate from
the command line using the same saved preferences.

Examples:
  snapgen                              # Start interactive TUI
  snapgen strings -l 24 -n 5           # Five 24-character strings
  snapgen strings -t upper,numbers     # Restrict character types
  snapgen passphrase -w 6 --dashes     # One six-word passphrase
  snapgen quick passphrase             # Fixed-parameter endpoint
  snapgen health --watch               # Follow service capacity
  snapgen mock                         # Local mock service on :5000
  snapgen --url http://10.0.0.5:5000   # Point at another service`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var stringsCmd = &cobra.Command{
	Use:     "strings",
	Aliases: []string{"s"},
	Short:   "Generate random strings",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, types.TabStrings)
	},
}

var passphraseCmd = &cobra.Command{
	Use:     "passphrase",
	Aliases: []string{"p"},
	Short:   "Generate a passphrase",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, types.TabPassphrase)
	},
}

var quickCmd = &cobra.Command{
	Use:       "quick <strings|passphrase>",
	Short:     "Call a fixed-parameter endpoint",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(types.TabStrings), string(types.TabPassphrase)},
	RunE: func(cmd *cobra.Command, args []string) error {
		form, ok := types.ParseTabID(args[0])
		if !ok {
			return fmt.Errorf("unknown kind %q (use strings or passphrase)", args[0])
		}
		env, err := setup(true)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx, cancel := signalContext()
		defer cancel()
		return cli.Quick(ctx, env.Client, form, flagOutput, os.Stdout)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show service health and capacity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(true)
		if err != nil {
			return err
		}
		defer env.Close()

		interval := flagInterval
		if interval <= 0 {
			interval = env.Options.HealthInterval
		}

		ctx, cancel := signalContext()
		defer cancel()
		return cli.Health(ctx, env.Client, cli.HealthOptions{
			Format:   flagOutput,
			Watch:    flagWatch,
			Interval: interval,
		}, os.Stdout)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [strings|passphrase]",
	Short: "List recorded generations (values are never stored)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(false)
		if err != nil {
			return err
		}
		defer env.Close()

		opts := cli.HistoryOptions{
			Format: flagOutput,
			Limit:  flagLimit,
			Clear:  flagClear,
		}
		if len(args) > 0 {
			opts.Kind = args[0]
		}
		return cli.History(env.History, opts, os.Stdout)
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock [config-file]",
	Short: "Run a local mock generation service",
	Long: `Run a local mock of the generation service.

Without a config file every endpoint is served by built-in generators.
Use --init to write that config as a starting point for custom routes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		logger := logging.Setup(config.LogFile, flagLogLevel)
		defer logging.Close()

		opts := cli.MockOptions{
			InitPath: flagMockInit,
			Host:     flagMockHost,
			Port:     flagMockPort,
			Capacity: flagMockCapacity,
			Quiet:    flagMockQuiet,
		}
		if len(args) > 0 {
			opts.ConfigPath = args[0]
		}

		ctx, cancel := signalContext()
		defer cancel()
		return cli.Mock(ctx, opts, logger, os.Stdout)
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Validate and list keybindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.Keybinds(config.KeybindsFile, flagKeybindsInit, os.Stdout)
	},
}

// Global flags
var (
	flagURL       string
	flagConfig    string
	flagLogLevel  string
	flagEphemeral bool
)

// Generation flags
var (
	flagOutput     string
	flagPick       bool
	flagLength     int
	flagCount      int
	flagCharTypes  []string
	flagWordCount  int
	flagCapitalize bool
	flagDashes     bool
	flagDigit      bool
)

// Other command flags
var (
	flagWatch        bool
	flagInterval     time.Duration
	flagLimit        int
	flagClear        bool
	flagMockInit     string
	flagMockHost     string
	flagMockPort     int
	flagMockCapacity int
	flagMockQuiet    bool
	flagKeybindsInit bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagURL, "url", "u", "", "Service URL (overrides config and "+config.EnvServiceURL+")")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default ~/.snapgen/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Do not read or save preferences and history")

	for _, cmd := range []*cobra.Command{stringsCmd, passphraseCmd, quickCmd, healthCmd, historyCmd} {
		cmd.Flags().StringVarP(&flagOutput, "output", "o", cli.FormatText, "Output format (text/json/yaml)")
	}
	for _, cmd := range []*cobra.Command{stringsCmd, passphraseCmd} {
		cmd.Flags().BoolVar(&flagPick, "pick", false, "Choose one result and copy it to the clipboard")
	}

	stringsCmd.Flags().IntVarP(&flagLength, "length", "l", app.LengthDefault, fmt.Sprintf("String length (%d-%d)", app.LengthMin, app.LengthMax))
	stringsCmd.Flags().IntVarP(&flagCount, "count", "n", app.CountDefault, "Number of strings (capped by available capacity)")
	stringsCmd.Flags().StringSliceVarP(&flagCharTypes, "types", "t", nil, "Character types (uppercase,lowercase,numbers,special)")

	passphraseCmd.Flags().IntVarP(&flagWordCount, "words", "w", app.WordCountDefault, fmt.Sprintf("Word count (%d-%d)", app.WordCountMin, app.WordCountMax))
	passphraseCmd.Flags().BoolVar(&flagCapitalize, "capitalize", app.CapitalizeDefault, "Capitalize words")
	passphraseCmd.Flags().BoolVar(&flagDashes, "dashes", app.DashesDefault, "Separate words with dashes")
	passphraseCmd.Flags().BoolVar(&flagDigit, "digit", app.DigitDefault, "Add a digit")

	healthCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Poll until interrupted")
	healthCmd.Flags().DurationVar(&flagInterval, "interval", 0, "Poll interval (default from config)")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 50, "Maximum entries to list")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all history")

	mockCmd.Flags().StringVar(&flagMockInit, "init", "", "Write the built-in mock config to this path and exit")
	mockCmd.Flags().StringVar(&flagMockHost, "host", "", "Listen host (default localhost)")
	mockCmd.Flags().IntVarP(&flagMockPort, "port", "p", 0, "Listen port (default 5000)")
	mockCmd.Flags().IntVar(&flagMockCapacity, "capacity", 0, "Snapshots available (default 100)")
	mockCmd.Flags().BoolVarP(&flagMockQuiet, "quiet", "q", false, "Do not print requests")

	keybindsCmd.Flags().BoolVar(&flagKeybindsInit, "init", false, "Write the default keybindings file")

	rootCmd.AddCommand(stringsCmd)
	rootCmd.AddCommand(passphraseCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(keybindsCmd)
}

func setup(ephemeral bool) (*cli.Env, error) {
	return cli.Setup(cli.SetupOptions{
		ConfigPath: flagConfig,
		ServiceURL: flagURL,
		LogLevel:   flagLogLevel,
		Ephemeral:  ephemeral || flagEphemeral,
	})
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runGenerate generates from the command line. Only flags the user set
// override the saved preferences.
func runGenerate(cmd *cobra.Command, form types.TabID) error {
	env, err := setup(false)
	if err != nil {
		return err
	}
	defer env.Close()

	opts := cli.GenerateOptions{
		Form:         form,
		OutputFormat: flagOutput,
		Pick:         flagPick,
	}
	flags := cmd.Flags()
	if flags.Changed("length") {
		opts.Length = &flagLength
	}
	if flags.Changed("count") {
		opts.Count = &flagCount
	}
	if flags.Changed("types") {
		opts.CharTypes = flagCharTypes
		if opts.CharTypes == nil {
			opts.CharTypes = []string{}
		}
	}
	if flags.Changed("words") {
		opts.WordCount = &flagWordCount
	}
	if flags.Changed("capitalize") {
		opts.Capitalize = &flagCapitalize
	}
	if flags.Changed("dashes") {
		opts.Dashes = &flagDashes
	}
	if flags.Changed("digit") {
		opts.Digit = &flagDigit
	}

	ctx, cancel := signalContext()
	defer cancel()
	return cli.Generate(ctx, app.New(env.AppOptions()), opts, os.Stdout)
}

// runTUI starts the interactive TUI
func runTUI() error {
	env, err := setup(false)
	if err != nil {
		return err
	}
	defer env.Close()

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using default keybindings)\n", err)
		registry = keybinds.NewDefaultRegistry()
	}
	if result := keybinds.NewValidator().ValidateRegistry(registry); result.HasErrors() {
		fmt.Fprint(os.Stderr, result.String())
		fmt.Fprintln(os.Stderr, "Warning: using default keybindings, run 'snapgen keybinds' for details")
		registry = keybinds.NewDefaultRegistry()
	}

	return tui.Run(tui.Options{
		App:      env.AppOptions(),
		Keybinds: registry,
		Closers:  env.Closers(),
	})
}
