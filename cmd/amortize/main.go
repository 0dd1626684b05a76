package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/amortize/internal/calculator"
	"github.com/iwvelando/amortize/internal/config"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/output"
	"github.com/iwvelando/amortize/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time.
var Version = "dev"

// initializeLogger creates a zap logger based on the logging settings.
func initializeLogger(loggingConfig config.LoggingConfig) (*zap.Logger, error) {
	level := loggingConfig.Level
	if level == "" {
		level = constants.DefaultLogLevel
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = constants.DefaultLogFormat
	}
	if err := validation.ValidateLogFormat(format); err != nil {
		return nil, err
	}

	var config zap.Config
	if format == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

type options struct {
	configLocation string
	envFile        string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "amortize <filename> | <key=value>...",
		Short: "Loan amortization calculator",
		Long: `Derives the missing one of principal (p), annual rate in percent (r),
term in months (n) and monthly payment (m) from the other three, then prints
the loan report. Optional keys: x (extra monthly payment), s and e (first and
last month of extra payments), v (print the schedule unless "false") and
d (first payment month, YYYY-MM).`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configLocation, "config", constants.DefaultConfigFile, "path to settings file")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file supplying AMORTIZE_<KEY> values")
	flags.String("output-format", "", "type of output override: "+strings.Join(validation.OutputFormats, ", "))
	flags.String("log-level", "", "log level override (debug, info, warn, error)")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		_, err := fmt.Fprintf(stdout, "Usage: %s <filename> or <parameters>\n", cmd.Name())
		return err
	}

	settingsPath := opts.configLocation
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(settingsPath); errors.Is(err, os.ErrNotExist) {
			settingsPath = ""
		}
	}
	settings, err := config.LoadSettings(settingsPath, cmd.Flags())
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load settings at %s\", \"error\": \"%v\"}\n", settingsPath, err)
		return err
	}

	logger, err := initializeLogger(settings.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := validation.ValidateOutputFormat(settings.Output.Format); err != nil {
		logger.Error(err.Error(),
			zap.String("op", "main"),
		)
		return err
	}

	report, err := calculate(logger, opts.envFile, settings.Output.Format, args)
	if err != nil {
		logger.Debug("loan calculation failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		fmt.Fprintln(stderr, constants.BadInformationMessage)
		return err
	}

	return output.Write(stdout, settings.Output.Format, report)
}

// calculate loads the loan properties from args and computes the report.
func calculate(logger *zap.Logger, envFile, format string, args []string) (*calculator.Report, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	props, err := loadProperties(args)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded loan properties",
		zap.String("op", "main"),
		zap.Strings("keys", props.Keys()),
	)

	calc, err := calculator.New(logger, props)
	if err != nil {
		return nil, err
	}
	// CSV lists every month whether or not v is set.
	calc.KeepSchedule(format == constants.OutputFormatCSV)
	return calc.Run()
}

// loadProperties reads a single argument as a properties file unless it
// names no file and looks like a key=value token. Several arguments are
// always tokens.
func loadProperties(args []string) (*config.Properties, error) {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			return config.ReadPropertiesFile(args[0])
		}
		if !strings.Contains(args[0], "=") {
			return config.ReadPropertiesFile(args[0])
		}
	}
	return config.NewProperties(args), nil
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
