package cmd

import (
	"io"

	"github.com/jackc/pgcopy"
	"github.com/jackc/pgcopy/log/zapadapter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	configPath string
	schema     string
	logLevel   string
	flushBytes int
}

// NewRootCmd returns the pgcopy command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "pgcopy",
		Short: "Encode and decode PostgreSQL COPY data",
		Long: `pgcopy converts rows between PostgreSQL's text representation and the
COPY BINARY format, and normalizes literals to their canonical text.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.schema, "schema", "", "comma separated column types, optionally name:type")
	flags.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn, error or none")
	flags.IntVar(&opts.flushBytes, "flush-bytes", 0, "bytes buffered before output is written")

	rootCmd.AddCommand(newFormatCmd())
	rootCmd.AddCommand(newEncodeCmd(opts))
	rootCmd.AddCommand(newDecodeCmd(opts))
	return rootCmd
}

// Execute runs the pgcopy command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// load merges the config file and flags.
func (o *rootOptions) load(cmd *cobra.Command) (*Config, error) {
	config := DefaultConfig()
	if o.configPath != "" {
		var err error
		if config, err = LoadConfig(o.configPath); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("schema") {
		config.Schema = o.schema
	}
	if cmd.Flags().Changed("log-level") {
		config.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("flush-bytes") {
		config.FlushBytes = o.flushBytes
	}
	return config, nil
}

// codecOptions builds the encoder or decoder options for config, logging
// through zap to w.
func codecOptions(config *Config, w io.Writer) ([]pgcopy.Option, error) {
	level, err := config.logLevel()
	if err != nil {
		return nil, err
	}

	return []pgcopy.Option{
		pgcopy.WithLogger(newLogger(w), level),
		pgcopy.WithFlushThreshold(config.FlushBytes),
	}, nil
}

func newLogger(w io.Writer) pgcopy.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), zapcore.DebugLevel)
	return zapadapter.NewLogger(zap.New(core))
}
