package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/taintflow/analyzer"
	"github.com/viant/taintflow/analyzer/flow"
	"github.com/viant/taintflow/config"
	"github.com/viant/taintflow/observability"
	"go.uber.org/zap/zapcore"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitNoSource = 1
	ExitFailure  = 2
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func fail(code int, err error) error {
	return &exitError{code: code, err: err}
}

type command struct {
	viper   *viper.Viper
	cfgFile string
	config  *config.Config
	stdout  io.Writer
	stderr  io.Writer
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := &command{viper: viper.New(), stdout: stdout, stderr: stderr}
	root := cmd.root()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(context.Background())
	observability.Sync()
	if err == nil {
		return ExitOK
	}
	fmt.Fprintln(stderr, "error:", err)
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return ExitFailure
}

func (c *command) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "taintflow",
		Short:         "Static data-flow graphs for taint analysis",
		Long:          "taintflow extracts flow-insensitive variable data-flow graphs from Java, Go and Python sources\nand locates the request parameters seeding a taint analysis.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.taintflow.yaml or ./.taintflow.yaml)")
	flags.String("resolution", "", "name resolution: isolated or lexical")
	flags.Bool("fields", false, "track initialized class fields")
	flags.Bool("receiver-reads", false, "treat a call receiver as read by the call")
	flags.StringP("format", "f", "", "output format: text, yaml or json")
	flags.Int("workers", 0, "files analysed concurrently")
	flags.String("log-level", "", "log level")
	for key, flag := range map[string]string{
		"resolution":     "resolution",
		"fields":         "fields",
		"receiver_reads": "receiver-reads",
		"format":         "format",
		"workers":        "workers",
		"logger.level":   "log-level",
	} {
		_ = c.viper.BindPFlag(key, flags.Lookup(flag))
	}
	root.AddCommand(c.graphCommand(), c.indexCommand())
	return root
}

func (c *command) initConfig() error {
	if c.cfgFile != "" {
		c.viper.SetConfigFile(c.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			c.viper.AddConfigPath(home)
		}
		c.viper.AddConfigPath(".")
		c.viper.SetConfigType("yaml")
		c.viper.SetConfigName(".taintflow")
	}
	if err := c.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.cfgFile != "" || !errors.As(err, &notFound) {
			return fail(ExitFailure, fmt.Errorf("failed to read config: %w", err))
		}
	}
	cfg, err := config.Load(c.viper)
	if err != nil {
		return fail(ExitFailure, err)
	}
	c.config = cfg
	observability.Initialize(cfg.Logger, zapcore.AddSync(c.stderr))
	return nil
}

func (c *command) analyzer() *analyzer.Analyzer {
	return analyzer.New(
		analyzer.WithResolution(c.config.ResolutionPolicy()),
		analyzer.WithFields(c.config.Fields),
		analyzer.WithReceiverReads(c.config.ReceiverReads),
		analyzer.WithWorkers(c.config.Workers),
		analyzer.WithMatcher(analyzer.SourceFiles(c.config.SkipDirs...)),
		analyzer.WithLogger(observability.GetLogger()),
	)
}

func (c *command) write(graphs ...*flow.Graph) error {
	switch c.config.Format {
	case config.FormatYAML, config.FormatJSON:
		docs := make([]*flow.Document, 0, len(graphs))
		for _, graph := range graphs {
			docs = append(docs, flow.Export(graph))
		}
		if c.config.Format == config.FormatYAML {
			return flow.EncodeYAML(c.stdout, docs...)
		}
		return flow.EncodeJSON(c.stdout, docs...)
	}
	return flow.Dump(c.stdout, graphs...)
}
