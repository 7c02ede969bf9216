package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	minalog "github.com/msto63/mina/foundation/core/log"
	"github.com/msto63/mina/foundation/mina"
	"github.com/msto63/mina/foundation/mina/lexer"
	"github.com/msto63/mina/internal/artifact"
	"github.com/msto63/mina/pkg/core/cache"
	"github.com/msto63/mina/pkg/core/config"
	"github.com/msto63/mina/pkg/core/logging"
)

// defaultConfigFile is read when --config is not given and the file exists
const defaultConfigFile = "mina.toml"

// errRejected marks input that was rejected after its diagnostics were
// printed
var errRejected = errors.New("input rejected")

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	lexPolicy string
	maxErrors int

	cfg    *config.Config
	logger *minalog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mina",
	Short: "Mina language front-end",
	Long: `mina lexes and parses Mina source text.

Commands:
  lex        print the token stream
  parse      print, encode or store the syntax tree
  repl       interactive shell
  grammar    LALR table report
  artifacts  manage stored syntax trees
  config     show the effective configuration
  version    version information`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errRejected) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, TOML or YAML (default: ./mina.toml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&lexPolicy, "policy", "", "lexical error policy (skip or halt)")
	rootCmd.PersistentFlags().IntVar(&maxErrors, "max-errors", 0, "stop after this many errors (0 = no limit)")
}

// setup loads the configuration, applies flag overrides and installs the
// logger
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.General.LogLevel = logLevel
	}
	if verbose {
		loaded.General.LogLevel = "debug"
	}
	if flags.Changed("policy") {
		loaded.Frontend.LexPolicy = lexPolicy
	}
	if flags.Changed("max-errors") {
		loaded.Frontend.MaxErrors = maxErrors
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	logger = logging.NewLogger(logging.LoggerConfig{
		Name:   "mina",
		Level:  cfg.General.LogLevel,
		Format: cfg.General.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	minalog.SetDefault(logger)
	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return config.Load(defaultConfigFile)
	}
	return config.DefaultConfig(), nil
}

// newFrontend builds a front-end from the effective configuration
func newFrontend() (*mina.Frontend, error) {
	policy, err := lexer.ParsePolicy(cfg.Frontend.LexPolicy)
	if err != nil {
		return nil, err
	}
	return mina.New(mina.Options{
		Policy:         policy,
		MaxInputLength: cfg.Frontend.MaxInputLength,
		MaxErrors:      cfg.Frontend.MaxErrors,
		Logger:         logger,
	})
}

// openStore opens the artifact store named by the configuration
func openStore() (*artifact.SQLiteStore, error) {
	return artifact.NewSQLiteStore(artifact.Config{
		Path: cfg.Store.Path,
		Cache: cache.Config{
			MaxItems:        cfg.Cache.MaxItems,
			TTL:             cfg.Cache.TTL.Duration,
			CleanupInterval: time.Minute,
		},
		Logger: logger,
	})
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
}
