package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/sqlcheck/pkg/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sqlcheck",
	Short: "Detect anti-patterns in SQL statements",
	Long: `sqlcheck scans SQL scripts for anti-patterns in logical and physical
database design, query construction and application hygiene.

Statements are matched lexically, so no database connection is needed and
any dialect can be checked.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sqlcheck.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print full rule messages and info logs")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides --debug and --verbose")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory and the working directory with name ".sqlcheck" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sqlcheck")
	}

	viper.SetEnvPrefix("SQLCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			slog.Warn("Ignoring config file", "file", viper.ConfigFileUsed(), logger.Error(err))
		}
		return
	}
	slog.Debug("Using config file", "file", viper.ConfigFileUsed())
}

// setupLogger installs the process logger at the level chosen by logLevel.
func setupLogger() error {
	level, err := logLevel(viper.GetString("log-level"), viper.GetBool("debug"), viper.GetBool("verbose"))
	if err != nil {
		return err
	}
	color := termenv.NewOutput(os.Stderr).ColorProfile() != termenv.Ascii
	logger.NewWithLevel(os.Stderr, level, color).SetDefault()
	return nil
}

// logLevel resolves the log level: an explicit name wins, then debug, then
// verbose for info, and warn otherwise.
func logLevel(name string, debug, verbose bool) (slog.Level, error) {
	switch {
	case strings.TrimSpace(name) != "":
		return logger.ParseLevel(name)
	case debug:
		return slog.LevelDebug, nil
	case verbose:
		return slog.LevelInfo, nil
	default:
		return slog.LevelWarn, nil
	}
}
