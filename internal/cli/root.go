// Package cli implements the passgen command-line interface.
//
// Flags may also be set through the environment (PASSGEN_LENGTH,
// PASSGEN_EXCLUDE_AMBIGUOUS, ...) or a .passgen.yaml file in the working
// directory or home directory. Flags take precedence over the environment,
// which takes precedence over the file.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "PASSGEN"

// app carries state shared by every subcommand of one root command.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

// NewRootCmd builds the passgen command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "passgen",
		Short: "Generate random passwords and rate their strength",
		Long: `passgen builds random passwords from the character classes you pick
(uppercase, lowercase, digits, symbols), optionally dropping visually
ambiguous characters, and rates each result on a 0-100 strength scale.

Examples:
  passgen generate -l 24 --symbols=false
  passgen generate --exclude-ambiguous --copy
  passgen strength 'correct horse battery staple'`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default is ./.passgen.yaml or ~/.passgen.yaml)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newGenerateCmd(a),
		newStrengthCmd(a),
		newTokenCmd(a),
	)

	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if cfgFile := a.v.GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.SetConfigName(".passgen")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString("log-level"))); err != nil {
		return fmt.Errorf("invalid log level %q", a.v.GetString("log-level"))
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.logger.Debug("configuration loaded", "file", a.v.ConfigFileUsed())

	return nil
}
