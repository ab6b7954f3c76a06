package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passgen-go/internal/service"
)

func newStrengthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strength [password]",
		Short: "Rate an existing password",
		Long: `Rate a password on the 0-100 strength scale. When no argument is given
the first line of standard input is rated, which keeps the password out
of shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStrength(cmd, args)
		},
	}

	cmd.Flags().Bool("json", false, "print the rating as JSON")

	return cmd
}

func (a *app) runStrength(cmd *cobra.Command, args []string) error {
	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if scanner.Scan() {
			password = strings.TrimRight(scanner.Text(), "\r")
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
	}

	if password == "" {
		return errors.New("no password given")
	}

	rating := service.NewGeneratorService(service.GeneratorConfig{}).Rate(password)

	if a.v.GetBool("json") {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rating)
	}

	writeStrength(cmd.OutOrStdout(), rating)
	return nil
}
