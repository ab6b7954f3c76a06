package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passgen-go/internal/crypto"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the generator API",
		Long: `Mint a bearer token accepted by the API server when it runs with
JWT_SECRET set. The signing secret is read from --secret, PASSGEN_JWT_SECRET
or JWT_SECRET, in that order. The lifetime likewise falls back to
PASSGEN_EXPIRY or JWT_EXPIRY.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runToken(cmd)
		},
	}

	f := cmd.Flags()
	f.String("client", "", "name of the API client (required)")
	f.String("secret", "", "signing secret")
	f.Duration("expiry", 24*time.Hour, "token lifetime")

	return cmd
}

func (a *app) runToken(cmd *cobra.Command) error {
	v := a.v
	if err := v.BindEnv("jwt-secret", envPrefix+"_JWT_SECRET", "JWT_SECRET"); err != nil {
		return err
	}
	if err := v.BindEnv("expiry", envPrefix+"_EXPIRY", "JWT_EXPIRY"); err != nil {
		return err
	}

	secret := v.GetString("secret")
	if secret == "" {
		secret = v.GetString("jwt-secret")
	}

	token, err := crypto.GenerateToken(v.GetString("client"), secret, v.GetDuration("expiry"))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
