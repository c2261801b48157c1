package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	pkgauth "github.com/matiasleandrokruk/peoplebridge/pkg/auth"
)

func newTokenCmd(opts *globalOptions) *cobra.Command {
	var (
		subject string
		name    string
		expiry  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer JWT for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if subject == "" {
				return usageError{err: fmt.Errorf("--subject is required")}
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := cfg.RequireJWT(); err != nil {
				return err
			}
			if expiry == 0 {
				expiry = cfg.JWTExpiry
			}

			issuer, err := pkgauth.NewIssuer(cfg.JWTSecret, expiry)
			if err != nil {
				return err
			}
			token, err := issuer.GenerateJWT(subject, name)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "caller identity recorded in the audit log")
	cmd.Flags().StringVar(&name, "name", "", "optional display name")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (default JWT_EXPIRY)")
	return cmd
}
