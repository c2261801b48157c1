package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/googleauth"
	"github.com/matiasleandrokruk/peoplebridge/internal/infra/sqlite"
)

func newAuthCmd(opts *globalOptions) *cobra.Command {
	var logout bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Contacts and store the refresh token",
		Long: "auth starts a local callback server, prints the Google consent URL and stores the\n" +
			"resulting token in the database. Re-run it when tools report unauthenticated.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			db, err := sqlite.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			store, err := tokenStore(cfg, db)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if logout {
				if err := store.Delete(cmd.Context(), cfg.Account); err != nil {
					return err
				}
				_, err := fmt.Fprintf(out, "Removed stored token for account %q\n", cfg.Account)
				return err
			}

			if err := cfg.RequireCredentials(); err != nil {
				return err
			}
			conf, err := googleauth.LoadClientConfig(cfg.CredentialsFile, cfg.CallbackAddr)
			if err != nil {
				return err
			}

			flow := googleauth.NewConsentFlow(conf, store, cfg.Account, log.Logger)
			if err := flow.Run(cmd.Context(), cfg.CallbackAddr, out); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			_, err = fmt.Fprintf(out, "Authentication successful; token stored for account %q\n", cfg.Account)
			return err
		},
	}
	cmd.Flags().BoolVar(&logout, "logout", false, "delete the stored token instead of authorizing")
	return cmd
}
