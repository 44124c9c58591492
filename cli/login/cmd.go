// Package login manages stored credentials.
package login

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/packpal/packpal/internal/auth"
	"github.com/packpal/packpal/internal/cli"
	"github.com/packpal/packpal/internal/configuration"
	"github.com/packpal/packpal/internal/file"
)

// NewCmd instantiates and returns the login command.
func NewCmd(config *configuration.Config, credentials *auth.FileStore) *cobra.Command {
	var opts struct {
		Token string
		Email string
	}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token for the configured host",
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := file.Exists(config.Auth.CredentialsPath)
			if err != nil {
				return errors.Wrap(err, "checking stored credentials")
			}
			if stored && !cli.QueryUser("Credentials are already stored. Replace them?") {
				return nil
			}

			if opts.Email == "" {
				if err := survey.AskOne(&survey.Input{Message: "Email:"}, &opts.Email); err != nil {
					return err
				}
			}
			if opts.Token == "" {
				if err := survey.AskOne(&survey.Password{Message: "API token:"}, &opts.Token); err != nil {
					return err
				}
			}
			opts.Token = strings.TrimSpace(opts.Token)
			if opts.Token == "" {
				return fmt.Errorf("token must not be empty")
			}

			if err := credentials.Save(&auth.Credentials{Token: opts.Token, Email: opts.Email}); err != nil {
				return errors.Wrap(err, "saving credentials")
			}
			cli.Success("Logged in to %s.", config.APIHost)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Token, "token", "", "API token (prompted for when omitted)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "Account email")
	return cmd
}

// NewLogoutCmd instantiates and returns the logout command.
func NewLogoutCmd(credentials *auth.FileStore) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credentials.Clear(); err != nil {
				return errors.Wrap(err, "clearing credentials")
			}
			cli.Success("Logged out.")
			return nil
		},
	}
}
