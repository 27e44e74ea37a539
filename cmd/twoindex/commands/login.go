package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/2index-ninja/sdk-go/internal/constants"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token",
		Long:  "Verify an API token against the account endpoint and save it to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				var err error

				token, err = promptToken(cmd)
				if err != nil {
					return err
				}
			}

			token = strings.TrimSpace(token)
			if token == "" {
				return constants.ErrEmptyToken
			}

			client, err := createClientWithToken(token)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(commandContext(cmd), constants.ShortHTTPTimeout)
			defer cancel()

			account, err := client.GetAccount(ctx)
			if err != nil {
				return fmt.Errorf("failed to verify token: %w", err)
			}

			persister := NewConfigPersister()

			err = persister.UpdateToken(token)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			if baseURL := viper.GetString("base_url"); baseURL != "" {
				err = persister.UpdateBaseURL(baseURL)
				if err != nil {
					return fmt.Errorf("failed to save configuration: %w", err)
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", account.Email, account.Tariff)

			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "API token (prompted for when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := NewConfigPersister().UpdateToken("")
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func promptToken(cmd *cobra.Command) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "API token: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)

		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return string(data), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return line, nil
}
