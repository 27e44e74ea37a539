package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// NewAccountCommand creates the account command.
func NewAccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show account details",
		Long:  "Display the tariff, balance and remaining limits of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			account, err := client.GetAccount(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			return output(cmd, account, func(w io.Writer) error {
				return renderProperties(w, accountRows(account))
			})
		},
	}
}

func accountRows(account *twoindex.Account) [][]string {
	return [][]string{
		{"Email", account.Email},
		{"Email Verified", yesNo(account.IsEmailVerified)},
		{"Tariff", account.Tariff},
		{"Tariff Available", yesNo(account.IsTariffAvailable)},
		{"Tariff Expires", optionalString(account.TariffExpiringDate)},
		{"Balance", strconv.FormatFloat(account.Balance, 'f', 2, 64)},
		{"Link Cost", account.LinkCost},
		{"Available Projects", strconv.Itoa(account.AvailableProjects)},
		{"Available Links", strconv.Itoa(account.AvailableLinks)},
		{"Available Check Links", strconv.Itoa(account.AvailableIndexationCheckLinks)},
		{"Link Sending Speed", strconv.Itoa(account.LinkSendingSpeed)},
	}
}
