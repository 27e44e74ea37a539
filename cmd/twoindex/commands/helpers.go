package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/2index-ninja/sdk-go/internal/constants"
	"github.com/2index-ninja/sdk-go/internal/logging"
	"github.com/2index-ninja/sdk-go/pkg/ninjaclient"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// Common values.
const (
	Yes = "yes"
	No  = "no"
)

// CreateClient builds an API client from the effective configuration: flags,
// TWOINDEX_* environment variables and the config file, in that order.
func CreateClient() (twoindex.Client, error) {
	token := strings.TrimSpace(viper.GetString("token"))
	if token == "" {
		return nil, constants.ErrNoAccessToken
	}

	return createClientWithToken(token)
}

func createClientWithToken(token string) (twoindex.Client, error) {
	config := &twoindex.Config{
		AccessToken: token,
		BaseURL:     viper.GetString("base_url"),
		ProxyURL:    viper.GetString("proxy"),
		RetryMax:    viper.GetInt("retries"),
	}

	timeout := viper.GetString("timeout")
	if timeout != "" {
		duration, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}

		config.HTTPTimeout = duration
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = logging.NewConsole(os.Stderr, true)
	}

	client, err := ninjaclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	format := strings.ToLower(strings.TrimSpace(viper.GetString("output")))

	switch format {
	case "":
		return constants.FormatTable, nil
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutputType, format)
	}
}

// writeStructured encodes value as JSON or YAML.
func writeStructured(w io.Writer, format string, value interface{}) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutputType, format)
	}
}

// output renders value as JSON or YAML, or calls table for the table format.
func output(cmd *cobra.Command, value interface{}, table func(w io.Writer) error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format == constants.FormatTable {
		return table(cmd.OutOrStdout())
	}

	return writeStructured(cmd.OutOrStdout(), format, value)
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	columns := make([]any, len(header))
	for i, column := range header {
		columns[i] = column
	}

	table := tablewriter.NewWriter(w)
	table.Header(columns...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderProperties(w io.Writer, rows [][]string) error {
	return renderTable(w, []string{"Property", "Value"}, rows)
}

// printMessage writes an API message, falling back when the API sent none.
func printMessage(cmd *cobra.Command, message, fallback string) {
	if message == "" {
		message = fallback
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
}

// reportInvalidLinks lists the links the API rejected.
func reportInvalidLinks(cmd *cobra.Command, err error) {
	apiErr, ok := twoindex.AsAPIError(err)
	if !ok || len(apiErr.InvalidLinks) == 0 {
		return
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Invalid links (%d):\n", len(apiErr.InvalidLinks))

	for _, link := range apiErr.InvalidLinks {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", link)
	}
}

func parseID(value string, errInvalid error) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalid, value)
	}

	return id, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func yesNo(value bool) string {
	if value {
		return Yes
	}

	return No
}

func optionalInt(value *int) string {
	if value == nil {
		return constants.NotAvailable
	}

	return strconv.Itoa(*value)
}

func optionalString(value *string) string {
	if value == nil || *value == "" {
		return constants.NotAvailable
	}

	return *value
}

func optionalBool(value *bool) string {
	if value == nil {
		return constants.NotAvailable
	}

	return yesNo(*value)
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}

	if len(token) <= constants.TokenVisiblePrefix {
		return constants.MaskedSecret
	}

	return token[:constants.TokenVisiblePrefix] + constants.MaskedSecret
}

// engineFlags holds the search engine selection shared by submission commands.
type engineFlags struct {
	google              bool
	yandex              bool
	bing                bool
	googleAccessGranted bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.google, "google", true, "send links to Google")
	cmd.Flags().BoolVar(&f.yandex, "yandex", false, "send links to Yandex")
	cmd.Flags().BoolVar(&f.bing, "bing", false, "send links to Bing")
	cmd.Flags().BoolVar(&f.googleAccessGranted, "google-access-granted", false, "Google Search Console access has been granted")
}

func (f *engineFlags) targets() twoindex.SearchEngineTargets {
	return twoindex.SearchEngineTargets{Google: f.google, Yandex: f.yandex, Bing: f.bing}
}
