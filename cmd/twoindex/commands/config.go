package commands

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/2index-ninja/sdk-go/internal/constants"
)

// Config represents the CLI configuration file.
type Config struct {
	Token          string `json:"token,omitempty"           yaml:"token,omitempty"`
	BaseURL        string `json:"base_url,omitempty"        yaml:"base_url,omitempty"`
	Output         string `json:"output,omitempty"          yaml:"output,omitempty"`
	Timeout        string `json:"timeout,omitempty"         yaml:"timeout,omitempty"`
	Retries        int    `json:"retries,omitempty"         yaml:"retries,omitempty"`
	Proxy          string `json:"proxy,omitempty"           yaml:"proxy,omitempty"`
	DefaultProject string `json:"default_project,omitempty" yaml:"default_project,omitempty"`
}

// configKeys lists the keys accepted by config set/unset.
var configKeys = map[string]func(config *Config, value string) error{
	"token": func(config *Config, value string) error {
		if strings.TrimSpace(value) == "" {
			return constants.ErrEmptyToken
		}

		config.Token = strings.TrimSpace(value)

		return nil
	},
	"base_url": func(config *Config, value string) error {
		if value != "" {
			parsed, err := url.Parse(value)
			if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
				return fmt.Errorf("invalid base_url %q: must be an absolute http(s) URL", value)
			}
		}

		config.BaseURL = value

		return nil
	},
	"output": func(config *Config, value string) error {
		switch value {
		case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value

			return nil
		default:
			return fmt.Errorf("%w: %q", constants.ErrInvalidOutputType, value)
		}
	},
	"timeout": func(config *Config, value string) error {
		if value != "" {
			_, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid timeout %q: %w", value, err)
			}
		}

		config.Timeout = value

		return nil
	},
	"retries": func(config *Config, value string) error {
		if value == "" {
			config.Retries = 0

			return nil
		}

		retries, err := strconv.Atoi(value)
		if err != nil || retries < 0 {
			return fmt.Errorf("invalid retries %q: must be a non-negative integer", value)
		}

		config.Retries = retries

		return nil
	},
	"proxy": func(config *Config, value string) error {
		config.Proxy = value

		return nil
	},
	"default_project": func(config *Config, value string) error {
		config.DefaultProject = value

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the twoindex config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the configuration file contents with the token masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			masked := *config
			masked.Token = maskToken(config.Token)

			return output(cmd, masked, func(w io.Writer) error {
				return displayConfigTable(w, &masked)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeyNames(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], args[1], "Set")
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Keys: " + strings.Join(configKeyNames(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if key == "token" {
				err := NewConfigPersister().UpdateToken("")
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Unset token")

				return nil
			}

			return updateConfig(cmd, key, "", "Unset")
		},
	}
}

func updateConfig(cmd *cobra.Command, key, value, action string) error {
	apply, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %q (valid keys: %s)", constants.ErrUnknownConfigKey, key, strings.Join(configKeyNames(), ", "))
	}

	config, err := loadConfig()
	if err != nil {
		return err
	}

	err = apply(config, value)
	if err != nil {
		return err
	}

	err = saveConfigStruct(config)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", action, key)

	return nil
}

func configKeyNames() []string {
	names := make([]string, 0, len(configKeys))
	for name := range configKeys {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// configFilePath returns the file viper read, or the default location.
func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".twoindex", "config.yml"), nil
}

// loadConfig reads the config file only; flags and environment variables are
// not folded in so that saving never persists them.
func loadConfig() (*Config, error) {
	configFile, err := configFilePath()
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- the path comes from --config or the user's home directory
	data, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	return &config, nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(w io.Writer, config *Config) error {
	rows := [][]string{
		{"Token", orNotSet(config.Token)},
		{"Base URL", orDefault(config.BaseURL, constants.DefaultBaseURL)},
		{"Output", orDefault(config.Output, constants.FormatTable)},
		{"Timeout", orDefault(config.Timeout, constants.DefaultHTTPTimeout.String())},
		{"Retries", strconv.Itoa(config.Retries)},
		{"Proxy", orNotSet(config.Proxy)},
		{"Default Project", orDefault(config.DefaultProject, constants.DefaultProjectName)},
	}

	return renderProperties(w, rows)
}

func orNotSet(value string) string {
	return orDefault(value, "(not set)")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
