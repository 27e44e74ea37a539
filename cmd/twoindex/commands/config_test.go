package commands

import (
	"net/http"
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/2index-ninja/sdk-go/internal/constants"
)

func readConfigFile(t *testing.T, path string) Config {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var config Config
	require.NoError(t, yaml.Unmarshal(data, &config))

	return config
}

func TestConfigSetShowUnset(t *testing.T) {
	configFile := setupCLI(t, nil)

	stdout, _, err := runCommand(t, NewConfigCommand(), "set", "token", "abcdef123456")
	require.NoError(t, err)
	assert.Equal(t, "Set token\n", stdout)

	_, _, err = runCommand(t, NewConfigCommand(), "set", "timeout", "45s")
	require.NoError(t, err)

	_, _, err = runCommand(t, NewConfigCommand(), "set", "retries", "2")
	require.NoError(t, err)

	config := readConfigFile(t, configFile)
	assert.Equal(t, Config{Token: "abcdef123456", Timeout: "45s", Retries: 2}, config)

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	stdout, _, err = runCommand(t, NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "abcd***")
	assert.NotContains(t, stdout, "abcdef123456")
	assert.Contains(t, stdout, "45s")
	assert.Contains(t, stdout, constants.DefaultBaseURL)

	_, _, err = runCommand(t, NewConfigCommand(), "unset", "token")
	require.NoError(t, err)
	assert.Empty(t, readConfigFile(t, configFile).Token)
	assert.Equal(t, "45s", readConfigFile(t, configFile).Timeout)
}

func TestConfigSet_Validation(t *testing.T) {
	configFile := setupCLI(t, nil)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "unknown key", args: []string{"set", "colour", "blue"}, wantErr: constants.ErrUnknownConfigKey},
		{name: "bad output", args: []string{"set", "output", "xml"}, wantErr: constants.ErrInvalidOutputType},
		{name: "blank token", args: []string{"set", "token", " "}, wantErr: constants.ErrEmptyToken},
		{name: "bad timeout", args: []string{"set", "timeout", "soon"}},
		{name: "negative retries", args: []string{"set", "retries", "-1"}},
		{name: "relative base url", args: []string{"set", "base_url", "api/v1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCommand(t, NewConfigCommand(), tt.args...)
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	_, err := os.Stat(configFile)
	assert.True(t, os.IsNotExist(err), "rejected values must not create the config file")
}

func TestConfigShow_JSONDoesNotLeakEnvironment(t *testing.T) {
	setupCLI(t, nil)
	viper.Set("token", "from-flag-token")
	viper.Set("output", "json")

	stdout, _, err := runCommand(t, NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, stdout)
}

func TestLoginCommand(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("account", http.StatusOK, accountJSON)
	configFile := setupCLI(t, api)
	viper.Set("token", "")

	stdout, _, err := runCommand(t, NewLoginCommand(), "--token", "  fresh-token  ")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as owner@example.com (Pro)\n", stdout)
	assert.Equal(t, "Bearer fresh-token", api.last(t).Header.Get("Authorization"))

	config := readConfigFile(t, configFile)
	assert.Equal(t, "fresh-token", config.Token)
	assert.Equal(t, api.URL+"/api/v1/", config.BaseURL)

	stdout, _, err = runCommand(t, NewLogoutCommand())
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", stdout)
	assert.Empty(t, readConfigFile(t, configFile).Token)
}

func TestLoginCommand_Rejected(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("account", http.StatusUnauthorized, `{"message": "Unauthenticated."}`)
	configFile := setupCLI(t, api)

	_, _, err := runCommand(t, NewLoginCommand(), "--token", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to verify token")

	_, statErr := os.Stat(configFile)
	assert.True(t, os.IsNotExist(statErr))
}
