//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/2index-ninja/sdk-go/pkg/ninjaclient"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Token      string
	BaseURL    string
	BinaryPath string
	AllowWrite bool
	Verbose    bool
}

// LoadTestConfig loads configuration from the environment, after reading a
// .env file at the repository root when one exists.
func LoadTestConfig() *TestConfig {
	_ = godotenv.Load("../../.env")

	return &TestConfig{
		Token:      os.Getenv("TWOINDEX_TOKEN"),
		BaseURL:    os.Getenv("TWOINDEX_BASE_URL"),
		BinaryPath: getBinaryPath(),
		AllowWrite: os.Getenv("TWOINDEX_INTEGRATION_WRITE") == "true",
		Verbose:    os.Getenv("TWOINDEX_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the twoindex binary.
func getBinaryPath() string {
	if path := os.Getenv("TWOINDEX_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../twoindex",
		"./twoindex",
		"../twoindex",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "twoindex"
}

// SkipIfMissingToken skips the test unless an API token is configured.
func (config *TestConfig) SkipIfMissingToken(t *testing.T) {
	t.Helper()

	if config.Token == "" {
		t.Skip("TWOINDEX_TOKEN not set, skipping integration test")
	}
}

// SkipUnlessWritable skips tests that create projects or submit links.
func (config *TestConfig) SkipUnlessWritable(t *testing.T) {
	t.Helper()

	if !config.AllowWrite {
		t.Skip("TWOINDEX_INTEGRATION_WRITE not true, skipping test that changes the account")
	}
}

// SkipIfMissingBinary skips CLI tests when the binary has not been built.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("twoindex binary not found at %s, skipping CLI test", config.BinaryPath)
	}
}

// NewClient builds a library client for the configured account.
func (config *TestConfig) NewClient(t *testing.T) twoindex.Client {
	t.Helper()

	client, err := ninjaclient.New(&twoindex.Config{
		AccessToken: config.Token,
		BaseURL:     config.BaseURL,
		HTTPTimeout: 30 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}

// CommandRunner provides utilities for running twoindex commands.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a twoindex command against an isolated config file and returns its output.
func (runner *CommandRunner) Run(args ...string) (string, string, error) {
	configFile := runner.t.TempDir() + "/config.yml"
	args = append([]string{"--config", configFile}, args...)

	cmd := exec.Command(runner.config.BinaryPath, args...)
	cmd.Env = append(os.Environ(), "TWOINDEX_TOKEN="+runner.config.Token)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err := cmd.Run()
	stdout := stdoutBuf.String()
	stderr := stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// AssertJSONOutput verifies command output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}
