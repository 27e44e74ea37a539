package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

type apiRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]interface{}
}

// fakeAPI serves canned bodies per path and records requests.
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]fakeRoute
	requests []apiRequest
}

type fakeRoute struct {
	status int
	body   string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{routes: map[string]fakeRoute{}}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)

	return api
}

func (a *fakeAPI) handle(path string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.routes[path] = fakeRoute{status: status, body: body}
}

func (a *fakeAPI) serve(writer http.ResponseWriter, request *http.Request) {
	raw, _ := io.ReadAll(request.Body)

	var body map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	path := strings.TrimPrefix(request.URL.Path, "/api/v1/")

	a.mu.Lock()
	a.requests = append(a.requests, apiRequest{Method: request.Method, Path: path, Header: request.Header.Clone(), Body: body})
	route, ok := a.routes[path]
	a.mu.Unlock()

	if !ok {
		route = fakeRoute{status: http.StatusNotFound, body: `{"success": false, "message": "Not found"}`}
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(route.status)
	_, _ = writer.Write([]byte(route.body))
}

func (a *fakeAPI) last(t *testing.T) apiRequest {
	t.Helper()

	a.mu.Lock()
	defer a.mu.Unlock()

	require.NotEmpty(t, a.requests, "no request reached the fake API")

	return a.requests[len(a.requests)-1]
}

func (a *fakeAPI) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.requests)
}

// setupCLI points the global viper state at the fake API and a temporary
// config file, and restores it when the test ends.
func setupCLI(t *testing.T, api *fakeAPI) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)
	viper.Set("output", "table")

	if api != nil {
		viper.Set("token", "test-token")
		viper.Set("base_url", api.URL+"/api/v1/")
	}

	return configFile
}

// runCommand executes cmd with args and returns what it wrote.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}
