package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// recordedRequest is what the test server saw.
type recordedRequest struct {
	Method  string
	Path    string
	Header  http.Header
	RawBody []byte
}

// JSONBody decodes the recorded body into a generic map.
func (r recordedRequest) JSONBody(t *testing.T) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	require.NoError(t, json.Unmarshal(r.RawBody, &body))

	return body
}

type testServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func (s *testServer) last(t *testing.T) recordedRequest {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	require.NotEmpty(t, s.requests, "server received no request")

	return s.requests[len(s.requests)-1]
}

func (s *testServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

// newTestServer answers every request with status and body.
func newTestServer(t *testing.T, status int, body string) *testServer {
	t.Helper()

	server := &testServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		raw, _ := io.ReadAll(request.Body)

		server.mu.Lock()
		server.requests = append(server.requests, recordedRequest{
			Method:  request.Method,
			Path:    request.URL.Path,
			Header:  request.Header.Clone(),
			RawBody: raw,
		})
		server.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

// NewTestClient creates a client pointed at baseURL.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(&twoindex.Config{
		AccessToken: "test-token",
		BaseURL:     baseURL + "/api/v1/",
	})
	require.NoError(t, err)

	return client
}

// TestMessageOperation is a POST operation that answers with a message.
type TestMessageOperation struct {
	Name         string
	Call         func(context.Context, *Client) (string, error)
	ExpectedPath string
	ExpectedBody map[string]interface{}
}

// RunMessageTests checks path, payload and message decoding, then the
// failure path, for each operation.
func RunMessageTests(t *testing.T, tests []TestMessageOperation) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, http.StatusOK, `{"success": true, "message": "Done"}`)
			client := NewTestClient(t, server.URL)

			message, err := testCase.Call(context.Background(), client)
			require.NoError(t, err)
			assert.Equal(t, "Done", message)

			request := server.last(t)
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/api/v1/"+testCase.ExpectedPath, request.Path)

			if testCase.ExpectedBody == nil {
				assert.Empty(t, request.RawBody)
			} else {
				assert.Equal(t, testCase.ExpectedBody, request.JSONBody(t))
			}
		})

		t.Run(testCase.Name+" failure", func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, http.StatusOK, `{"success": false, "message": "Refused"}`)
			client := NewTestClient(t, server.URL)

			message, err := testCase.Call(context.Background(), client)
			require.Error(t, err)
			assert.Empty(t, message)

			apiErr, ok := twoindex.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, "Refused", apiErr.Message)
		})
	}
}
