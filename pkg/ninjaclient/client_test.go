package ninjaclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2index-ninja/sdk-go/pkg/ninjaclient"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := ninjaclient.New(&twoindex.Config{AccessToken: "test-token"})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		client, err := ninjaclient.New(nil)
		require.ErrorIs(t, err, twoindex.ErrConfigRequired)
		assert.Nil(t, client)
	})

	t.Run("requires token", func(t *testing.T) {
		t.Parallel()

		client, err := ninjaclient.New(&twoindex.Config{})
		require.ErrorIs(t, err, twoindex.ErrAccessTokenRequired)
		assert.Nil(t, client)
	})

	t.Run("rejects bad base URL", func(t *testing.T) {
		t.Parallel()

		_, err := ninjaclient.New(&twoindex.Config{AccessToken: "t", BaseURL: "not a url"})
		require.ErrorIs(t, err, twoindex.ErrInvalidBaseURL)
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := ninjaclient.NewWithToken("test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = ninjaclient.NewWithToken("")
	require.ErrorIs(t, err, twoindex.ErrAccessTokenRequired)
}

func TestNew_NoNetworkIO(t *testing.T) {
	t.Parallel()

	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	_, err := ninjaclient.New(&twoindex.Config{AccessToken: "t", BaseURL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")

		switch request.URL.Path {
		case "/account":
			_, _ = writer.Write([]byte(`{"success": true, "account": {"email": "a@b.c", "balance": "12.5"}}`))
		case "/link/add_simple":
			_, _ = writer.Write([]byte(`{"success": true, "message": "Added", "project_name": "default", "project_id": 3}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"success": false, "message": "Not found"}`))
		}
	}))
	defer server.Close()

	client, err := ninjaclient.New(&twoindex.Config{AccessToken: "t", BaseURL: server.URL})
	require.NoError(t, err)

	account, err := client.GetAccount(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 12.5, account.Balance, 0.001)

	result, err := client.AddLinksSimple(context.Background(), &twoindex.LinksAddSimpleRequest{
		Links: twoindex.LinksFromList("https://example.com/"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Added", result.Message)
	assert.Equal(t, 3, result.ProjectID)

	_, err = client.GetProject(context.Background(), 1)
	require.ErrorIs(t, err, twoindex.ErrNotFound)
}
