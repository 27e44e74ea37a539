package client

import (
	"context"
	"fmt"

	"github.com/2index-ninja/sdk-go/internal/http"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// AccountClient implements twoindex.AccountClient.
type AccountClient struct {
	httpClient *http.Client
}

// NewAccountClient creates a new account client.
func NewAccountClient(httpClient *http.Client) *AccountClient {
	return &AccountClient{
		httpClient: httpClient,
	}
}

// Get implements twoindex.AccountClient.Get.
func (c *AccountClient) Get(ctx context.Context) (*twoindex.Account, error) {
	resp, err := c.httpClient.Get(ctx, "account", nil)
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	account, err := decodeField[twoindex.Account](resp, "account")
	if err != nil {
		return nil, fmt.Errorf("parsing account: %w", err)
	}

	return &account, nil
}
