package ninjaclient

import (
	"fmt"

	"github.com/2index-ninja/sdk-go/internal/client"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// New creates a new 2Index Ninja API client. It performs no network I/O.
func New(config *twoindex.Config) (twoindex.Client, error) {
	if config == nil {
		return nil, twoindex.ErrConfigRequired
	}

	if config.AccessToken == "" {
		return nil, twoindex.ErrAccessTokenRequired
	}

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithToken creates a new client with an access token and default settings.
func NewWithToken(token string) (twoindex.Client, error) {
	return New(&twoindex.Config{
		AccessToken: token,
	})
}
