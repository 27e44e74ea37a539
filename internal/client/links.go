package client

import (
	"context"
	"fmt"

	"github.com/2index-ninja/sdk-go/internal/constants"
	"github.com/2index-ninja/sdk-go/internal/http"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// LinksClient implements twoindex.LinksClient.
type LinksClient struct {
	httpClient *http.Client
}

// NewLinksClient creates a new links client.
func NewLinksClient(httpClient *http.Client) *LinksClient {
	return &LinksClient{
		httpClient: httpClient,
	}
}

// Add implements twoindex.LinksClient.Add. Rejected links are reported in
// the InvalidLinks field of the returned *twoindex.APIError.
func (c *LinksClient) Add(ctx context.Context, request *twoindex.LinksAddRequest) (string, error) {
	resp, err := c.httpClient.Post(ctx, "link/add", linksAddPayload(request))
	if err != nil {
		return "", fmt.Errorf("adding links: %w", err)
	}

	message, err := decodeMessage(resp)
	if err != nil {
		return "", fmt.Errorf("parsing add links response: %w", err)
	}

	return message, nil
}

// AddSimple implements twoindex.LinksClient.AddSimple.
func (c *LinksClient) AddSimple(ctx context.Context, request *twoindex.LinksAddSimpleRequest) (*twoindex.AddedLinksSimpleResponse, error) {
	resp, err := c.httpClient.Post(ctx, "link/add_simple", linksAddSimplePayload(request, constants.DefaultProjectName))
	if err != nil {
		return nil, fmt.Errorf("adding links by project name: %w", err)
	}

	result, err := decodeBody[twoindex.AddedLinksSimpleResponse](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing add links response: %w", err)
	}

	return &result, nil
}

// ListSources implements twoindex.LinksClient.ListSources. The endpoint
// answers with a bare list.
func (c *LinksClient) ListSources(ctx context.Context, projectID int) ([]twoindex.LinkSource, error) {
	resp, err := c.httpClient.Post(ctx, "link_sources", Payload{"project_id": projectID})
	if err != nil {
		return nil, fmt.Errorf("listing link sources: %w", err)
	}

	sources, err := decodeBody[[]twoindex.LinkSource](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing link sources: %w", err)
	}

	if sources == nil {
		sources = []twoindex.LinkSource{}
	}

	return sources, nil
}
