package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2index-ninja/sdk-go/internal/http"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// SitemapsClient implements twoindex.SitemapsClient.
type SitemapsClient struct {
	httpClient *http.Client
}

// NewSitemapsClient creates a new sitemaps client.
func NewSitemapsClient(httpClient *http.Client) *SitemapsClient {
	return &SitemapsClient{
		httpClient: httpClient,
	}
}

// Add implements twoindex.SitemapsClient.Add.
func (c *SitemapsClient) Add(ctx context.Context, request *twoindex.SitemapAddRequest) (string, error) {
	resp, err := c.httpClient.Post(ctx, "sitemap/add", sitemapAddPayload(request))
	if err != nil {
		return "", fmt.Errorf("adding sitemap: %w", err)
	}

	message, err := decodeMessage(resp)
	if err != nil {
		return "", fmt.Errorf("parsing add sitemap response: %w", err)
	}

	return message, nil
}

// UpdateWatch implements twoindex.SitemapsClient.UpdateWatch. It returns the
// response's "success" flag, read with the same lenient rules as the models,
// so 0, "0" and null all report false.
func (c *SitemapsClient) UpdateWatch(ctx context.Context, projectID, sitemapID int, watch bool) (bool, error) {
	payload := sitemapRefPayload(projectID, sitemapID)
	payload["watch"] = watch

	resp, err := c.httpClient.Post(ctx, "sitemap/update_watch", payload)
	if err != nil {
		return false, fmt.Errorf("updating sitemap watch: %w", err)
	}

	if !isJSONObject(resp.Body) {
		return false, fmt.Errorf("parsing update watch response: %w",
			protocolError(resp, fmt.Errorf("%w: expected an object", twoindex.ErrInvalidResponse)))
	}

	result, err := decodeBody[twoindex.SitemapWatchResponse](resp)
	if err != nil {
		return false, fmt.Errorf("parsing update watch response: %w", err)
	}

	return result.Success, nil
}

// isJSONObject reports whether body holds a JSON object.
func isJSONObject(body []byte) bool {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)

	return err == nil && envelope != nil
}

// Delete implements twoindex.SitemapsClient.Delete.
func (c *SitemapsClient) Delete(ctx context.Context, projectID, sitemapID int) (string, error) {
	resp, err := c.httpClient.Post(ctx, "sitemap/delete", sitemapRefPayload(projectID, sitemapID))
	if err != nil {
		return "", fmt.Errorf("deleting sitemap: %w", err)
	}

	message, err := decodeMessage(resp)
	if err != nil {
		return "", fmt.Errorf("parsing delete sitemap response: %w", err)
	}

	return message, nil
}
