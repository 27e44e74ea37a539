package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/2index-ninja/sdk-go/internal/constants"
	"github.com/2index-ninja/sdk-go/internal/http"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// Client implements the twoindex.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     twoindex.Logger

	// Resource clients
	account  *AccountClient
	projects *ProjectsClient
	links    *LinksClient
	sitemaps *SitemapsClient
}

var _ twoindex.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *twoindex.Config, proxy *url.URL) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if len(config.Headers) > 0 {
		httpOpts = append(httpOpts, http.WithHeaders(config.Headers))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if proxy != nil {
		httpOpts = append(httpOpts, http.WithProxy(proxy))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new API client. It performs no network I/O.
func New(config *twoindex.Config) (*Client, error) {
	if config == nil {
		return nil, twoindex.ErrConfigRequired
	}

	if strings.TrimSpace(config.AccessToken) == "" {
		return nil, twoindex.ErrAccessTokenRequired
	}

	baseURL, err := validateBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	var proxy *url.URL

	if config.ProxyURL != "" {
		proxy, err = url.Parse(config.ProxyURL)
		if err != nil || proxy.Host == "" {
			return nil, fmt.Errorf("%w: %q", twoindex.ErrInvalidProxyURL, config.ProxyURL)
		}
	}

	httpClient := http.NewClient(baseURL, config.AccessToken, createHTTPClientOptions(config, proxy)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

func validateBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return constants.DefaultBaseURL, nil
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", twoindex.ErrInvalidBaseURL, baseURL)
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return baseURL, nil
}

func (c *Client) initializeResourceClients() {
	c.account = NewAccountClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient)
	c.links = NewLinksClient(c.httpClient)
	c.sitemaps = NewSitemapsClient(c.httpClient)
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Account implements twoindex.Client.Account.
func (c *Client) Account() twoindex.AccountClient {
	return c.account
}

// Projects implements twoindex.Client.Projects.
func (c *Client) Projects() twoindex.ProjectsClient {
	return c.projects
}

// Links implements twoindex.Client.Links.
func (c *Client) Links() twoindex.LinksClient {
	return c.links
}

// Sitemaps implements twoindex.Client.Sitemaps.
func (c *Client) Sitemaps() twoindex.SitemapsClient {
	return c.sitemaps
}

// GetAccount implements twoindex.Client.GetAccount.
func (c *Client) GetAccount(ctx context.Context) (*twoindex.Account, error) {
	return c.account.Get(ctx)
}

// GetProjects implements twoindex.Client.GetProjects.
func (c *Client) GetProjects(ctx context.Context) ([]twoindex.Project, error) {
	return c.projects.List(ctx)
}

// GetProject implements twoindex.Client.GetProject.
func (c *Client) GetProject(ctx context.Context, projectID int) (*twoindex.Project, error) {
	return c.projects.Get(ctx, projectID)
}

// CreateIndexingProject implements twoindex.Client.CreateIndexingProject.
func (c *Client) CreateIndexingProject(ctx context.Context, request *twoindex.IndexingProjectCreateRequest) (string, error) {
	return c.projects.CreateIndexing(ctx, request)
}

// CreateIndexingCheckProject implements twoindex.Client.CreateIndexingCheckProject.
func (c *Client) CreateIndexingCheckProject(ctx context.Context, request *twoindex.IndexingCheckProjectCreateRequest) (string, error) {
	return c.projects.CreateIndexingCheck(ctx, request)
}

// ClearQueue implements twoindex.Client.ClearQueue.
func (c *Client) ClearQueue(ctx context.Context, projectID int) (string, error) {
	return c.projects.ClearQueue(ctx, projectID)
}

// AddLinks implements twoindex.Client.AddLinks.
func (c *Client) AddLinks(ctx context.Context, request *twoindex.LinksAddRequest) (string, error) {
	return c.links.Add(ctx, request)
}

// AddLinksSimple implements twoindex.Client.AddLinksSimple.
func (c *Client) AddLinksSimple(ctx context.Context, request *twoindex.LinksAddSimpleRequest) (*twoindex.AddedLinksSimpleResponse, error) {
	return c.links.AddSimple(ctx, request)
}

// GetLinkSources implements twoindex.Client.GetLinkSources.
func (c *Client) GetLinkSources(ctx context.Context, projectID int) ([]twoindex.LinkSource, error) {
	return c.links.ListSources(ctx, projectID)
}

// AddSitemap implements twoindex.Client.AddSitemap.
func (c *Client) AddSitemap(ctx context.Context, request *twoindex.SitemapAddRequest) (string, error) {
	return c.sitemaps.Add(ctx, request)
}

// UpdateSitemapWatch implements twoindex.Client.UpdateSitemapWatch.
func (c *Client) UpdateSitemapWatch(ctx context.Context, projectID, sitemapID int, watch bool) (bool, error) {
	return c.sitemaps.UpdateWatch(ctx, projectID, sitemapID, watch)
}

// DeleteSitemap implements twoindex.Client.DeleteSitemap.
func (c *Client) DeleteSitemap(ctx context.Context, projectID, sitemapID int) (string, error) {
	return c.sitemaps.Delete(ctx, projectID, sitemapID)
}

// decodeField decodes one member of a JSON object response into T. A
// response that is not an object, lacks the key or does not fit T means the
// API broke its contract and is reported as a NetworkError.
func decodeField[T any](resp *http.Response, key string) (T, error) {
	var zero T

	var fields map[string]json.RawMessage

	err := json.Unmarshal(resp.Body, &fields)
	if err != nil || fields == nil {
		return zero, protocolError(resp, fmt.Errorf("%w: expected an object", twoindex.ErrInvalidResponse))
	}

	raw, ok := fields[key]
	if !ok {
		return zero, protocolError(resp, fmt.Errorf("%w: %q", twoindex.ErrMissingResponseKey, key))
	}

	var value T

	err = json.Unmarshal(raw, &value)
	if err != nil {
		return zero, protocolError(resp, fmt.Errorf("%w: %q: %w", twoindex.ErrInvalidResponse, key, err))
	}

	return value, nil
}

// decodeBody decodes the whole response body into T.
func decodeBody[T any](resp *http.Response) (T, error) {
	var value T

	err := json.Unmarshal(resp.Body, &value)
	if err != nil {
		var zero T

		return zero, protocolError(resp, fmt.Errorf("%w: %w", twoindex.ErrInvalidResponse, err))
	}

	return value, nil
}

// decodeMessage returns the "message" member, or "" when the API sent none.
func decodeMessage(resp *http.Response) (string, error) {
	var envelope struct {
		Message *json.RawMessage `json:"message"`
	}

	err := json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return "", protocolError(resp, fmt.Errorf("%w: expected an object", twoindex.ErrInvalidResponse))
	}

	if envelope.Message == nil {
		return "", nil
	}

	var message messageText

	err = json.Unmarshal(*envelope.Message, &message)
	if err != nil {
		return "", protocolError(resp, fmt.Errorf("%w: %q: %w", twoindex.ErrInvalidResponse, constants.KeyMessage, err))
	}

	return string(message), nil
}

// messageText accepts a JSON string, number or null.
type messageText string

func (m *messageText) UnmarshalJSON(data []byte) error {
	var value interface{}

	err := json.Unmarshal(data, &value)
	if err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}

	switch typed := value.(type) {
	case nil:
		*m = ""
	case string:
		*m = messageText(typed)
	case float64, bool:
		*m = messageText(fmt.Sprint(typed))
	default:
		return fmt.Errorf("%w: message is not a scalar", twoindex.ErrInvalidResponse)
	}

	return nil
}

func protocolError(resp *http.Response, err error) *twoindex.NetworkError {
	return &twoindex.NetworkError{StatusCode: resp.StatusCode, Err: err}
}
