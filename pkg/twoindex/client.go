package twoindex

import (
	"context"
	"net/http"
	"time"
)

// AccountClient provides access to the account endpoint.
type AccountClient interface {
	Get(ctx context.Context) (*Account, error)
}

// ProjectsClient provides access to project endpoints.
type ProjectsClient interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, projectID int) (*Project, error)
	CreateIndexing(ctx context.Context, request *IndexingProjectCreateRequest) (string, error)
	CreateIndexingCheck(ctx context.Context, request *IndexingCheckProjectCreateRequest) (string, error)
	ClearQueue(ctx context.Context, projectID int) (string, error)
}

// LinksClient provides access to link submission and link source endpoints.
type LinksClient interface {
	Add(ctx context.Context, request *LinksAddRequest) (string, error)
	AddSimple(ctx context.Context, request *LinksAddSimpleRequest) (*AddedLinksSimpleResponse, error)
	ListSources(ctx context.Context, projectID int) ([]LinkSource, error)
}

// SitemapsClient provides access to sitemap endpoints.
type SitemapsClient interface {
	Add(ctx context.Context, request *SitemapAddRequest) (string, error)
	UpdateWatch(ctx context.Context, projectID, sitemapID int, watch bool) (bool, error)
	Delete(ctx context.Context, projectID, sitemapID int) (string, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Account() AccountClient
	Projects() ProjectsClient
	Links() LinksClient
	Sitemaps() SitemapsClient
}

// OperationsClient exposes every API operation as a single method.
type OperationsClient interface {
	GetAccount(ctx context.Context) (*Account, error)
	GetProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, projectID int) (*Project, error)
	CreateIndexingProject(ctx context.Context, request *IndexingProjectCreateRequest) (string, error)
	CreateIndexingCheckProject(ctx context.Context, request *IndexingCheckProjectCreateRequest) (string, error)
	ClearQueue(ctx context.Context, projectID int) (string, error)
	AddLinks(ctx context.Context, request *LinksAddRequest) (string, error)
	AddLinksSimple(ctx context.Context, request *LinksAddSimpleRequest) (*AddedLinksSimpleResponse, error)
	GetLinkSources(ctx context.Context, projectID int) ([]LinkSource, error)
	AddSitemap(ctx context.Context, request *SitemapAddRequest) (string, error)
	UpdateSitemapWatch(ctx context.Context, projectID, sitemapID int, watch bool) (bool, error)
	DeleteSitemap(ctx context.Context, projectID, sitemapID int) (string, error)
}

// Client is the 2Index Ninja API client.
type Client interface {
	ResourceClients
	OperationsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a twoindex.Client.
//
// Only AccessToken is required. Everything else has a default and is passed
// to the HTTP transport as-is; constructing a client never performs network
// I/O.
//
// # Timeouts and retries
//
// HTTPTimeout bounds every call (default 30s); a context deadline bounds it
// further. The client performs exactly one round trip per call unless
// RetryMax is set, in which case the transport retries connection errors,
// 429 and 5xx responses with exponential backoff between RetryWaitMin and
// RetryWaitMax.
type Config struct {
	// AccessToken: API token sent as "Authorization: Bearer <token>".
	AccessToken string

	// BaseURL: API root. Defaults to https://2index.ninja/api/v1/ and is only
	// meant to be overridden in tests.
	BaseURL string
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// HTTPTimeout: per-request timeout of the underlying HTTP client.
	HTTPTimeout time.Duration
	// Headers: extra headers added to every request.
	Headers map[string]string
	// ProxyURL: optional HTTP(S) proxy for all requests.
	ProxyURL string
	// HTTPClient: optional preconfigured HTTP client used as the transport.
	// HTTPTimeout and ProxyURL are still applied on top of it when set.
	HTTPClient *http.Client

	// RetryMax: maximum number of transport-level retries. 0 disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration

	// Debug: enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// Interceptors: optional request/response hooks run around every call.
	Interceptors *InterceptorChain
}
