package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/2index-ninja/sdk-go/internal/constants"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// Client executes API calls: one JSON request, one decoded verdict.
type Client struct {
	baseURL      string
	accessToken  string
	httpClient   *retryablehttp.Client
	userAgent    string
	headers      map[string]string
	logger       twoindex.Logger
	debug        bool
	interceptors *twoindex.InterceptorChain

	timeout      time.Duration
	proxy        *url.URL
	baseClient   *http.Client
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// Request represents an HTTP request. Path is resolved against the base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures the HTTP client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger twoindex.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for key, value := range headers {
			c.headers[key] = value
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithProxy routes every request through the given proxy.
func WithProxy(proxy *url.URL) Option {
	return func(c *Client) {
		c.proxy = proxy
	}
}

// WithHTTPClient sets the underlying HTTP client. Its timeout and, when a
// proxy is configured, its transport proxy are overridden.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.baseClient = httpClient
	}
}

// WithRetryConfig enables transport retries for connection errors, 429 and
// 5xx responses.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = maxRetries
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithInterceptors sets the interceptor chain run around every request.
func WithInterceptors(chain *twoindex.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new HTTP client for the API rooted at baseURL.
func NewClient(baseURL, accessToken string, opts ...Option) *Client {
	client := &Client{
		baseURL:      normalizeBaseURL(baseURL),
		accessToken:  accessToken,
		userAgent:    constants.DefaultUserAgent,
		headers:      make(map[string]string),
		timeout:      constants.DefaultHTTPTimeout,
		retryMax:     constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.httpClient = client.buildTransport()

	return client
}

func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return baseURL
}

func (c *Client) buildTransport() *retryablehttp.Client {
	var httpClient *http.Client

	if c.baseClient != nil {
		clone := *c.baseClient
		httpClient = &clone
	} else {
		httpClient = cleanhttp.DefaultPooledClient()
	}

	httpClient.Timeout = c.timeout

	if c.proxy != nil {
		transport, ok := httpClient.Transport.(*http.Transport)
		if ok {
			transport = transport.Clone()
		} else {
			transport = cleanhttp.DefaultPooledTransport()
		}

		transport.Proxy = http.ProxyURL(c.proxy)
		httpClient.Transport = transport
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.RetryMax = c.retryMax
	retryClient.RetryWaitMin = c.retryWaitMin
	retryClient.RetryWaitMax = c.retryWaitMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if c.debug && c.logger != nil && c.retryMax > 0 {
		retryClient.Logger = &leveledLogger{logger: c.logger}
	}

	return retryClient
}

// Do performs one API call. The response is returned alongside an APIError
// so callers can inspect the status; a NetworkError may come with or without
// a response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, &twoindex.NetworkError{Op: req.Method, URL: req.Path, Err: err}
	}

	var body []byte

	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	intercepted := &twoindex.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: c.buildHeaders(req, body != nil),
		Body:    body,
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyArgument(intercepted.Body))
	if err != nil {
		return nil, &twoindex.NetworkError{Op: req.Method, URL: fullURL, Err: fmt.Errorf("creating request: %w", err)}
	}

	httpReq.Header = intercepted.Headers

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		netErr := &twoindex.NetworkError{Op: req.Method, URL: fullURL, Err: err}
		_ = c.runResponseInterceptors(ctx, intercepted, &twoindex.Response{Error: netErr})

		if c.debug && c.logger != nil {
			c.logger.Error("HTTP Request Failed", map[string]interface{}{
				"method":   req.Method,
				"url":      fullURL,
				"error":    err.Error(),
				"duration": time.Since(start).String(),
			})
		}

		return nil, netErr
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		netErr := &twoindex.NetworkError{
			Op:         req.Method,
			URL:        fullURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("reading response body: %w", err),
		}
		_ = c.runResponseInterceptors(ctx, intercepted, &twoindex.Response{StatusCode: resp.StatusCode, Error: netErr})

		return nil, netErr
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
			"size":     len(respBody),
		})
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	outcome := Evaluate(resp.StatusCode, respBody)

	netErr := &twoindex.NetworkError{}
	if errors.As(outcome.Err, &netErr) {
		netErr.Op = req.Method
		netErr.URL = fullURL
	}

	err = c.runResponseInterceptors(ctx, intercepted, &twoindex.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
		Error:      outcome.Err,
	})
	if err != nil && outcome.Err == nil {
		return response, err
	}

	return response, outcome.Err
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *twoindex.Request, resp *twoindex.Response) error {
	if c.interceptors == nil {
		return nil
	}

	return c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parsing path: %w", err)
	}

	resolved := base.ResolveReference(ref)
	if len(query) > 0 {
		resolved.RawQuery = query.Encode()
	}

	return resolved.String(), nil
}

func (c *Client) buildHeaders(req *Request, hasBody bool) http.Header {
	headers := make(http.Header)
	headers.Set("Authorization", "Bearer "+c.accessToken)
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", c.userAgent)

	if hasBody {
		headers.Set("Content-Type", "application/json")
	}

	for key, value := range c.headers {
		headers.Set(key, value)
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	return headers
}

func bodyArgument(body []byte) interface{} {
	if body == nil {
		return nil
	}

	return body
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// leveledLogger adapts twoindex.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger twoindex.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		if err, isErr := keysAndValues[i+1].(error); isErr {
			fields[key] = err.Error()

			continue
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}
