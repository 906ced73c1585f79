package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/hashicorp/go-retryablehttp"
)

// Client is a retrying HTTP client for the BookHub API.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	logger     bookhub.Logger
	debug      bool
	userAgent  string
	chain      *bookhub.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output and retry diagnostics.
func WithLogger(logger bookhub.Logger) Option {
	return func(c *Client) {
		c.logger = bookhub.LoggerOrNop(logger)
		c.httpClient.Logger = leveledLogger{logger: c.logger}
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig enables retries of 5xx, 429 and connection errors.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax

		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithTimeout bounds a single HTTP attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *bookhub.InterceptorChain) Option {
	return func(c *Client) {
		c.chain = chain
	}
}

// Request is a single API call.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      interface{}
	Multipart *MultipartBody
	Headers   map[string]string
	// Token is sent as a bearer token when non-empty.
	Token string
}

// MultipartBody is a form with one JSON part and optional file parts.
type MultipartBody struct {
	JSONField string
	JSON      interface{}
	Files     []FilePart
}

// FilePart is one file of a multipart form. Parts with a nil File are skipped.
type FilePart struct {
	Field string
	File  *bookhub.FileUpload
}

// Response is the raw result of a call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	RequestID  string
}

// StatusError is returned for error statuses whose body is not a result envelope.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// NewClient creates a client for baseURL. Retries are off unless WithRetryConfig is given.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = leveledLogger{logger: bookhub.NopLogger{}}

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: retryClient,
		logger:     bookhub.NopLogger{},
		userAgent:  constants.UserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes req. Error statuses with an envelope body come back as a
// *bookhub.Failure together with the response; other error statuses as *StatusError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	bodyBytes, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	var rawBody interface{}
	if len(bodyBytes) > 0 {
		rawBody = bodyBytes
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	intercepted := &bookhub.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: httpReq.Header,
		Body:    bodyBytes,
	}

	if c.chain != nil {
		err = c.chain.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     req.Method,
			"url":        fullURL,
			"request_id": httpReq.Header.Get(bookhub.RequestIDHeader),
		})
	}

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.afterResponse(ctx, intercepted, &bookhub.Response{Error: err})

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
		RequestID:  httpReq.Header.Get(bookhub.RequestIDHeader),
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":     resp.StatusCode,
			"duration":   time.Since(start).String(),
			"request_id": response.RequestID,
		})
	}

	c.afterResponse(ctx, intercepted, &bookhub.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	})

	if resp.StatusCode >= constants.HTTPStatusBadRequest {
		failure, parseErr := bookhub.ParseResultError(respBody)
		if parseErr == nil {
			return response, failure
		}

		return response, &StatusError{StatusCode: resp.StatusCode, Body: respBody}
	}

	return response, nil
}

func (c *Client) afterResponse(ctx context.Context, req *bookhub.Request, resp *bookhub.Response) {
	if c.chain == nil {
		return
	}

	err := c.chain.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{"error": err.Error()})
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, token string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query, Token: token})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}, token string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body, Token: token})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}, token string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body, Token: token})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}, token string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body, Token: token})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, token string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Token: token})
}

func encodeBody(req *Request) ([]byte, string, error) {
	if req.Multipart != nil {
		return encodeMultipart(req.Multipart)
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling request body: %w", err)
	}

	return data, "application/json", nil
}

func encodeMultipart(body *MultipartBody) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	if body.JSONField != "" {
		data, err := json.Marshal(body.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("marshaling %s part: %w", body.JSONField, err)
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, body.JSONField))
		header.Set("Content-Type", "application/json")

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating %s part: %w", body.JSONField, err)
		}

		_, err = part.Write(data)
		if err != nil {
			return nil, "", fmt.Errorf("writing %s part: %w", body.JSONField, err)
		}
	}

	for _, file := range body.Files {
		if file.File == nil || file.File.Content == nil {
			continue
		}

		part, err := writer.CreateFormFile(file.Field, file.File.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("creating %s part: %w", file.Field, err)
		}

		_, err = io.Copy(part, file.File.Content)
		if err != nil {
			return nil, "", fmt.Errorf("writing %s part: %w", file.Field, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// leveledLogger bridges retryablehttp's key/value logging to bookhub.Logger.
type leveledLogger struct {
	logger bookhub.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}
