package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/dbytex91/nasavideos/internal/metrics"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultAPIURL = "https://images-api.nasa.gov"

	MIMEApplicationJSON = "application/json"
	MIMEApplicationForm = "application/x-www-form-urlencoded"
)

// Client talks to the NASA image and video library API.
type Client struct {
	client *resty.Client
	apiURL string
	// apiKey is kept for parity with the other NASA APIs; the search
	// endpoint is public and never receives it.
	apiKey string
}

type Option func(*Client)

// RequestOptions describes a single call made through Send.
type RequestOptions struct {
	Method  string
	Query   url.Values
	Headers map[string]string
	Body    any
}

// APIError carries the decoded body of an upstream response with a status
// code of 400 or above. Body is the decoded JSON value for JSON responses and
// the raw text otherwise.
type APIError struct {
	StatusCode int
	Body       any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nasa: api responded with status %d: %v", e.StatusCode, e.Body)
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			m.ObserveUpstream(resp.Request.Method, resp.StatusCode(), resp.Time())
			return nil
		})
		c.client.OnError(func(req *resty.Request, _ error) {
			m.ObserveUpstreamFailure(req.Method)
		})
	}
}

func New(apiURL string, apiKey string, opts ...Option) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	c := &Client{
		client: resty.New(),
		apiURL: apiURL,
		apiKey: apiKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BuildURL resolves target against the API URL. A bare path is appended to
// the API URL's path, an absolute http(s) URL replaces scheme, host and path.
// query is merged into whatever query the resolved URL already carries.
func (c *Client) BuildURL(target string, query url.Values) (string, error) {
	var u *url.URL
	var err error

	if strings.HasPrefix(target, "http") {
		u, err = url.Parse(target)
	} else {
		u, err = url.Parse(c.apiURL)
		if err == nil {
			u.Path = path.Join("/", u.Path, target)
		}
	}
	if err != nil {
		return "", fmt.Errorf("nasa: invalid url: %w", err)
	}

	values := u.Query()
	for key, vs := range query {
		for _, v := range vs {
			values.Add(key, v)
		}
	}
	u.RawQuery = values.Encode()

	return u.String(), nil
}

func (c *Client) Get(ctx context.Context, pathname string, query url.Values, out any) error {
	return c.Send(ctx, pathname, RequestOptions{Query: query}, out)
}

func (c *Client) Post(ctx context.Context, pathname string, body any, query url.Values, headers map[string]string, out any) error {
	return c.Send(ctx, pathname, RequestOptions{
		Method:  http.MethodPost,
		Query:   query,
		Headers: headers,
		Body:    body,
	}, out)
}

func (c *Client) Put(ctx context.Context, pathname string, body any, query url.Values, headers map[string]string, out any) error {
	return c.Send(ctx, pathname, RequestOptions{
		Method:  http.MethodPut,
		Query:   query,
		Headers: headers,
		Body:    body,
	}, out)
}

func (c *Client) Delete(ctx context.Context, pathname string, query url.Values, out any) error {
	return c.Send(ctx, pathname, RequestOptions{
		Method: http.MethodDelete,
		Query:  query,
	}, out)
}

// Send issues the request and decodes the response into out, which should be
// a pointer. Responses with status 204 leave out untouched. Transport errors
// are returned as is, upstream failures as *APIError.
func (c *Client) Send(ctx context.Context, target string, opts RequestOptions, out any) error {
	fullURL, err := c.BuildURL(target, opts.Query)
	if err != nil {
		return err
	}

	req := c.client.R().
		SetContext(ctx).
		SetHeaders(opts.Headers)

	if opts.Body != nil {
		body, err := encodeBody(headerValue(opts.Headers, "Content-Type"), opts.Body)
		if err != nil {
			return err
		}
		req.SetBody(body)
	}

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}

	resp, err := req.Execute(method, fullURL)
	if err != nil {
		return err
	}

	return decodeResponse(resp.StatusCode(), resp.Header().Get("Content-Type"), resp.Body(), out)
}

func encodeBody(contentType string, body any) (any, error) {
	switch b := body.(type) {
	case string, []byte, io.Reader:
		return b, nil
	}

	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch mediaType {
	case MIMEApplicationJSON:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("nasa: encode json body: %w", err)
		}
		return data, nil
	case MIMEApplicationForm:
		values, err := formValues(body)
		if err != nil {
			return nil, err
		}
		return values.Encode(), nil
	default:
		if s, ok := primitiveString(body); ok {
			return s, nil
		}
		return nil, fmt.Errorf("nasa: cannot encode body of type %T as %q", body, contentType)
	}
}

func decodeResponse(status int, contentType string, body []byte, out any) error {
	if strings.Contains(contentType, "json") {
		if status >= http.StatusBadRequest {
			return &APIError{StatusCode: status, Body: decodeErrorBody(body)}
		}
		if status == http.StatusNoContent {
			return nil
		}
		return decodeJSON(body, out)
	}

	if status >= http.StatusBadRequest {
		return &APIError{StatusCode: status, Body: string(body)}
	}
	if status == http.StatusNoContent {
		return nil
	}
	return decodeText(string(body), out)
}

// decodeJSON unwraps one level of string encoding, the API sometimes sends
// a JSON document serialized as a JSON string.
func decodeJSON(body []byte, out any) error {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("nasa: decode response: %w", err)
	}

	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		raw = json.RawMessage(nested)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("nasa: decode response: %w", err)
	}

	return nil
}

func decodeErrorBody(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}

func decodeText(text string, out any) error {
	switch o := out.(type) {
	case nil:
	case *string:
		*o = text
	case *any:
		*o = text
	case *[]byte:
		*o = []byte(text)
	default:
		return fmt.Errorf("nasa: cannot decode text response into %T", out)
	}
	return nil
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
