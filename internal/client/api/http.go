package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/edusession/internal/client/identity"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	// DefaultIdentityTimeout bounds the current-user check.
	DefaultIdentityTimeout = 10 * time.Second

	maxBodySize = 4 << 20
)

type HTTPClient struct {
	baseURL         *url.URL
	http            *http.Client
	headers         *Headers
	identityTimeout time.Duration
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. A cookie jar is added
// when the client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithIdentityTimeout overrides DefaultIdentityTimeout.
func WithIdentityTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.identityTimeout = d
		}
	}
}

func NewHTTPClient(baseURL string, headers *Headers, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}
	if headers == nil {
		headers = NewHeaders()
	}

	c := &HTTPClient{
		baseURL:         u,
		http:            &http.Client{},
		headers:         headers,
		identityTimeout: DefaultIdentityTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}
	return c, nil
}

// Headers returns the shared default headers.
func (c *HTTPClient) Headers() *Headers {
	return c.headers
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.identityTimeout)
	defer cancel()
	return c.doJSON(ctx, http.MethodGet, PathCurrentUser, nil)
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (any, error) {
	return c.doJSON(ctx, http.MethodPost, PathLogin, req)
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (any, error) {
	return c.doJSON(ctx, http.MethodPost, PathSignup, req)
}

func (c *HTTPClient) GoogleSignup(ctx context.Context, req GoogleSignupRequest) (any, error) {
	return c.doJSON(ctx, http.MethodPost, PathGoogleSignup, req)
}

func (c *HTTPClient) LogoutPost(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodPost, PathLogout, nil)
	return err
}

func (c *HTTPClient) LogoutGet(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodGet, PathLogout, nil)
	return err
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodGet, PathHealth, nil)
	return err
}

func (c *HTTPClient) SaveProgress(ctx context.Context, p Progress) error {
	_, err := c.doJSON(ctx, http.MethodPost, PathProgress, p)
	return err
}

func (c *HTTPClient) GetProgress(ctx context.Context, userID, courseID string) (*Progress, error) {
	path := PathProgress + "/" + url.PathEscape(userID) + "/" + url.PathEscape(courseID)
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var p Progress
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return &p, nil
}

// Certificate streams the generated certificate document into w.
func (c *HTTPClient) Certificate(ctx context.Context, req CertificateRequest, w io.Writer) (int64, error) {
	resp, err := c.send(ctx, http.MethodPost, PathCertificate, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(w, resp.Body)
}

func (c *HTTPClient) GenerateQuiz(ctx context.Context, req QuizRequest) (any, error) {
	return c.doJSON(ctx, http.MethodPost, PathQuiz, req)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any) (any, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, c.mapError(ctx, err)
	}
	return decodeLenient(raw), nil
}

// send performs the request. On a non-2xx status the body is consumed and
// a *StatusError returned; on success the caller owns resp.Body.
func (c *HTTPClient) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return nil, err
	}
	c.headers.Apply(req)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.mapError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		payload := decodeLenient(raw)
		return nil, &StatusError{Code: resp.StatusCode, Message: messageFrom(payload), Payload: payload}
	}
	return resp, nil
}

func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// decodeLenient returns decoded JSON, or the raw text when it is not JSON.
func decodeLenient(raw []byte) any {
	v, err := identity.Decode(raw)
	if err != nil {
		return string(raw)
	}
	return v
}
