package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/medmate/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/publicsuffix"
)

const (
	RequestIDHeaderName = "X-Request-ID"
	tracerName          = "github.com/dmitrijs2005/medmate/internal/client/client"
)

// Executor runs exactly one HTTP call per Do with a hard time bound, the
// session cookie attached, and errors classified into this package's
// taxonomy. It never retries.
type Executor struct {
	baseURL        *url.URL
	httpClient     *http.Client
	logger         logging.Logger
	tracer         trace.Tracer
	defaultTimeout time.Duration

	cookies     CookieStore
	restoreOnce sync.Once
}

// CookieStore keeps the backend's cookies between processes so a session
// outlives a restart. An empty slice means there is no session to keep.
type CookieStore interface {
	LoadCookies(ctx context.Context) ([]*http.Cookie, error)
	SaveCookies(ctx context.Context, cookies []*http.Cookie) error
}

type ExecutorOption func(*Executor)

// WithHTTPClient replaces the underlying client. The caller's client must
// carry its own cookie jar if session continuity is wanted.
func WithHTTPClient(c *http.Client) ExecutorOption {
	return func(e *Executor) { e.httpClient = c }
}

func WithLogger(l logging.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = l }
}

// WithTracerProvider traces calls with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) ExecutorOption {
	return func(e *Executor) { e.tracer = tp.Tracer(tracerName) }
}

// WithCookieStore restores the cookie jar from store before the first call
// and writes it back whenever the backend sets a cookie.
func WithCookieStore(store CookieStore) ExecutorOption {
	return func(e *Executor) { e.cookies = store }
}

// WithDefaultTimeout sets the budget used when a Request has none.
func WithDefaultTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.defaultTimeout = d }
}

func NewExecutor(baseURL string, opts ...ExecutorOption) (*Executor, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base url must be http or https, got %q", ErrInvalidArgument, baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	e := &Executor{
		baseURL:        u,
		httpClient:     &http.Client{Jar: jar},
		logger:         logging.NewNopLogger(),
		tracer:         otel.Tracer(tracerName),
		defaultTimeout: DefaultTimeouts().Default,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Do executes req and decodes a 2xx JSON body into out (which may be nil).
// If out has a Validate method it is called after decoding.
func (e *Executor) Do(ctx context.Context, req Request, out any) error {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}
	e.restoreOnce.Do(func() { e.restoreCookies(ctx) })

	ctx, cancel := context.WithTimeoutCause(ctx, timeout, ErrTimeout)
	defer cancel()

	requestID := uuid.NewString()
	ctx, span := e.tracer.Start(ctx, "medmate "+req.Method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
			attribute.String("medmate.request_id", requestID),
		))
	defer span.End()

	log := e.logger.With("method", req.Method, "path", req.Path, "request_id", requestID)
	started := time.Now()

	status, err := e.do(ctx, req, requestID, out)

	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		log.Debug(ctx, "request failed", "status", status, "duration", time.Since(started), "error", err)
		return err
	}
	log.Debug(ctx, "request finished", "status", status, "duration", time.Since(started))
	return nil
}

func (e *Executor) do(ctx context.Context, req Request, requestID string, out any) (int, error) {
	body, contentType, err := req.encode()
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, e.resolve(req.Path, req.Query), body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeaderName, requestID)
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return 0, classify(ctx, err)
	}
	defer resp.Body.Close()
	if len(resp.Cookies()) > 0 {
		e.saveCookies(ctx)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, classify(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		_ = json.Unmarshal(respBody, &errResp)
		return resp.StatusCode, newAPIError(resp.StatusCode, errResp)
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decoding response: %v", ErrInvalidResponse, err)
	}
	if v, ok := out.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return resp.StatusCode, nil
}

func (e *Executor) restoreCookies(ctx context.Context) {
	if e.cookies == nil || e.httpClient.Jar == nil {
		return
	}
	cookies, err := e.cookies.LoadCookies(ctx)
	if err != nil {
		e.logger.Warn(ctx, "stored session unreadable", "error", err)
		return
	}
	if len(cookies) > 0 {
		e.httpClient.Jar.SetCookies(e.baseURL, cookies)
	}
}

// saveCookies persists the jar after the backend changed it. A failure only
// costs the session on the next start, so it is logged.
func (e *Executor) saveCookies(ctx context.Context) {
	if e.cookies == nil || e.httpClient.Jar == nil {
		return
	}
	if err := e.cookies.SaveCookies(ctx, e.httpClient.Jar.Cookies(e.baseURL)); err != nil {
		e.logger.Warn(ctx, "could not store session", "error", err)
	}
}

// resolve joins path onto the base URL. path is expected to be escaped
// already.
func (e *Executor) resolve(path string, query url.Values) string {
	target := e.baseURL.String() + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// classify maps a transport error to ErrTimeout, the caller's cancellation,
// or a *NetworkError.
func classify(ctx context.Context, err error) error {
	if cause := context.Cause(ctx); cause != nil {
		if errors.Is(cause, ErrTimeout) || errors.Is(cause, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return cause
	}
	return &NetworkError{Err: err}
}
