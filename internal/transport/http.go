package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	eventbus "github.com/hanpama/graphshape/internal/eventbus"
	events "github.com/hanpama/graphshape/internal/events"
	reqid "github.com/hanpama/graphshape/internal/reqid"
)

type Options struct {
	// Client performs the round trips. Defaults to http.DefaultClient.
	Client *http.Client

	// Timeout sets a default timeout if the context has none.
	// 0 means no default timeout.
	Timeout time.Duration

	// MaxBodyBytes limits the size of the response body. 0 means unlimited.
	MaxBodyBytes int64

	// Header is added to every request.
	Header http.Header

	Logger *zap.Logger
}

type Option func(*Options)

func WithHTTPClient(c *http.Client) Option { return func(o *Options) { o.Client = c } }
func WithTimeout(d time.Duration) Option   { return func(o *Options) { o.Timeout = d } }
func WithMaxBodyBytes(n int64) Option      { return func(o *Options) { o.MaxBodyBytes = n } }
func WithLogger(l *zap.Logger) Option      { return func(o *Options) { o.Logger = l } }
func WithHeader(key, value string) Option {
	return func(o *Options) { o.Header.Add(key, value) }
}

// HTTP posts requests as JSON to a single endpoint.
type HTTP struct {
	endpoint string
	opt      Options
}

var _ Transport = (*HTTP)(nil)

// NewHTTP creates a transport for endpoint.
func NewHTTP(endpoint string, opts ...Option) *HTTP {
	op := Options{
		Client:  http.DefaultClient,
		Timeout: 30 * time.Second,
		Header:  http.Header{},
		Logger:  zap.NewNop(),
	}
	for _, f := range opts {
		f(&op)
	}
	return &HTTP{endpoint: endpoint, opt: op}
}

// Logger returns the transport's logger.
func (h *HTTP) Logger() *zap.Logger { return h.opt.Logger }

// Send posts body once. A non-2xx answer is returned as a Response when it
// carries a GraphQL response and as a *StatusError otherwise.
func (h *HTTP) Send(ctx context.Context, body []byte) (*Response, error) {
	if _, ok := ctx.Deadline(); !ok && h.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opt.Timeout)
		defer cancel()
	}
	ctx, rid := reqid.Ensure(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range h.opt.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/graphql-response+json, application/json")
	req.Header.Set(reqid.Header, reqid.Format(rid))

	start := time.Now()
	status, n := 0, 0
	eventbus.Publish(ctx, events.HTTPAttemptStart{Request: req, WithQuery: hasQuery(body)})
	defer func() {
		eventbus.Publish(ctx, events.HTTPAttemptFinish{Request: req, Status: status, Bytes: n, Err: err, Duration: time.Since(start)})
	}()

	res, err := h.opt.Client.Do(req)
	if err != nil {
		h.opt.Logger.Debug("graphql request failed", zap.String("endpoint", h.endpoint), zap.Error(err))
		return nil, err
	}
	defer res.Body.Close()
	status = res.StatusCode

	reader := io.Reader(res.Body)
	if h.opt.MaxBodyBytes > 0 {
		reader = io.LimitReader(res.Body, h.opt.MaxBodyBytes+1)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	n = len(raw)
	if h.opt.MaxBodyBytes > 0 && int64(n) > h.opt.MaxBodyBytes {
		err = fmt.Errorf("response body exceeds %d bytes", h.opt.MaxBodyBytes)
		return nil, err
	}
	h.opt.Logger.Debug("graphql response",
		zap.String("endpoint", h.endpoint),
		zap.Int("status", status),
		zap.Int("bytes", n),
		zap.Duration("duration", time.Since(start)),
	)

	if (status < 200 || status > 299) && !IsGraphQLResponse(raw) {
		err = &StatusError{Code: status, Body: raw}
		return nil, err
	}
	resp, err := DecodeResponse(raw)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
