// Package graphqltest provides a GraphQL HTTP endpoint for exercising
// clients. Operations are answered by registered Go functions instead of an
// executor; documents are parsed, optionally validated against a schema, and
// may be sent as persisted or automatically persisted queries.
package graphqltest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/hanpama/graphshape/internal/language"
	"github.com/hanpama/graphshape/internal/operation"
	reqid "github.com/hanpama/graphshape/internal/reqid"
)

// Error codes reported in the extensions of a response error.
const (
	CodePersistedQueryNotFound = "PERSISTED_QUERY_NOT_FOUND"
	CodeInvalidHash            = "PERSISTED_QUERY_HASH_MISMATCH"
	CodeParseFailed            = "GRAPHQL_PARSE_FAILED"
	CodeValidationFailed       = "GRAPHQL_VALIDATION_FAILED"
	CodeBadRequest             = "BAD_REQUEST"
)

// Resolver answers one operation. The request's Query is always the full
// document text, also when the client sent only its hash.
type Resolver func(ctx context.Context, req Request) Result

// Handler is an http.Handler that serves a GraphQL endpoint.
type Handler struct {
	opt       Options
	schema    *language.Schema
	mu        sync.Mutex
	resolvers map[string]Resolver
	persisted map[string]string
	requests  []Request
}

type Options struct {
	// Timeout sets a default timeout if the incoming request context has none.
	// 0 means no default timeout.
	Timeout time.Duration

	// Pretty enables indented JSON responses.
	Pretty bool

	// MaxBodyBytes limits the size of the request body. 0 means unlimited.
	MaxBodyBytes int64

	// SDL, when set, is the schema every document is validated against.
	SDL string

	// Persisted lists documents the server knows before any request.
	Persisted []string

	// DisableAutomaticPersistence rejects hash-and-text registrations, so
	// only documents in Persisted can be sent by hash.
	DisableAutomaticPersistence bool
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }
func WithPretty() Option                 { return func(o *Options) { o.Pretty = true } }
func WithMaxBodyBytes(n int64) Option    { return func(o *Options) { o.MaxBodyBytes = n } }
func WithSchema(sdl string) Option       { return func(o *Options) { o.SDL = sdl } }
func WithPersisted(documents ...string) Option {
	return func(o *Options) { o.Persisted = append(o.Persisted, documents...) }
}
func WithoutAutomaticPersistence() Option {
	return func(o *Options) { o.DisableAutomaticPersistence = true }
}

// New creates a handler. It fails when the schema does not load.
func New(opts ...Option) (*Handler, error) {
	op := Options{Timeout: 10 * time.Second}
	for _, f := range opts {
		f(&op)
	}
	h := &Handler{
		opt:       op,
		resolvers: map[string]Resolver{},
		persisted: map[string]string{},
	}
	if op.SDL != "" {
		s, err := language.LoadSchema("schema.graphqls", op.SDL)
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}
		h.schema = s
	}
	for _, doc := range op.Persisted {
		h.persisted[operation.Identifier(doc)] = doc
	}
	return h, nil
}

// Handle registers r for the operation named name.
func (h *Handler) Handle(name string, r Resolver) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resolvers[name] = r
}

// Requests returns every request received so far, in order.
func (h *Handler) Requests() []Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Request(nil), h.requests...)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := ctx.Deadline(); !ok && h.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opt.Timeout)
		defer cancel()
	}
	ctx, _ = reqid.FromHeader(ctx, r.Header.Get(reqid.Header))

	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResult(CodeBadRequest, "method not allowed"), h.opt.Pretty)
		return
	}

	req, err := parseRequest(r, h.opt.MaxBodyBytes)
	if err != nil {
		status := http.StatusBadRequest
		if err.Message == errBodyTooLargeMessage {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, Result{Errors: []Error{*err}}, h.opt.Pretty)
		return
	}
	req.RequestID = r.Header.Get(reqid.Header)

	h.mu.Lock()
	h.requests = append(h.requests, req)
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, h.executeOne(ctx, req), h.opt.Pretty)
}

func (h *Handler) executeOne(ctx context.Context, req Request) Result {
	text, res, ok := h.document(req)
	if !ok {
		return res
	}
	req.Query = text

	var (
		doc *language.QueryDocument
		err error
	)
	if h.schema != nil {
		doc, err = language.LoadQuery(h.schema, text)
		if err != nil {
			return errorResult(CodeValidationFailed, err.Error())
		}
	} else if doc, err = language.ParseQuery(text); err != nil {
		return errorResult(CodeParseFailed, err.Error())
	}
	op, err := language.SelectOperation(doc, req.OperationName)
	if err != nil {
		return errorResult(CodeBadRequest, err.Error())
	}

	h.mu.Lock()
	resolve := h.resolvers[op.Name]
	h.mu.Unlock()
	if resolve == nil {
		return errorResult(CodeBadRequest, fmt.Sprintf("no resolver for operation %q", op.Name))
	}
	return resolve(ctx, req)
}

// document resolves the text of req, registering automatically persisted
// documents on the way.
func (h *Handler) document(req Request) (string, Result, bool) {
	hash := req.Hash()
	if hash == "" {
		if req.Query == "" {
			return "", errorResult(CodeBadRequest, "missing 'query'"), false
		}
		return req.Query, Result{}, true
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if req.Query == "" {
		text, ok := h.persisted[hash]
		if !ok {
			return "", errorResult(CodePersistedQueryNotFound, "PersistedQueryNotFound"), false
		}
		return text, Result{}, true
	}
	if h.opt.DisableAutomaticPersistence {
		return "", errorResult(CodeBadRequest, "automatic persisted queries are disabled"), false
	}
	if operation.Identifier(req.Query) != hash {
		return "", errorResult(CodeInvalidHash, "provided sha does not match query"), false
	}
	h.persisted[hash] = req.Query
	return req.Query, Result{}, true
}

// ------------------ Request parsing ------------------

// Request is one GraphQL-over-HTTP request as received.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
	Extensions    map[string]any `json:"extensions,omitempty"`

	// RequestID is the raw X-Request-Id header.
	RequestID string `json:"-"`
}

// Hash returns the persisted query hash carried in the extensions.
func (r Request) Hash() string {
	pq, _ := r.Extensions["persistedQuery"].(map[string]any)
	hash, _ := pq["sha256Hash"].(string)
	return hash
}

func parseRequest(r *http.Request, maxBody int64) (Request, *Error) {
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req := Request{Query: q.Get("query"), OperationName: q.Get("operationName")}
		if v := q.Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				return Request{}, &Error{Message: "invalid 'variables' JSON"}
			}
		}
		if v := q.Get("extensions"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Extensions); err != nil {
				return Request{}, &Error{Message: "invalid 'extensions' JSON"}
			}
		}
		return req, nil
	}

	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" && !strings.HasPrefix(ct, "application/json;") {
		return Request{}, &Error{Message: "unsupported Content-Type"}
	}
	reader := io.Reader(r.Body)
	if maxBody > 0 {
		reader = io.LimitReader(r.Body, maxBody+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return Request{}, &Error{Message: "failed to read body"}
	}
	defer r.Body.Close()
	if maxBody > 0 && int64(len(body)) > maxBody {
		return Request{}, &Error{Message: errBodyTooLargeMessage}
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return Request{}, &Error{Message: "invalid JSON"}
	}
	return req, nil
}

// ------------------ Response formatting ------------------

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is one entry of a response's errors list.
type Error struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations,omitempty"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Result is a response body. Data is written even when nil.
type Result struct {
	Data   any     `json:"data"`
	Errors []Error `json:"errors,omitempty"`
}

// Data answers with data and no errors.
func Data(data any) Result { return Result{Data: data} }

func errorResult(code, message string) Result {
	return Result{Errors: []Error{{Message: message, Extensions: map[string]any{"code": code}}}}
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}

const errBodyTooLargeMessage = "body too large"
