package graphqltest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/hanpama/graphshape/internal/operation"
	reqid "github.com/hanpama/graphshape/internal/reqid"
)

const helloQuery = `query Hello { hello }`

func newTestHandler(t *testing.T, opts ...Option) *Handler {
	t.Helper()
	h, err := New(append([]Option{WithSchema(`type Query { hello: String }`)}, opts...)...)
	require.NoError(t, err)
	h.Handle("Hello", func(ctx context.Context, req Request) Result {
		return Data(map[string]any{"hello": "world"})
	})
	return h
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func apqBody(hash, query string) string {
	ext := `"extensions":{"persistedQuery":{"version":1,"sha256Hash":"` + hash + `"}}`
	if query == "" {
		return `{` + ext + `}`
	}
	return `{"query":` + strconv.Quote(query) + `,` + ext + `}`
}

func TestLiteralQuery(t *testing.T) {
	h := newTestHandler(t)
	w := post(h, `{"query":"query Hello { hello }"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"data":{"hello":"world"}}`, w.Body.String())
	require.Len(t, h.Requests(), 1)
}

func TestGetQuery(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest("GET", "/?query="+url.QueryEscape(helloQuery), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "world", gjson.Get(w.Body.String(), "data.hello").String())
}

func TestAutomaticPersistedQuery(t *testing.T) {
	h := newTestHandler(t)
	hash := operation.Identifier(helloQuery)

	w := post(h, apqBody(hash, ""))
	require.Equal(t, CodePersistedQueryNotFound, gjson.Get(w.Body.String(), "errors.0.extensions.code").String())
	require.Equal(t, "PersistedQueryNotFound", gjson.Get(w.Body.String(), "errors.0.message").String())

	w = post(h, apqBody(hash, helloQuery))
	require.Equal(t, "world", gjson.Get(w.Body.String(), "data.hello").String())

	w = post(h, apqBody(hash, ""))
	require.Equal(t, "world", gjson.Get(w.Body.String(), "data.hello").String())
	require.Len(t, h.Requests(), 3)
}

func TestPersistedHashMismatch(t *testing.T) {
	h := newTestHandler(t)
	w := post(h, apqBody(operation.Identifier("{ other }"), helloQuery))
	require.Equal(t, CodeInvalidHash, gjson.Get(w.Body.String(), "errors.0.extensions.code").String())
}

func TestPersistedOnly(t *testing.T) {
	h := newTestHandler(t, WithPersisted(helloQuery), WithoutAutomaticPersistence())

	w := post(h, apqBody(operation.Identifier(helloQuery), ""))
	require.Equal(t, "world", gjson.Get(w.Body.String(), "data.hello").String())

	other := `query Hello { hello __typename }`
	w = post(h, apqBody(operation.Identifier(other), other))
	require.Equal(t, CodeBadRequest, gjson.Get(w.Body.String(), "errors.0.extensions.code").String())
}

func TestValidationFailure(t *testing.T) {
	h := newTestHandler(t)
	w := post(h, `{"query":"query Hello { goodbye }"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, CodeValidationFailed, gjson.Get(w.Body.String(), "errors.0.extensions.code").String())
	require.True(t, gjson.Get(w.Body.String(), "data").Exists())
}

func TestParseFailureWithoutSchema(t *testing.T) {
	h, err := New()
	require.NoError(t, err)
	w := post(h, `{"query":"query {"}`)
	require.Equal(t, CodeParseFailed, gjson.Get(w.Body.String(), "errors.0.extensions.code").String())
}

func TestUnknownOperation(t *testing.T) {
	h, err := New()
	require.NoError(t, err)
	w := post(h, `{"query":"query Other { x }"}`)
	require.Contains(t, gjson.Get(w.Body.String(), "errors.0.message").String(), `no resolver for operation "Other"`)
}

func TestInvalidSchema(t *testing.T) {
	_, err := New(WithSchema(`type Query { hello: Missing }`))
	require.Error(t, err)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("PUT", "/", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestMaxBodyBytes(t *testing.T) {
	h := newTestHandler(t, WithMaxBodyBytes(10))
	w := post(h, `{"query":"1234567890"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Empty(t, h.Requests())
}

func TestUnsupportedContentType(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(helloQuery))
	req.Header.Set("Content-Type", "application/graphql")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestID(t *testing.T) {
	var captured int64
	h := newTestHandler(t)
	h.Handle("Hello", func(ctx context.Context, req Request) Result {
		captured, _ = reqid.FromContext(ctx)
		return Data(nil)
	})

	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"query":"query Hello { hello }"}`))
	req.Header.Set(reqid.Header, reqid.Format(424242))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(424242), captured)
	require.Equal(t, reqid.Format(424242), h.Requests()[0].RequestID)
}

func TestPretty(t *testing.T) {
	h := newTestHandler(t, WithPretty())
	w := post(h, `{"query":"query Hello { hello }"}`)
	require.Contains(t, w.Body.String(), "\n  ")
}
