package osstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Gobd/fieldschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serverTransport sends requests built by opensearchapi to an httptest server.
type serverTransport struct {
	base *url.URL
}

func (t serverTransport) Perform(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = t.base.Scheme
	req.URL.Host = t.base.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newServer(t *testing.T, h http.HandlerFunc) serverTransport {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return serverTransport{base: u}
}

func TestLookupByField(t *testing.T) {
	var got map[string]any
	tr := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/_search", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &got))
		q := got["query"].(map[string]any)["term"].(map[string]any)
		if q["email"] == "taken@example.com" {
			_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"u-1","_source":{"uid":11}}]}}`)
			return
		}
		_, _ = io.WriteString(w, `{"hits":{"hits":[]}}`)
	})

	id, found, err := New(tr, "").LookupByField(context.Background(), "users", "email", "taken@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "u-1", id)
	assert.Equal(t, false, got["_source"])

	id, found, err = New(tr, "uid").LookupByField(context.Background(), "users", "email", "taken@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, 11, id, 0)
	assert.Equal(t, []any{"uid"}, got["_source"])

	_, found, err = New(tr, "").LookupByField(context.Background(), "users", "email", "free@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLookupByField_ErrorResponse(t *testing.T) {
	tr := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":"cluster_block_exception"}`)
	})
	_, _, err := New(tr, "").LookupByField(context.Background(), "users", "email", "x")
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "cluster_block_exception")
}

func TestDeclaredType(t *testing.T) {
	tr := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/users/_mapping/field/email":
			_, _ = io.WriteString(w, `{"users":{"mappings":{"email":{"full_name":"email","mapping":{"email":{"type":"keyword"}}}}}}`)
		case "/users/_mapping/field/profile.age":
			_, _ = io.WriteString(w, `{"users":{"mappings":{"profile.age":{"full_name":"profile.age","mapping":{"age":{"type":"long"}}}}}}`)
		case "/users/_mapping/field/born":
			_, _ = io.WriteString(w, `{"users":{"mappings":{"born":{"full_name":"born","mapping":{"born":{"type":"date"}}}}}}`)
		default:
			_, _ = io.WriteString(w, `{"users":{"mappings":{}}}`)
		}
	})
	s := New(tr, "")
	ctx := context.Background()

	typ, err := s.DeclaredType(ctx, "users", "email")
	require.NoError(t, err)
	assert.Equal(t, fieldschema.StoreText, typ)

	typ, err = s.DeclaredType(ctx, "users", "profile.age")
	require.NoError(t, err)
	assert.Equal(t, fieldschema.StoreInteger, typ)

	typ, err = s.DeclaredType(ctx, "users", "born")
	require.NoError(t, err)
	assert.Equal(t, fieldschema.StoreType("date"), typ)

	typ, err = s.DeclaredType(ctx, "users", "nickname")
	require.NoError(t, err)
	assert.Empty(t, typ)
}
