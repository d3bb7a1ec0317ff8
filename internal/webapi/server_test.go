package webapi

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/swagrec/internal/testutil"
	"github.com/erraggy/swagrec/jsonvalue"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body)) //nolint:noctx // test helper
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func reference(t *testing.T, ts *httptest.Server, doc string) referenceResponse {
	t.Helper()
	resp := post(t, ts.URL+"/api/reference", doc)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[referenceResponse](t, resp)
}

func TestReferenceAndGenerate(t *testing.T) {
	ts := newTestServer(t, Config{})

	ref := reference(t, ts, testutil.PetstoreOAS3)
	require.Len(t, ref.Session, 32)
	assert.Equal(t, "3.0.3", ref.Version)
	assert.Len(t, ref.Endpoints, 4)

	body := `{"session":"` + ref.Session + `","endpoints":["GET /pets",{"method":"GET","path":"/pets/{id}"}]}`
	resp := post(t, ts.URL+"/api/generate", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "2", resp.Header.Get("X-Swagrec-Matched"))
	assert.Equal(t, "2", resp.Header.Get("X-Swagrec-Schemas"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	doc, err := jsonvalue.ParseJSON(data)
	require.NoError(t, err)

	paths, ok := doc.LookupObject("paths")
	require.True(t, ok)
	assert.Equal(t, []string{"/pets", "/pets/{id}"}, paths.Keys())
	schemas, ok := doc.LookupObject("components", "schemas")
	require.True(t, ok)
	assert.Equal(t, []string{"Pet", "Owner"}, schemas.Keys())
}

func TestGenerateYAMLWithMatch(t *testing.T) {
	ts := newTestServer(t, Config{})
	ref := reference(t, ts, testutil.PetstoreOAS2)

	body := `{"session":"` + ref.Session + `","match":["POST /pets"],"format":"yaml"}`
	resp := post(t, ts.URL+"/api/generate", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "NewPet")
	assert.NotContains(t, string(data), "Unused")
}

func TestEndpoints(t *testing.T) {
	ts := newTestServer(t, Config{})
	ref := reference(t, ts, testutil.PetstoreOAS2)

	resp := get(t, ts.URL+"/api/endpoints?session="+ref.Session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[referenceResponse](t, resp)
	assert.Equal(t, ref.Session, out.Session)
	assert.Equal(t, "2.0", out.Version)
	assert.Len(t, out.Endpoints, 2)
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, Config{})
	ref := reference(t, ts, testutil.PetstoreOAS3)

	tests := []struct {
		name   string
		do     func() *http.Response
		status int
		want   string
	}{
		{
			name:   "empty body",
			do:     func() *http.Response { return post(t, ts.URL+"/api/reference", "  ") },
			status: http.StatusBadRequest,
			want:   "empty",
		},
		{
			name:   "not a definition",
			do:     func() *http.Response { return post(t, ts.URL+"/api/reference", `{"hello":"world"}`) },
			status: http.StatusBadRequest,
			want:   "invalid OpenAPI definition",
		},
		{
			name:   "bad url scheme",
			do:     func() *http.Response { return post(t, ts.URL+"/api/reference", `{"url":"ftp://x"}`) },
			status: http.StatusBadRequest,
			want:   "http://",
		},
		{
			name:   "unknown session endpoints",
			do:     func() *http.Response { return get(t, ts.URL+"/api/endpoints?session=nope") },
			status: http.StatusNotFound,
			want:   "unknown session",
		},
		{
			name: "unknown session generate",
			do: func() *http.Response {
				return post(t, ts.URL+"/api/generate", `{"session":"nope","endpoints":["GET /pets"]}`)
			},
			status: http.StatusNotFound,
			want:   "unknown session",
		},
		{
			name: "bad endpoint",
			do: func() *http.Response {
				return post(t, ts.URL+"/api/generate", `{"session":"`+ref.Session+`","endpoints":["pets"]}`)
			},
			status: http.StatusBadRequest,
			want:   "invalid endpoint",
		},
		{
			name: "bad format",
			do: func() *http.Response {
				return post(t, ts.URL+"/api/generate", `{"session":"`+ref.Session+`","endpoints":["GET /pets"],"format":"xml"}`)
			},
			status: http.StatusBadRequest,
			want:   "unsupported format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.do()
			assert.Equal(t, tt.status, resp.StatusCode)
			out := decode[errorResponse](t, resp)
			assert.Contains(t, out.Error, tt.want)
		})
	}
}

func TestReferenceURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/openapi.yaml":
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = io.WriteString(w, testutil.PetstoreOAS3)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	ts := newTestServer(t, Config{AllowPrivateIPs: true})

	resp := post(t, ts.URL+"/api/reference", `{"url":"`+upstream.URL+`/openapi.yaml"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, decode[referenceResponse](t, resp).Endpoints, 4)

	resp = post(t, ts.URL+"/api/reference", `{"url":"`+upstream.URL+`/missing.yaml"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestReferenceURLBlocksPrivateAddresses(t *testing.T) {
	var fetched atomic.Bool
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fetched.Store(true)
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = io.WriteString(w, testutil.PetstoreOAS3)
	}))
	t.Cleanup(upstream.Close)

	ts := newTestServer(t, Config{})
	resp := post(t, ts.URL+"/api/reference", `{"url":"`+upstream.URL+`/internal.yaml"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, decode[errorResponse](t, resp).Error, "blocked request")
	assert.False(t, fetched.Load())
}

func TestReferenceURLRequireJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<html></html>")
	}))
	t.Cleanup(upstream.Close)

	ts := newTestServer(t, Config{RequireJSON: true, AllowPrivateIPs: true})
	resp := post(t, ts.URL+"/api/reference", `{"url":"`+upstream.URL+`/spec"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSessionExpiry(t *testing.T) {
	srv := New(Config{SessionTTL: time.Millisecond})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	ref := reference(t, ts, testutil.PetstoreOAS3)
	time.Sleep(10 * time.Millisecond)

	resp := get(t, ts.URL+"/api/endpoints?session="+ref.Session)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndCORS(t *testing.T) {
	ts := newTestServer(t, Config{AllowedOrigins: []string{"https://app.example.com"}})

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	out := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", out["status"])
}

func TestServeShutsDownWithContext(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(Config{}).Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz") //nolint:noctx // test
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
