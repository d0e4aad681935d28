package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ka2n/llamadocs/api"
)

var testPages = map[string]string{
	"/en/stable/": `<html><body><nav>
<a href="/en/stable/agents/">Agents guide</a>
<a href="/en/stable/indexing/">Indexing guide</a>
</nav></body></html>`,
	"/en/stable/agents/": `<html><head><title>Agents</title></head><body><main><article>
<h1>Agents</h1>
<p>An agent is an automated reasoning engine that uses tools.</p>
<p>Agents can be composed into larger workflows with memory and planning.</p>
</article></main></body></html>`,
	"/en/stable/indexing/": `<html><body><main><h1>Indexing</h1><p>VectorStoreIndex</p></main></body></html>`,
}

// newTestLibrary returns an initialized Library backed by a fake documentation site
func newTestLibrary(t *testing.T) (*api.Library, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := testPages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	site := api.DefaultSite
	site.BaseURL = srv.URL

	lib := api.NewLibrary(api.Config{Site: site, CacheFailures: true})
	lib.Init(context.Background())
	return lib, srv
}

// rpcResponse mirrors Response with the result kept raw
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// postRPC sends body to POST /rpc of h and decodes the answer
func postRPC(t *testing.T, h http.Handler, body string) (int, rpcResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp rpcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v: %s", err, rec.Body.String())
	}
	if resp.Result != nil && resp.Error != nil {
		t.Errorf("response carries both result and error: %s", rec.Body.String())
	}
	return rec.Code, resp
}

func decodeResult(t *testing.T, resp rpcResponse, out any) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		t.Fatalf("failed to decode result: %v: %s", err, resp.Result)
	}
}
