package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/widget-remote/internal/command"
	"github.com/atomicstack/widget-remote/internal/toolkit/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Host, *int) {
	t.Helper()
	host := memory.NewHost()
	host.Open("Test",
		memory.NewPushButton("ok", "OK"),
		memory.NewPushButton("cancel", "Cancel"),
		memory.NewTable("pkgs", "Packages", []string{"name", "version"}, []string{"vim", "9.1"}, []string{"nano", "8.2"}),
	)
	redraws := 0
	srv := httptest.NewServer(New(command.New(host, func() { redraws++ }), "1.2.3").Handler())
	t.Cleanup(srv.Close)
	return srv, host, &redraws
}

func do(t *testing.T, method, target string, form url.Values) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestPostActionFromQuery(t *testing.T) {
	srv, host, redraws := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/widgets?label=OK&action=press", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.NotEmpty(t, resp.Header.Get("X-Command-Id"))
	assert.Empty(t, body)
	assert.Equal(t, 1, *redraws)
	assert.Equal(t, []string{"ok:focus", "ok:activate"}, host.Journal().Ops())
}

func TestPostActionFromForm(t *testing.T) {
	srv, host, _ := newTestServer(t)

	form := url.Values{"id": {"pkgs"}, "action": {"select"}, "value": {"8.2"}, "column": {"1"}}
	resp, _ := do(t, http.MethodPost, srv.URL+"/v1/widgets", form)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"pkgs:focus", "pkgs:select(nano)"}, host.Journal().Ops())
}

func TestPostErrorsKeepJSONContentType(t *testing.T) {
	srv, _, redraws := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/widgets?type=YPushButton&action=press", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Multiple widgets found to act on, try using multicriteria search (label+id+type)", gjson.Get(body, "error").String())

	resp, body = do(t, http.MethodPost, srv.URL+"/v1/widgets?id=pkgs&action=select&value=ed", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "\"ed\" item cannot be found in the table\n", body)

	resp, body = do(t, http.MethodPost, srv.URL+"/v1/widgets?id=ok", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Missing action parameter", gjson.Get(body, "error").String())
	assert.Zero(t, *redraws)
}

func TestPresentButEmptyLabelIsACriterion(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp, body := do(t, http.MethodPost, srv.URL+"/v1/widgets?label=&action=press", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Widget not found", gjson.Get(body, "error").String())
}

func TestGetDescribesWidgets(t *testing.T) {
	srv, host, _ := newTestServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/v1/widgets?type=YPushButton", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), gjson.Get(body, "#").Int())
	assert.Equal(t, []string{"OK", "Cancel"}, []string{gjson.Get(body, "0.label").String(), gjson.Get(body, "1.label").String()})
	assert.Empty(t, host.Journal().Events())

	host.Close()
	resp, body = do(t, http.MethodGet, srv.URL+"/v1/widgets", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No dialog is open", gjson.Get(body, "error").String())
}

func TestVersion(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp, body := do(t, http.MethodGet, srv.URL+"/version", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "v1", gjson.Get(body, "api_version").String())
	assert.Equal(t, "1.2.3", gjson.Get(body, "version").String())
}

func TestServeStopsOnCancel(t *testing.T) {
	host := memory.NewHost()
	s := New(command.New(host, nil), "dev")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, body := do(t, http.MethodGet, "http://"+ln.Addr().String()+"/version", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dev", gjson.Get(body, "version").String())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
