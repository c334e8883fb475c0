package preview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/pkg/observe"
	"github.com/vango-dev/vtree/pkg/vtree"
)

func init() { demo.LoadDelay = 0 }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startSession mounts name and runs its loop for the duration of the test.
func startSession(t *testing.T, name string, opts ...vtree.Option) *Session {
	t.Helper()
	d, ok := demo.Lookup(name)
	if !ok {
		t.Fatalf("demo %q not registered", name)
	}
	s, err := NewSession(SessionConfig{
		Demo:     d,
		Interval: time.Millisecond,
		Options:  opts,
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func run(t *testing.T, s *Session) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return ctx
}

func TestSessionDispatch(t *testing.T) {
	s := startSession(t, "counter")
	var updates []Update
	s.OnRender(func(u Update) { updates = append(updates, u) })
	ctx := run(t, s)

	html, err := s.Dispatch(ctx, "#inc", "click", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, ">1</output>") {
		t.Errorf("Dispatch() html = %s", html)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap != html {
		t.Errorf("Snapshot() = %s, want %s", snap, html)
	}

	// updates is written on the loop goroutine; Snapshot synchronized with it.
	if len(updates) != 1 || updates[0].Rendered != 1 || updates[0].HTML != html {
		t.Errorf("updates = %+v", updates)
	}
}

func TestSessionDispatchErrors(t *testing.T) {
	s := startSession(t, "counter")
	ctx := run(t, s)

	if _, err := s.Dispatch(ctx, "#missing", "click", ""); !errors.Is(err, ErrNoTarget) {
		t.Errorf("missing target: %v", err)
	}
	if _, err := s.Dispatch(ctx, "output", "click", ""); !errors.Is(err, ErrNoListener) {
		t.Errorf("no listener: %v", err)
	}
	if _, err := s.Dispatch(ctx, "[", "click", ""); err == nil {
		t.Error("invalid selector accepted")
	}
}

func TestSessionAsyncLoad(t *testing.T) {
	s := startSession(t, "profile")
	ctx := run(t, s)

	deadline := time.Now().Add(2 * time.Second)
	for {
		html, err := s.Snapshot(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(html, "<strong>Ada</strong>") {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("profile never loaded: %s", html)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewSessionWithoutRoot(t *testing.T) {
	if _, err := NewSession(SessionConfig{Demo: demo.Demo{Name: "empty"}}); err == nil {
		t.Error("NewSession accepted a demo without root")
	}
}

func newTestServer(t *testing.T, name string) (*Server, *httptest.Server) {
	t.Helper()
	reg := prometheus.NewRegistry()
	s := startSession(t, name, vtree.WithObserver(observe.Prometheus(observe.WithRegistry(reg))))
	srv := New(Config{
		Session: s,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:  quietLogger(),
	})
	run(t, s)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func post(t *testing.T, url string) (int, eventResponse) {
	t.Helper()
	resp, err := http.Post(url, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, out
}

func TestServerRoutes(t *testing.T) {
	_, ts := newTestServer(t, "counter")

	tests := []struct {
		path   string
		status int
		want   []string
	}{
		{"/", 200, []string{"<!DOCTYPE html>", "<title>vtree preview - counter</title>", `<div id="root"><section class="counter">`, "new WebSocket"}},
		{"/snapshot", 200, []string{`<output style="color: #3b82f6;">0</output>`}},
		{"/render", 200, []string{`<button disabled id="dec">-</button>`}},
		{"/shallow", 200, []string{`<Counter start="0"></Counter>`}},
		{"/healthz", 200, []string{"ok"}},
		{"/metrics", 200, []string{`vtree_mounts_total{component="Counter"} 1`}},
		{"/nope", 404, nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(t, ts.URL+tt.path)
			if status != tt.status {
				t.Fatalf("status = %d, want %d", status, tt.status)
			}
			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q:\n%s", want, body)
				}
			}
		})
	}
}

func TestServerEvents(t *testing.T) {
	_, ts := newTestServer(t, "counter")

	status, resp := post(t, ts.URL+"/events/click?target=%23inc")
	if status != http.StatusOK || !strings.Contains(resp.HTML, ">1</output>") {
		t.Errorf("click: %d %+v", status, resp)
	}

	for _, tt := range []struct {
		query  string
		status int
	}{
		{"", http.StatusBadRequest},
		{"?target=%23missing", http.StatusNotFound},
		{"?target=output", http.StatusUnprocessableEntity},
	} {
		if status, resp := post(t, ts.URL+"/events/click"+tt.query); status != tt.status || resp.Error == "" {
			t.Errorf("POST %s = %d %+v, want %d", tt.query, status, resp, tt.status)
		}
	}
}

func TestServerWebSocket(t *testing.T) {
	srv, ts := newTestServer(t, "counter")

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != MessageRender || !strings.Contains(msg.HTML, ">0</output>") {
		t.Errorf("greeting = %+v", msg)
	}
	if n := srv.Hub().ClientCount(); n != 1 {
		t.Errorf("ClientCount() = %d, want 1", n)
	}

	post(t, ts.URL+"/events/click?target=%23inc")
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != MessageRender || msg.Rendered != 1 || !strings.Contains(msg.HTML, ">1</output>") {
		t.Errorf("push = %+v", msg)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	d, _ := demo.Lookup("static")
	s, err := NewSession(SessionConfig{Demo: d, Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	srv := New(Config{Session: s, Logger: quietLogger()})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	status, body := get(t, "http://"+ln.Addr().String()+"/snapshot")
	if status != 200 || !strings.Contains(body, "Static tree") {
		t.Errorf("snapshot = %d %s", status, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
