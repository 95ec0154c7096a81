package statusapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ibeckermayer/xbot/internal/app"
	"github.com/ibeckermayer/xbot/internal/metrics"
)

type fakeBackend struct {
	status  app.Status
	running map[string]bool
	stopped []string
	pingErr error
}

func (f *fakeBackend) Status() app.Status { return f.status }

func (f *fakeBackend) Stop(name string) error {
	if !f.running[name] {
		return fmt.Errorf("%w: %s", app.ErrNoProcess, name)
	}
	f.stopped = append(f.stopped, name)
	return nil
}

func (f *fakeBackend) Ping(context.Context) error { return f.pingErr }

func newTestServer(b Backend) *Server {
	return New("127.0.0.1:0", b, metrics.New(), zerolog.Nop())
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		want    int
	}{
		{"ok", nil, http.StatusOK},
		{"store down", errors.New("database is closed"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeBackend{pingErr: tt.pingErr})
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rec.Code != tt.want {
				t.Errorf("GET /healthz = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	started := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	b := &fakeBackend{status: app.Status{
		Processes: []app.ProcessInfo{{Name: app.ProcessFollow, StartedAt: started}},
	}}
	s := newTestServer(b)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var got app.Status
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if len(got.Processes) != 1 || got.Processes[0].Name != app.ProcessFollow || !got.Processes[0].StartedAt.Equal(started) {
		t.Errorf("status processes = %+v", got.Processes)
	}
}

func TestStopProcess(t *testing.T) {
	b := &fakeBackend{running: map[string]bool{app.ProcessEngage: true}}
	s := newTestServer(b)

	tests := []struct {
		name string
		want int
	}{
		{app.ProcessEngage, http.StatusAccepted},
		{app.ProcessFollow, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/processes/"+tt.name+"/stop", nil))
			if rec.Code != tt.want {
				t.Errorf("POST stop %s = %d, want %d", tt.name, rec.Code, tt.want)
			}
		})
	}
	if len(b.stopped) != 1 || b.stopped[0] != app.ProcessEngage {
		t.Errorf("stopped = %v, want [engage]", b.stopped)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/processes/engage/stop", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET stop = %d, want 405", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `xbot_api_requests_total{endpoint="/processes/{name}/stop",method="POST",status="202"} 1`) {
		t.Errorf("metrics missing stop request counter:\n%s", body)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(&fakeBackend{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
