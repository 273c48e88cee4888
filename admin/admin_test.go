package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func TestHandler(t *testing.T) {
	t.Setenv("PPROF_HEAP", "no")
	t.Setenv("PPROF_TRACE", "yes")
	h := Handler()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"live", "/live", http.StatusOK, `{"status":"ok"}`},
		{"metrics", "/metrics", http.StatusOK, "go_goroutines"},
		{"pprof index", "/debug/pprof/", http.StatusOK, ""},
		{"disabled profile", "/debug/pprof/heap", http.StatusNotFound, ""},
		{"goroutine profile", "/debug/pprof/goroutine", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))
			if w.Code != tt.wantStatus {
				t.Fatalf("GET %s status = %d, want %d", tt.path, w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("GET %s body = %q, want it to contain %q", tt.path, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestServer_AddHandler(t *testing.T) {
	s := NewServer(":0")
	s.AddHandler("/echo/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mux.Vars(r)["name"]))
	})

	w := httptest.NewRecorder()
	s.svc.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/echo/bank", nil))
	if w.Code != http.StatusOK || w.Body.String() != "bank" {
		t.Errorf("GET /echo/bank = %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	s.svc.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/live", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /live after AddHandler status = %d", w.Code)
	}
}

func TestPprofProfileEnabled(t *testing.T) {
	tests := []struct {
		env  string
		zero bool
		want bool
	}{
		{"yes", false, true},
		{"NO", true, false},
		{"", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Setenv("PPROF_ALLOCS", tt.env)
		if got := pprofProfileEnabled("allocs", tt.zero); got != tt.want {
			t.Errorf("pprofProfileEnabled(%q, %v) = %v, want %v", tt.env, tt.zero, got, tt.want)
		}
	}
}
