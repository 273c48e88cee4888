// Package admin serves operational endpoints (metrics, liveness, pprof) on a
// listener separate from the public API.
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// pprofHandlers lists the pprof profiles served on the admin server and
// whether each is on by default. PPROF_<NAME>=yes|no overrides the default.
var pprofHandlers = map[string]bool{
	"allocs":       true,
	"block":        true,
	"cmdline":      true,
	"goroutine":    true,
	"heap":         true,
	"mutex":        true,
	"profile":      true,
	"threadcreate": false,
	"trace":        false,
}

// Server wraps the net/http server used for admin endpoints
type Server struct {
	router *mux.Router
	svc    *http.Server
}

// NewServer configures the runtime profilers and builds the admin server on addr
func NewServer(addr string) *Server {
	if pprofProfileEnabled("block", pprofHandlers["block"]) {
		runtime.SetBlockProfileRate(1)
	}
	if pprofProfileEnabled("mutex", pprofHandlers["mutex"]) {
		runtime.SetMutexProfileFraction(1)
	}

	timeout := 45 * time.Second
	router := Handler()
	return &Server{
		router: router,
		svc: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			IdleTimeout:  timeout,
		},
	}
}

// BindAddress returns the configured listen address
func (s *Server) BindAddress() string {
	return s.svc.Addr
}

// AddHandler registers a GET endpoint on the admin router. path may carry
// gorilla/mux variables such as {account_number}.
func (s *Server) AddHandler(path string, h http.HandlerFunc) {
	s.router.Methods("GET").Path(path).HandlerFunc(h)
}

// Listen brings up the admin HTTP service. This call blocks.
func (s *Server) Listen() error {
	if s == nil || s.svc == nil {
		return nil
	}
	err := s.svc.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the admin HTTP service
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.svc == nil {
		return nil
	}
	return s.svc.Shutdown(ctx)
}

// Handler returns the admin routes
func Handler() *mux.Router {
	r := mux.NewRouter()

	r.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
	r.Methods("GET").Path("/live").HandlerFunc(live)

	r.HandleFunc("/debug/pprof/", pprof.Index)
	for name, zero := range pprofHandlers {
		if !pprofProfileEnabled(name, zero) {
			continue
		}
		switch name {
		case "cmdline":
			r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		case "profile":
			r.HandleFunc("/debug/pprof/profile", pprof.Profile)
		case "trace":
			r.HandleFunc("/debug/pprof/trace", pprof.Trace)
		default:
			r.Handle(fmt.Sprintf("/debug/pprof/%s", name), pprof.Handler(name))
		}
	}

	return r
}

func live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// pprofProfileEnabled reads PPROF_$name (name uppercased).
// "yes" returns true, "no" returns false, anything else returns zero.
func pprofProfileEnabled(name string, zero bool) bool {
	v := os.Getenv(fmt.Sprintf("PPROF_%s", strings.ToUpper(name)))
	switch strings.ToLower(v) {
	case "yes":
		return true
	case "no":
		return false
	}
	return zero
}
