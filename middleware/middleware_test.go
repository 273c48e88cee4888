package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		headers     map[string]string
		wantStatus  int
		wantOrigin  string
		wantMethods bool
		wantHeaders string
	}{
		{"no origin", "GET", nil, http.StatusOK, "*", false, ""},
		{"any origin echoed", "GET", map[string]string{"Origin": "https://evil.example"}, http.StatusOK, "https://evil.example", false, ""},
		{"preflight", "OPTIONS", map[string]string{
			"Origin":                         "http://localhost:3000",
			"Access-Control-Request-Method":  "PATCH",
			"Access-Control-Request-Headers": "X-Custom, Content-Type",
		}, http.StatusNoContent, "http://localhost:3000", true, "X-Custom, Content-Type"},
		{"preflight without headers", "OPTIONS", map[string]string{
			"Origin":                        "http://a.example",
			"Access-Control-Request-Method": "DELETE",
		}, http.StatusNoContent, "http://a.example", true, "*"},
		{"plain options passes through", "OPTIONS", nil, http.StatusOK, "*", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "/banks", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			CORS(okHandler).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := w.Header().Get("Access-Control-Allow-Methods") != ""; got != tt.wantMethods {
				t.Errorf("Allow-Methods present = %v, want %v", got, tt.wantMethods)
			}
			if got := w.Header().Get("Access-Control-Allow-Headers"); got != tt.wantHeaders {
				t.Errorf("Allow-Headers = %q, want %q", got, tt.wantHeaders)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if seen != "abc" || w.Header().Get(RequestIDHeader) != "abc" {
		t.Errorf("kept id = %q / %q, want abc", seen, w.Header().Get(RequestIDHeader))
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("generated id %q is not a uuid: %v", seen, err)
	}
	if w.Header().Get(RequestIDHeader) != seen {
		t.Errorf("response id = %q, want %q", w.Header().Get(RequestIDHeader), seen)
	}
}
