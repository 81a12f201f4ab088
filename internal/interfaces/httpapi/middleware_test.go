package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

func TestRequestLogging_RecordsStatusAndPath(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.LevelInfo)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest(http.MethodGet, "/v1/tournaments/ipl-2026/fixtures", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()

	RequestLogging(logger, next).ServeHTTP(rec, req)

	line := buf.String()
	for _, want := range []string{`"msg":"http_request"`, `"http_status":418`, `"http_path":"/v1/tournaments/ipl-2026/fixtures"`, `"client_ip":"203.0.113.7"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line missing %s: %s", want, line)
		}
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{name: "not configured", token: "", header: "abc", want: http.StatusServiceUnavailable},
		{name: "missing header", token: "abc", header: "", want: http.StatusUnauthorized},
		{name: "wrong header", token: "abc", header: "xyz", want: http.StatusUnauthorized},
		{name: "accepted", token: "abc", header: " abc ", want: http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recalculate-standings", nil)
			if tt.header != "" {
				req.Header.Set(internalJobTokenHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tt.token, next).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tt.want)
			}
		})
	}
}

func TestNormalizeIP(t *testing.T) {
	tests := map[string]string{
		"203.0.113.7:5123":         "203.0.113.7",
		" 198.51.100.2 , 10.0.0.1": "198.51.100.2",
		"[2001:db8::1]:443":        "2001:db8::1",
		"not-an-ip":                "",
		"":                         "",
	}
	for in, want := range tests {
		if got := normalizeIP(in); got != want {
			t.Fatalf("normalizeIP(%q)=%q want=%q", in, got, want)
		}
	}
}
