package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/auth"
	"github.com/mmynk/fairshare/internal/metrics"
	"github.com/mmynk/fairshare/pkg/api"
	"github.com/mmynk/fairshare/pkg/api/apiconnect"
)

const testSecret = "interceptor-test-secret"

// recordingAnalytics remembers the user each call was made as. A negative
// reminder limit makes it fail with InvalidArgument.
type recordingAnalytics struct {
	apiconnect.UnimplementedAnalyticsServiceHandler

	mu    sync.Mutex
	calls int
	users []string
}

func (r *recordingAnalytics) Summarize(ctx context.Context, req *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error) {
	r.mu.Lock()
	r.calls++
	r.users = append(r.users, GetUserID(ctx))
	r.mu.Unlock()

	if req.Msg.ReminderLimit < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("reminder_limit must not be negative"))
	}
	return connect.NewResponse(&api.SummarizeResponse{}), nil
}

func (r *recordingAnalytics) seen() (int, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls, append([]string(nil), r.users...)
}

// lockedBuffer is written by the server goroutine and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testServer struct {
	client  apiconnect.AnalyticsServiceClient
	handler *recordingAnalytics
	metrics *metrics.Metrics
	logs    *lockedBuffer
}

// setupInterceptorServer mounts a recording service behind the interceptor
// chain the server uses: metrics, then auth, then logging.
func setupInterceptorServer(t *testing.T, authInterceptor func(*auth.JWTManager) connect.UnaryInterceptorFunc) *testServer {
	t.Helper()

	ts := &testServer{
		handler: &recordingAnalytics{},
		metrics: metrics.New(),
		logs:    &lockedBuffer{},
	}
	logger := slog.New(slog.NewJSONHandler(ts.logs, nil))
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)

	path, handler := apiconnect.NewAnalyticsServiceHandler(ts.handler, connect.WithInterceptors(
		MetricsInterceptor(ts.metrics),
		authInterceptor(jwtManager),
		LoggingInterceptor(logger),
	))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	ts.client = apiconnect.NewAnalyticsServiceClient(http.DefaultClient, server.URL)
	return ts
}

func generateToken(t *testing.T, secret string, ttl time.Duration, userID string) string {
	t.Helper()
	token, err := auth.NewJWTManager(secret, ttl).Generate(userID, userID+"@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return token
}

func summarize(ts *testServer, authorization string, limit int) error {
	req := connect.NewRequest(&api.SummarizeRequest{ReminderLimit: limit})
	if authorization != "" {
		req.Header().Set("Authorization", authorization)
	}
	_, err := ts.client.Summarize(context.Background(), req)
	return err
}

// scrape returns the metrics exposition of m.
func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func requestsLine(code string) string {
	return `fairshare_rpc_requests_total{code="` + code + `",procedure="` + apiconnect.AnalyticsServiceSummarizeProcedure + `"}`
}

func TestRequireAuth(t *testing.T) {
	valid := generateToken(t, testSecret, time.Hour, "user-1")

	tests := []struct {
		name          string
		authorization string
		wantCode      connect.Code
		wantUser      string
	}{
		{name: "valid token", authorization: "Bearer " + valid, wantUser: "user-1"},
		{name: "lowercase scheme", authorization: "bearer " + valid, wantUser: "user-1"},
		{name: "missing header", wantCode: connect.CodeUnauthenticated},
		{name: "wrong scheme", authorization: "Basic " + valid, wantCode: connect.CodeUnauthenticated},
		{name: "garbage token", authorization: "Bearer not-a-jwt", wantCode: connect.CodeUnauthenticated},
		{
			name:          "token signed with another secret",
			authorization: "Bearer " + generateToken(t, "some-other-secret", time.Hour, "user-1"),
			wantCode:      connect.CodeUnauthenticated,
		},
		{
			name:          "expired token",
			authorization: "Bearer " + generateToken(t, testSecret, -time.Minute, "user-1"),
			wantCode:      connect.CodeUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupInterceptorServer(t, RequireAuth)

			err := summarize(ts, tt.authorization, 0)
			calls, users := ts.handler.seen()

			if tt.wantCode != 0 {
				if got := connect.CodeOf(err); got != tt.wantCode {
					t.Fatalf("code = %v, want %v (err %v)", got, tt.wantCode, err)
				}
				if calls != 0 {
					t.Errorf("handler ran %d times for a rejected request", calls)
				}
				if !strings.Contains(scrape(t, ts.metrics), requestsLine("unauthenticated")+" 1") {
					t.Errorf("rejected call not counted:\n%s", scrape(t, ts.metrics))
				}
				return
			}

			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if calls != 1 || users[0] != tt.wantUser {
				t.Errorf("handler saw users %v, want [%s]", users, tt.wantUser)
			}
			if !strings.Contains(scrape(t, ts.metrics), requestsLine("ok")+" 1") {
				t.Errorf("successful call not counted:\n%s", scrape(t, ts.metrics))
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	valid := generateToken(t, testSecret, time.Hour, "user-2")

	tests := []struct {
		name          string
		authorization string
		wantUser      string
	}{
		{name: "no header continues anonymously"},
		{name: "invalid token continues anonymously", authorization: "Bearer not-a-jwt"},
		{name: "malformed header continues anonymously", authorization: "Token abc"},
		{name: "valid token sets the user", authorization: "Bearer " + valid, wantUser: "user-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupInterceptorServer(t, OptionalAuth)

			if err := summarize(ts, tt.authorization, 0); err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			calls, users := ts.handler.seen()
			if calls != 1 || users[0] != tt.wantUser {
				t.Errorf("handler saw users %q, want [%q]", users, tt.wantUser)
			}
		})
	}
}

func TestLoggingInterceptor(t *testing.T) {
	ts := setupInterceptorServer(t, RequireAuth)
	authorization := "Bearer " + generateToken(t, testSecret, time.Hour, "user-3")

	if err := summarize(ts, authorization, 0); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	err := summarize(ts, authorization, -1)
	if got := connect.CodeOf(err); got != connect.CodeInvalidArgument {
		t.Fatalf("code = %v, want invalid_argument", got)
	}

	lines := strings.Split(strings.TrimSpace(ts.logs.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d:\n%s", len(lines), ts.logs.String())
	}
	for _, want := range []string{
		`"level":"INFO"`,
		`"msg":"RPC ok"`,
		`"procedure":"` + apiconnect.AnalyticsServiceSummarizeProcedure + `"`,
		`"user_id":"user-3"`,
		`"duration_ms":`,
	} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("log line %s does not contain %s", lines[0], want)
		}
	}
	for _, want := range []string{`"level":"WARN"`, `"code":"invalid_argument"`, `"user_id":"user-3"`} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("log line %s does not contain %s", lines[1], want)
		}
	}

	body := scrape(t, ts.metrics)
	for _, want := range []string{requestsLine("ok") + " 1", requestsLine("invalid_argument") + " 1"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics do not contain %s:\n%s", want, body)
		}
	}
}
