package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
)

const testHashKey = "mission-key"

// bufferLogger пишет в буфер, чтобы проверять поля записи.
func bufferLogger(buf *bytes.Buffer) *logger.Logger {
	return &logger.Logger{Logger: zerolog.New(buf)}
}

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	})
}

// ---- withTraceID ----

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "propagates incoming id", incoming: "trace-from-agent"},
		{name: "generates id when absent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			var fromCtx string

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fromCtx, _ = utils.GetTraceIDFromContext(r.Context())
				logger.FromRequest(r).Info().Msg("inside")
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			withTraceID(bufferLogger(&buf))(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, got)
			}
			assert.Equal(t, got, fromCtx, "id доступен исходящим вызовам")
			assert.Contains(t, buf.String(), `"trace_id":"`+got+`"`)
		})
	}
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	mw := withTraceID(logger.Nop())(okHandler(""))

	seen := make(map[string]struct{})
	for range 50 {
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		seen[rec.Header().Get(traceIDHeader)] = struct{}{}
	}
	assert.Len(t, seen, 50)
}

// ---- withLogging ----

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains []string
	}{
		{
			name:     "implicit 200",
			body:     "pong",
			contains: []string{`"level":"info"`, `"status":200`, `"size":4`, `"method":"GET"`, `"uri":"/ping"`},
		},
		{
			name:     "client error stays info",
			status:   http.StatusBadRequest,
			contains: []string{`"level":"info"`, `"status":400`},
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     "boom",
			contains: []string{`"level":"error"`, `"status":500`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				w.Write([]byte(tt.body))
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
			withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWithLogging_ConcurrentRequests(t *testing.T) {
	mw := withLogging(okHandler("ok"))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()
}

// ---- подписи ----

func TestVerifySignature(t *testing.T) {
	signer := utils.NewSigner(testHashKey)
	body := []byte(`{"changes":{}}`)

	tests := []struct {
		name       string
		key        string
		signature  string
		wantStatus int
		wantNext   bool
	}{
		{name: "valid", key: testHashKey, signature: signer.Sign(body), wantStatus: http.StatusOK, wantNext: true},
		{name: "missing", key: testHashKey, wantStatus: http.StatusBadRequest},
		{name: "tampered", key: testHashKey, signature: signer.Sign([]byte(`{}`)), wantStatus: http.StatusBadRequest},
		{name: "not hex", key: testHashKey, signature: "zz", wantStatus: http.StatusBadRequest},
		{name: "disabled", wantStatus: http.StatusOK, wantNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{signer: utils.NewSigner(tt.key), logger: logger.Nop()}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Equal(t, body, got, "тело восстановлено для обработчика")
			})

			req := httptest.NewRequest(http.MethodPost, "/sync/push", bytes.NewReader(body))
			if tt.signature != "" {
				req.Header.Set(utils.HashHeader, tt.signature)
			}
			rec := httptest.NewRecorder()
			h.verifySignature(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)
		})
	}
}

func TestSignResponse(t *testing.T) {
	h := &Handler{signer: utils.NewSigner(testHashKey), logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"a":`))
		w.Write([]byte(`1}`))
	})

	rec := httptest.NewRecorder()
	h.signResponse(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sync/pull", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"a":1}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, utils.NewSigner(testHashKey).Verify(rec.Body.Bytes(), rec.Header().Get(utils.HashHeader)))

	// без ключа заголовок не ставится
	h = &Handler{signer: utils.NewSigner(""), logger: logger.Nop()}
	rec = httptest.NewRecorder()
	h.signResponse(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sync/pull", nil))
	assert.Empty(t, rec.Header().Get(utils.HashHeader))
}

// ---- gzip ----

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestWithGZip(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	})
	payload := []byte(strings.Repeat(`{"id":"p-1"}`, 20))

	t.Run("compressed request and response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sync/push", bytes.NewReader(gzipBytes(t, payload)))
		req.Header.Set("Content-Encoding", "gzip")
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		withGZip(echo).ServeHTTP(rec, req)

		assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		got, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("plain client", func(t *testing.T) {
		rec := httptest.NewRecorder()
		withGZip(echo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sync/push", bytes.NewReader(payload)))

		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Equal(t, payload, rec.Body.Bytes())
	})

	t.Run("broken gzip body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sync/push", strings.NewReader("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()
		withGZip(echo).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// ---- 405 ----

func TestMethodNotAllowed(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/records/{kind}", okHandler("").ServeHTTP)
	router.Post("/api/records/{kind}", okHandler("").ServeHTTP)
	router.MethodNotAllowed(methodNotAllowed(router))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/records/patients", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
	assert.Contains(t, rec.Body.String(), "DELETE")
}
