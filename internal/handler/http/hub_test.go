package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/mock"
	"github.com/MKhiriev/go-mission-sync/internal/service"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
	"github.com/MKhiriev/go-mission-sync/models"
)

func newTestHubRouter(t *testing.T, ctrl *gomock.Controller, hashKey string) (http.Handler, *mock.MockHubService) {
	t.Helper()
	hub := mock.NewMockHubService(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.4.2").AnyTimes()

	reg := prometheus.NewRegistry()
	h := NewHandler(
		&service.Services{AppInfoService: appInfo, HubService: hub},
		hashKey,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		logger.Nop(),
	)
	return h.Init(), hub
}

func TestHubRouter_Ping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, hub := newTestHubRouter(t, ctrl, "")
	hub.EXPECT().Ping(gomock.Any()).Return(models.PingResponse{Status: "ok", Version: "1.4.2", Time: 1705312800000})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"1.4.2","time":1705312800000}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestHubRouter_Version(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestHubRouter(t, ctrl, "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.4.2", rec.Body.String())
}

func TestHubRouter_Push(t *testing.T) {
	body, err := json.Marshal(models.HubPushRequest{Changes: models.HubChanges{
		Patients: []models.WireRecord{{ID: "p-1", Data: "{}", CreatedAt: 1, UpdatedAt: 1}},
	}})
	require.NoError(t, err)
	signer := utils.NewSigner(testHashKey)

	tests := []struct {
		name       string
		hashKey    string
		body       []byte
		signature  string
		serviceErr error
		expectCall bool
		wantStatus int
	}{
		{
			name:       "unsigned hub",
			body:       body,
			expectCall: true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "signed push",
			hashKey:    testHashKey,
			body:       body,
			signature:  signer.Sign(body),
			expectCall: true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad signature",
			hashKey:    testHashKey,
			body:       body,
			signature:  signer.Sign([]byte("other")),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       []byte(`{"changes":`),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       []byte(`{"changes":{},"extra":1}`),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid records",
			body:       body,
			serviceErr: service.ErrInvalidDataProvided,
			expectCall: true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store failure",
			body:       body,
			serviceErr: assert.AnError,
			expectCall: true,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router, hub := newTestHubRouter(t, ctrl, tt.hashKey)
			if tt.expectCall {
				hub.EXPECT().Push(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req models.HubPushRequest) (models.HubPushResponse, error) {
						assert.Len(t, req.Changes.Patients, 1)
						if tt.serviceErr != nil {
							return models.HubPushResponse{}, tt.serviceErr
						}
						return models.HubPushResponse{Received: 1, Stored: 1, Timestamp: 42}, nil
					})
			}

			req := httptest.NewRequest(http.MethodPost, "/sync/push", bytes.NewReader(tt.body))
			if tt.signature != "" {
				req.Header.Set(utils.HashHeader, tt.signature)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"received":1,"stored":1,"timestamp":42}`, rec.Body.String())
			}
			if tt.hashKey != "" {
				assert.True(t, signer.Verify(rec.Body.Bytes(), rec.Header().Get(utils.HashHeader)),
					"ответ подписан даже при ошибке")
			}
		})
	}
}

func TestHubRouter_Pull(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantSince  *time.Time
		wantStatus int
	}{
		{
			name:       "with cursor",
			query:      "?lastPulledAt=1705312800000",
			wantSince:  ptr(time.UnixMilli(1705312800000).UTC()),
			wantStatus: http.StatusOK,
		},
		{
			name:       "first pull",
			wantSince:  ptr(time.UnixMilli(0).UTC()),
			wantStatus: http.StatusOK,
		},
		{
			name:       "garbage cursor",
			query:      "?lastPulledAt=yesterday",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative cursor",
			query:      "?lastPulledAt=-5",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router, hub := newTestHubRouter(t, ctrl, "")
			if tt.wantSince != nil {
				hub.EXPECT().Pull(gomock.Any(), *tt.wantSince).Return(models.HubPullResponse{
					HubChanges: models.ChangesFromRecords(nil),
					Timestamp:  1705312900000,
				}, nil)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sync/pull"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t,
					`{"patients":[],"treatments":[],"assessments":[],"timestamp":1705312900000}`,
					rec.Body.String())
			}
		})
	}
}

func TestHubRouter_PullIsGzippedOnRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, hub := newTestHubRouter(t, ctrl, "")
	hub.EXPECT().Pull(gomock.Any(), gomock.Any()).Return(models.HubPullResponse{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/sync/pull", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestHubRouter_MetricsAndUnknownMethod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestHubRouter(t, ctrl, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sync/push", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}

func ptr[T any](v T) *T {
	return &v
}
