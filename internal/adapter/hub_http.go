package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-mission-sync/internal/config"
	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
	"github.com/MKhiriev/go-mission-sync/models"
)

const traceIDHeader = "X-Trace-ID"

type hubHTTPAdapter struct {
	client *utils.HTTPClient
	signer *utils.Signer
	logger *logger.Logger
}

// NewHubHTTPAdapter constructs the resty implementation of [HubAdapter].
// Requests time out after adapterCfg.RequestTimeout unless the caller's
// context expires first. When appCfg.HashKey is set, push bodies are signed
// and every hub response must carry a valid HashSHA256 header.
func NewHubHTTPAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) HubAdapter {
	return &hubHTTPAdapter{
		client: utils.NewHTTPClient(adapterCfg.RequestTimeout),
		signer: utils.NewSigner(appCfg.HashKey),
		logger: logger,
	}
}

// normalizeBaseURL accepts "host:port" as well as a full URL.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: address must include host and scheme", ErrInvalidAddress)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *hubHTTPAdapter) request(ctx context.Context, address, path string) (*resty.Request, string, error) {
	base, err := normalizeBaseURL(address)
	if err != nil {
		return nil, "", err
	}

	req := h.client.R().SetContext(ctx)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader(traceIDHeader, traceID)
	}

	return req, base + path, nil
}

func (h *hubHTTPAdapter) Ping(ctx context.Context, address string) (models.PingResponse, error) {
	req, endpoint, err := h.request(ctx, address, "/ping")
	if err != nil {
		return models.PingResponse{}, err
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		return models.PingResponse{}, fmt.Errorf("ping request: %w", err)
	}

	var pong models.PingResponse
	if err = h.decode(resp, &pong); err != nil {
		return models.PingResponse{}, fmt.Errorf("ping %s: %w", address, err)
	}

	return pong, nil
}

func (h *hubHTTPAdapter) Push(ctx context.Context, address string, push models.HubPushRequest) (models.HubPushResponse, error) {
	req, endpoint, err := h.request(ctx, address, "/sync/push")
	if err != nil {
		return models.HubPushResponse{}, err
	}

	body, err := json.Marshal(push)
	if err != nil {
		return models.HubPushResponse{}, fmt.Errorf("encode push request: %w", err)
	}
	if h.signer.Enabled() {
		req.SetHeader(utils.HashHeader, h.signer.Sign(body))
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return models.HubPushResponse{}, fmt.Errorf("push request: %w", err)
	}

	var summary models.HubPushResponse
	if err = h.decode(resp, &summary); err != nil {
		return models.HubPushResponse{}, fmt.Errorf("push %s: %w", address, err)
	}

	h.logger.Debug().
		Str("func", "hubHTTPAdapter.Push").
		Str("hub", address).
		Int("sent", push.Changes.Len()).
		Int("stored", summary.Stored).
		Msg("snapshot pushed")

	return summary, nil
}

func (h *hubHTTPAdapter) Pull(ctx context.Context, address string, since time.Time) (models.HubPullResponse, error) {
	req, endpoint, err := h.request(ctx, address, "/sync/pull")
	if err != nil {
		return models.HubPullResponse{}, err
	}

	resp, err := req.
		SetQueryParam("lastPulledAt", strconv.FormatInt(since.UnixMilli(), 10)).
		Get(endpoint)
	if err != nil {
		return models.HubPullResponse{}, fmt.Errorf("pull request: %w", err)
	}

	var changes models.HubPullResponse
	if err = h.decode(resp, &changes); err != nil {
		return models.HubPullResponse{}, fmt.Errorf("pull %s: %w", address, err)
	}

	return changes, nil
}

// decode maps the status, checks the body signature and unmarshals into v.
func (h *hubHTTPAdapter) decode(resp *resty.Response, v any) error {
	if err := mapHTTPError(resp); err != nil {
		return err
	}

	body := resp.Body()
	if h.signer.Enabled() && !h.signer.Verify(body, resp.Header().Get(utils.HashHeader)) {
		return ErrIntegrityCheck
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
