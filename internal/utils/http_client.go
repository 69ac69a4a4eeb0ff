package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// userAgent identifies agent requests in hub logs.
const userAgent = "go-mission-sync-agent"

// HTTPClient embeds *resty.Client so callers use the resty API directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client whose requests time out after
// timeout. Redirects are refused: a hub never redirects, and following one
// off the LAN would leak mission data.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.NoRedirectPolicy())

	return &HTTPClient{Client: client}
}
