package client

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/seanazu/value-hunter/middleware"
)

const DefaultScreenerTimeout = 30 * time.Second

// ScreenerClient talks to the external screening service
type ScreenerClient struct {
	RestyClient *resty.Client
}

func NewScreenerClient(baseURL string, timeout time.Duration) *ScreenerClient {
	if timeout <= 0 {
		timeout = DefaultScreenerTimeout
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		OnAfterResponse(middleware.DecompressMiddleware)

	return &ScreenerClient{RestyClient: c}
}

// Run issues GET /run with rawQuery appended as-is, so the parameter order is kept.
func (c *ScreenerClient) Run(ctx context.Context, rawQuery string) (*resty.Response, error) {
	path := "/run"
	if rawQuery != "" {
		path += "?" + rawQuery
	}
	return c.RestyClient.R().
		SetContext(ctx).
		Get(path)
}
