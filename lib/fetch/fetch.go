// Package fetch owns the HTTP side of scraping: one explicitly constructed
// client per theater with connection reuse, browser-like headers, bounded
// retry with increasing delay for retryable failures, and rate limiting.
// Callers treat an exhausted fetch as "source unavailable", not as an error.
package fetch

import (
	"context"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"stagewatch-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Options struct {
	BaseUrl    string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

func New(opts Options) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RetryCount == 0 {
		opts.RetryCount = 3
	}
	if opts.RetryWait == 0 {
		opts.RetryWait = time.Second * 2
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(opts.BaseUrl, "/"))
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", userAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.5")
	client.SetTimeout(opts.Timeout)

	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(opts.RetryWait)
	client.SetRetryMaxWaitTime(opts.RetryWait * 8)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		// network/timeout/tls failures and server errors are retryable,
		// client errors (403, 404, ...) are not
		if err != nil {
			return true
		}
		return res.StatusCode() >= 500
	})

	// 2 requests max per second, burst of 2 so nothing gets dropped
	rateLimiter := rate.NewLimiter(2, 2)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, "fetch")

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

// Get fetches a page (path may be relative to the client's base URL or
// fully absolute) and returns the body, or nil when the source is
// unavailable: transport failure after exhausted retries, or any final
// non-2xx status.
func (c *Client) Get(ctx context.Context, path string) []byte {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		slog.WarnContext(ctx, "fetch failed", "url", path, "err", err)
		return nil
	}
	if res.IsError() {
		slog.WarnContext(ctx, "fetch returned error status", "url", path, "status", res.StatusCode())
		return nil
	}
	return res.Body()
}
