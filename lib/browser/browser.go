// Package browser renders JavaScript-driven pages through headless chrome
// for the platforms whose listings do not exist in the initial HTML payload.
package browser

import (
	"context"
	"log/slog"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Renderer struct {
	// Timeout bounds a single page render, selector wait included.
	Timeout time.Duration
}

// RenderHTML navigates to a url, waits for waitSelector to become visible
// and returns the rendered document. An empty waitSelector waits for the
// body only.
func (r Renderer) RenderHTML(ctx context.Context, url, waitSelector string) (string, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if bin := findChromeBinary(); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// chromedp is noisy on flaky sites, route nothing to the default logger
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	if waitSelector == "" {
		waitSelector = "body"
	}

	slog.DebugContext(ctx, "rendering page", "url", url, "wait", waitSelector)

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

func findChromeBinary() string {
	for _, name := range []string{
		"google-chrome", "google-chrome-stable", "chromium", "chromium-browser",
	} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
