package httpclient

import (
	"github.com/imroc/req/v3"

	"github.com/tbckr/insight/internal/ratelimit"
)

// AttachRateLimit gates every outbound request on limiter.Wait. Requests are
// never retried; a request whose wait is cancelled fails with the context error.
func AttachRateLimit(client *req.Client, limiter *ratelimit.Limiter) {
	client.OnBeforeRequest(func(_ *req.Client, r *req.Request) error {
		return limiter.Wait(r.Context())
	})
}
