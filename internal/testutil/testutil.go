// Package testutil provides shared test helpers for package unit tests.
package testutil

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/imroc/req/v3"
	"github.com/jarcoal/httpmock"
)

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewMockClient returns a req client whose transport is replaced by httpmock.
// The mock is deactivated when the test finishes.
func NewMockClient(t *testing.T) *req.Client {
	t.Helper()
	client := req.NewClient()
	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

// CallCount returns how many requests matched the given method and URL.
func CallCount(method, url string) int {
	return httpmock.GetCallCountInfo()[method+" "+url]
}

// TotalCalls returns the number of requests seen by the active mock.
func TotalCalls() int {
	return httpmock.GetTotalCallCount()
}

// JSONResponder returns a responder answering with status and a raw JSON body.
func JSONResponder(status int, body string) httpmock.Responder {
	return func(*http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(status, body)
		resp.Header.Set("Content-Type", "application/json")
		return resp, nil
	}
}
