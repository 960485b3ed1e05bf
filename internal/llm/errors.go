package llm

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/huimingz/semiauto-go/internal/config"
)

// StatusCode extracts the HTTP status from a service error, or 0 when the
// request never got a response
func StatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// Hint returns a short suggestion for a failed completion call, or "" when
// there is nothing useful to add
func Hint(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.Canceled) {
		return ""
	}

	if errors.Is(err, openai.ErrCompletionUnsupportedModel) {
		return "this model is chat-only, run with --api-mode chat or set " + config.EnvName(config.KeyAPIMode) + "=chat"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "check the host in " + config.EnvName(config.KeyAPIURL)
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return "check that " + config.EnvName(config.KeyAPIURL) + " points at a reachable server"
	}

	switch code := StatusCode(err); {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return "check " + config.EnvName(config.KeyAPIKey)
	case code == http.StatusNotFound:
		return "check " + config.EnvName(config.KeyAPIURL) + " and " + config.EnvName(config.KeyModel)
	case code == http.StatusTooManyRequests:
		return "the service is rate limiting requests, try again later"
	case code >= 500:
		return "the service failed to handle the request"
	}

	return ""
}
