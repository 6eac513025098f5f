package generative

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/Heritage-Craft/artisan-marketplace-backend/apperr"
)

// classifyStatus maps a provider HTTP status onto an error kind.
func classifyStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusBadGateway,
		code == http.StatusServiceUnavailable,
		code == http.StatusGatewayTimeout,
		code == http.StatusTooManyRequests:
		return apperr.Wrap(apperr.ErrGenerationUnavailable, fmt.Sprintf("provider responded %d", code), nil)
	default:
		return apperr.Wrap(apperr.ErrGenerationFailed, fmt.Sprintf("provider responded %d", code), nil)
	}
}

// classifyTransport treats timeouts as transient and everything else as a failure.
func classifyTransport(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperr.Wrap(apperr.ErrGenerationUnavailable, op, err)
	}
	return apperr.Wrap(apperr.ErrGenerationFailed, op, err)
}
