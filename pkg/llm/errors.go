package llm

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strings"
)

// Failure classes for a completion call. Callers decide the retry policy;
// this package never retries on its own.
var (
	// ErrAuthentication means the API credential is missing or rejected.
	ErrAuthentication = errors.New("authentication error")

	// ErrQuota means the service refused the call on a rate or usage
	// limit. Not retryable within the current window.
	ErrQuota = errors.New("quota exceeded")

	// ErrTransient means the call failed on a network error or a 5xx
	// response. Eligible for caller-level retry with backoff.
	ErrTransient = errors.New("transient service error")

	// ErrMalformedResponse means the service answered with zero choices.
	ErrMalformedResponse = errors.New("malformed completion response")
)

var statusCodeRe = regexp.MustCompile(`status code:? (\d{3})`)

// classifyErr maps a raw client error onto the failure classes above. Errors
// that fit no class are passed through unchanged.
func classifyErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrTransient, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Join(ErrTransient, err)
	}

	msg := strings.ToLower(err.Error())

	if m := statusCodeRe.FindStringSubmatch(msg); m != nil {
		switch {
		case m[1] == "401" || m[1] == "403":
			return errors.Join(ErrAuthentication, err)
		case m[1] == "429":
			return errors.Join(ErrQuota, err)
		case strings.HasPrefix(m[1], "5"):
			return errors.Join(ErrTransient, err)
		}
	}

	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized"):
		return errors.Join(ErrAuthentication, err)
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota"):
		return errors.Join(ErrQuota, err)
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host"):
		return errors.Join(ErrTransient, err)
	}

	return err
}
