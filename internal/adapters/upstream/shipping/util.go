package shipping

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "shipmate/internal/platform/errors"
)

// BusinessError turns a structured game refusal into a classified error
func BusinessError(msg string) error {
	if msg == "" {
		msg = "upstream refused the operation"
	}
	return perr.Businessf("%s", msg)
}

func rateLimited(msg string) error {
	if msg == "" {
		msg = "rate limited"
	}
	return perr.RateLimitedf("%s", msg)
}

// IsAlreadyDeparted reports whether an upstream error message means another
// process departed the vessel first (a benign race, see departure handling)
func IsAlreadyDeparted(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "already departed") || strings.Contains(m, "not in port")
}

// MentionsCO2 reports whether an upstream error message is the known CO2
// false negative: the game reports a quota complaint but the vessel departs
func MentionsCO2(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "co2") || strings.Contains(m, "emission")
}

// IsRateLimitMessage sniffs rate limiting out of a message-send refusal
func IsRateLimitMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "rate limit") || strings.Contains(m, "too many") ||
		strings.Contains(m, "slow down")
}

func retryAfter(h http.Header, now time.Time) time.Duration {
	s := h.Get("Retry-After")
	if s == "" {
		return 0
	}
	if sec, err := strconv.Atoi(s); err == nil && sec > 0 {
		return time.Duration(sec) * time.Second
	}
	if t, err := http.ParseTime(s); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
