// Package shipping provides a resilient client for the shippingmanager game API
package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "shipmate/internal/platform/errors"
	"shipmate/internal/platform/logger"
)

const (
	baseURLDefault   = "https://shippingmanager.cc/api"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "shipmate-autopilot"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond

	sessionCookie = "shipping_manager_session"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// SessionToken is the value of the game session cookie.
	// Acquiring it (browser login, keyring) is out of this client's scope
	SessionToken string

	// Retry config for transient transport and 5xx responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal game API client with session auth and bounded retries
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("shipping"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// do issues a request, decodes the JSON response into out, and classifies errors.
// Business refusals come back as 200 with an error payload; those are decoded,
// not retried. Only transport trouble, 429, and 5xx are retried
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	url := c.opts.BaseURL + path

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "shipping marshal request failed")
		}
	}

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var rdr io.Reader
		if payload != nil {
			rdr = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rdr)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "shipping new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.opts.SessionToken != "" {
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.opts.SessionToken})
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !c.shouldRetry(attempts) {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "shipping transport failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Err(err).
				Msg("shipping transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("shipping http response")

		switch {
		case resp.StatusCode == http.StatusOK:
			defer func() {
				if cerr := resp.Body.Close(); cerr != nil {
					c.log.Error().Err(cerr).Str("path", path).Msg("shipping close body failed")
				}
			}()
			if out == nil {
				_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
				return nil
			}
			b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			if err != nil {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "shipping read body failed")
			}
			if err := json.Unmarshal(b, out); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeJSON, "shipping decode %s failed", path)
			}
			return nil

		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			_ = drainAndClose(resp.Body)
			return perr.Newf(perr.ErrorCodeUnauthorized, "shipping session rejected (status %d)", resp.StatusCode)

		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp.Header, c.now())
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return perr.RateLimitedf("shipping rate limited")
			}
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			c.log.Warn().Dur("sleep", wait).Msg("shipping rate limited backing off")
			c.sleep(wait)
			attempts++
			continue

		case resp.StatusCode >= 500:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return perr.Unavailablef("shipping server error (status %d)", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Int("status", resp.StatusCode).
				Msg("shipping transient server error retrying")
			c.sleep(back)
			attempts++
			continue

		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return perr.Newf(perr.ErrorCodeUnknown, "shipping unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	ms := int64(c.opts.RetryBase / time.Millisecond)
	ms = ms << uint(attempt)
	if lim := int64(30 * time.Second / time.Millisecond); ms > lim {
		ms = lim
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}
