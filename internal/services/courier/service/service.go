// Package service implements the rate-limited outbound message queue.
// One global FIFO, one drainer, a fixed wait between any two consecutive
// sends so the upstream throttle is never tripped
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"shipmate/internal/modkit"
	perr "shipmate/internal/platform/errors"
	"shipmate/internal/platform/logger"
	"shipmate/internal/services/courier/domain"
)

// Defaults observed from the upstream throttle
const (
	DefaultInterval   = 45 * time.Second
	DefaultMaxRetries = 2
)

// Config for the courier queue
type Config struct {
	Interval   time.Duration
	MaxRetries int
}

type pending struct {
	msg     domain.Message
	retries int
	done    chan error
}

// Service implements domain.QueuePort plus the drain loop
type Service struct {
	send  domain.SendFunc
	emit  modkit.Broadcaster
	cfg   Config
	sleep func(ctx context.Context, d time.Duration)

	mu    sync.Mutex
	items []*pending
	wake  chan struct{}
}

// New constructs the queue. emit may be nil for headless operation
func New(send domain.SendFunc, emit modkit.Broadcaster, cfg Config) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if emit == nil {
		emit = func(string, string, any) {}
	}
	return &Service{
		send: send,
		emit: emit,
		cfg:  cfg,
		wake: make(chan struct{}, 1),
		sleep: func(ctx context.Context, d time.Duration) {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
			case <-t.C:
			}
		},
	}
}

// WithSleep overrides the inter-send wait, for tests
func (s *Service) WithSleep(fn func(ctx context.Context, d time.Duration)) *Service {
	s.sleep = fn
	return s
}

// Enqueue implements domain.QueuePort
func (s *Service) Enqueue(msg domain.Message) <-chan error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	p := &pending{msg: msg, done: make(chan error, 1)}

	s.mu.Lock()
	s.items = append(s.items, p)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return p.done
}

// Len implements domain.QueuePort
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Run drains the queue until ctx is cancelled. Exactly one Run per process
func (s *Service) Run(ctx context.Context) error {
	log := logger.Named("courier")
	for {
		p := s.pop()
		if p == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.wake:
				continue
			}
		}

		err := s.send(ctx, p.msg.Recipient, p.msg.Subject, p.msg.Body)
		switch {
		case err == nil:
			p.done <- nil
			log.Debug().Str("msg_id", p.msg.ID).Str("to", p.msg.Recipient).Msg("message sent")

		case perr.IsCode(err, perr.ErrorCodeTooManyRequests):
			p.retries++
			if p.retries <= s.cfg.MaxRetries {
				// head of the line: the throttled item goes out first
				// once the interval has passed
				s.pushFront(p)
				log.Warn().Str("msg_id", p.msg.ID).Int("retry", p.retries).Msg("rate limited, requeued at front")
			} else {
				p.done <- err
				s.emit(p.msg.ActorID, modkit.EventNotice, modkit.Notice{
					Level: modkit.NoticeError,
					Text:  "Message to " + p.msg.Recipient + " failed: rate limit retries exhausted",
				})
				log.Error().Str("msg_id", p.msg.ID).Msg("rate limit retries exhausted")
			}

		default:
			// anything but a throttle is terminal immediately
			p.done <- err
			s.emit(p.msg.ActorID, modkit.EventNotice, modkit.Notice{
				Level: modkit.NoticeError,
				Text:  "Message to " + p.msg.Recipient + " failed: " + perr.WireFrom(err).Message,
			})
			log.Error().Err(err).Str("msg_id", p.msg.ID).Msg("message send failed")
		}

		// the wait is global and unconditional, success or not
		s.sleep(ctx, s.cfg.Interval)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *Service) pop() *pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil
	}
	p := s.items[0]
	s.items = s.items[1:]
	return p
}

func (s *Service) pushFront(p *pending) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]*pending{p}, s.items...)
}
