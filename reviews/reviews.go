// Package reviews serves the guest reviews block of the public site. Reviews
// come from Google Places; when the provider cannot answer, static sample
// content is served instead.
package reviews

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Review is a single guest review.
type Review struct {
	Author       string  `json:"author"`
	Text         string  `json:"text"`
	Rating       float64 `json:"rating"`
	RelativeTime string  `json:"relativeTime,omitempty"`
	PhotoURL     string  `json:"photoUrl,omitempty"`
}

// Summary is the payload returned to the site.
type Summary struct {
	Reviews      []Review `json:"reviews"`
	Rating       float64  `json:"rating"`
	TotalRatings int64    `json:"totalRatings"`
	Fallback     bool     `json:"-"`
}

// Fetcher loads the current reviews from a provider.
type Fetcher interface {
	Fetch(ctx context.Context) (Summary, error)
}

// ErrNoProvider is reported when no fetcher is configured.
var ErrNoProvider = errors.New("reviews provider is not configured")

// Service caches the last good Summary and refreshes it through a circuit
// breaker so an unavailable provider is not hammered on every page view.
type Service struct {
	fetcher Fetcher
	breaker *gobreaker.CircuitBreaker[Summary]
	log     *zap.Logger

	mu     sync.RWMutex
	cached *Summary
}

// NewService wraps fetcher; a nil fetcher always serves the sample content.
func NewService(fetcher Fetcher, log *zap.Logger) *Service {
	s := &Service{fetcher: fetcher, log: log}
	s.breaker = gobreaker.NewCircuitBreaker[Summary](gobreaker.Settings{
		Name:        "google-places",
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// Cancelled callers are not provider failures.
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Reviews circuit breaker changed state",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return s
}

// Get returns the cached summary, fetching it on first use. The only error
// is the caller's context ending; provider failures yield the sample.
func (s *Service) Get(ctx context.Context) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	summary, _ := s.Refresh(ctx)
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// Refresh asks the provider for fresh reviews. On failure it returns the
// sample summary together with the error and leaves the cache untouched.
func (s *Service) Refresh(ctx context.Context) (Summary, error) {
	if s.fetcher == nil {
		return SampleSummary(), ErrNoProvider
	}

	summary, err := s.breaker.Execute(func() (Summary, error) {
		return s.fetcher.Fetch(ctx)
	})
	if err != nil {
		s.log.Warn("Falling back to sample reviews", zap.Error(err))
		return SampleSummary(), err
	}

	s.mu.Lock()
	s.cached = &summary
	s.mu.Unlock()
	return summary, nil
}

// Schedule starts a cron job refreshing the cache on spec, e.g. "@every 30m".
// The caller stops the returned scheduler on shutdown.
func (s *Service) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.Refresh(ctx); err == nil {
			s.log.Info("Reviews cache refreshed")
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
