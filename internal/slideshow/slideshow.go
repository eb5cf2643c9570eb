// Package slideshow rotates the landing page background on a fixed interval.
package slideshow

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const DefaultInterval = 5000 * time.Millisecond

var slideshowLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	slideshowLogger = l
}

type Slideshow struct {
	mu        sync.Mutex
	slides    []string
	interval  time.Duration
	current   int
	listeners []func(int)

	done chan struct{}
	stop func()
}

func New(slides []string, interval time.Duration) *Slideshow {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Slideshow{slides: slices.Clone(slides), interval: interval}
}

func (s *Slideshow) Slides() []string {
	return slices.Clone(s.slides)
}

func (s *Slideshow) Interval() time.Duration {
	return s.interval
}

func (s *Slideshow) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Active reports whether the rotation goroutine is running.
func (s *Slideshow) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}

// OnChange registers fn to receive the new index after every advance.
func (s *Slideshow) OnChange(fn func(int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Advance moves to the next slide, wrapping after the last one.
func (s *Slideshow) Advance() int {
	s.mu.Lock()
	if len(s.slides) == 0 {
		s.mu.Unlock()
		return 0
	}
	s.current = (s.current + 1) % len(s.slides)
	current := s.current
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(current)
	}
	return current
}

// Start advances the slideshow every interval until ctx is done or the
// returned stop function is called. stop blocks until the goroutine exits.
// Starting a running slideshow returns its existing stop function.
func (s *Slideshow) Start(ctx context.Context) (stop func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		return s.stop
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.done = done

	var once sync.Once
	s.stop = func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}

	go s.run(ctx, done)
	slideshowLogger.Debug().Dur("interval", s.interval).Int("slides", len(s.slides)).Msg("Slideshow started")

	return s.stop
}

func (s *Slideshow) run(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer func() {
		ticker.Stop()
		s.mu.Lock()
		if s.done == done {
			s.done = nil
			s.stop = nil
		}
		s.mu.Unlock()
		close(done)
		slideshowLogger.Debug().Msg("Slideshow stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Advance()
		}
	}
}
