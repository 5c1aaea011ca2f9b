package geocode

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Request spacing
const (
	MinInterval     = time.Second
	DefaultInterval = 1100 * time.Millisecond
)

// Result is the resolved position of one location
type Result struct {
	Index    int    `json:"index"`
	Location string `json:"location"`
	Coords   Coords `json:"coords"`
	Fallback bool   `json:"fallback"`
}

// Sequencer resolves locations strictly one at a time, starting requests at
// least Interval apart. The spacing also holds across consecutive runs.
type Sequencer struct {
	geocoder Geocoder
	interval time.Duration
	limiter  *rate.Limiter
}

// NewSequencer creates a sequencer. A zero interval means DefaultInterval;
// anything below MinInterval is raised to it.
func NewSequencer(g Geocoder, interval time.Duration) *Sequencer {
	if interval == 0 {
		interval = DefaultInterval
	}
	if interval < MinInterval {
		interval = MinInterval
	}
	return &Sequencer{
		geocoder: g,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Interval returns the effective spacing between requests
func (s *Sequencer) Interval() time.Duration {
	return s.interval
}

// Run resolves locations in order. Location i falls back to Fallback(i).
// On cancellation it returns the results gathered so far and ctx.Err().
func (s *Sequencer) Run(ctx context.Context, locations []string) ([]Result, error) {
	out := make([]Result, 0, len(locations))
	for i, loc := range locations {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			return out, err
		}
		coords, fallback := resolve(ctx, s.geocoder, loc, i)
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		out = append(out, Result{Index: i, Location: loc, Coords: coords, Fallback: fallback})
	}
	return out, nil
}
