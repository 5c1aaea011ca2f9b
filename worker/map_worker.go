package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"civictrack/geocode"
	"civictrack/models"
)

// Resolver runs one geocoding pass over a list of locations.
// *geocode.Sequencer implements it.
type Resolver interface {
	Run(ctx context.Context, locations []string) ([]geocode.Result, error)
}

// ErrNotRunning is returned by Load before Start or after Stop
var ErrNotRunning = errors.New("map worker is not running")

// Pin is a complaint placed on the map
type Pin struct {
	ComplaintID string         `json:"complaintId"`
	Title       string         `json:"title"`
	Location    string         `json:"location"`
	Status      models.Status  `json:"status"`
	Coords      geocode.Coords `json:"coords"`
	Fallback    bool           `json:"fallback"`
}

// Snapshot is the worker's current map state
type Snapshot struct {
	Generation uint64 `json:"generation"`
	Pins       []Pin  `json:"pins"`
	Located    int    `json:"located"` // complaints with a location in the current load
	Done       bool   `json:"done"`
}

// MapWorker geocodes complaint locations in the background. Each Load
// supersedes the previous one: the running pass is cancelled and its results
// are discarded even if it still completes.
type MapWorker struct {
	resolver Resolver

	mu         sync.Mutex
	ctx        context.Context
	stop       context.CancelFunc
	running    bool
	generation uint64
	cancelPass context.CancelFunc
	passDone   chan struct{}
	snapshot   Snapshot

	// one pass talks to the geocoder at a time
	passMu sync.Mutex
	wg     sync.WaitGroup
}

// NewMapWorker creates a new map worker
func NewMapWorker(resolver Resolver) *MapWorker {
	done := make(chan struct{})
	close(done)
	return &MapWorker{
		resolver: resolver,
		passDone: done,
		snapshot: Snapshot{Done: true},
	}
}

// Start starts the map worker
func (w *MapWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		slog.Debug("map worker is already running")
		return
	}
	w.ctx, w.stop = context.WithCancel(context.Background())
	w.running = true
	slog.Debug("map worker started")
}

// Stop cancels any running pass and waits for it to exit
func (w *MapWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.stop()
	w.mu.Unlock()

	w.wg.Wait()
	slog.Debug("map worker stopped")
}

// Load starts a geocoding pass for the complaints that have a location and
// returns its generation.
func (w *MapWorker) Load(complaints []models.Complaint) (uint64, error) {
	located := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if c.HasLocation() {
			located = append(located, c)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return 0, ErrNotRunning
	}
	if w.cancelPass != nil {
		w.cancelPass()
	}
	w.generation++
	gen := w.generation
	ctx, cancel := context.WithCancel(w.ctx)
	done := make(chan struct{})
	w.cancelPass = cancel
	w.passDone = done
	w.snapshot = Snapshot{Generation: gen, Located: len(located)}

	w.wg.Add(1)
	go w.run(ctx, gen, located, done)
	return gen, nil
}

// run is one geocoding pass
func (w *MapWorker) run(ctx context.Context, gen uint64, located []models.Complaint, done chan struct{}) {
	defer w.wg.Done()
	defer close(done)

	w.passMu.Lock()
	defer w.passMu.Unlock()

	var results []geocode.Result
	var err error
	if ctx.Err() == nil {
		locations := make([]string, len(located))
		for i, c := range located {
			locations[i] = c.Location
		}
		results, err = w.resolver.Run(ctx, locations)
	} else {
		err = ctx.Err()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.generation {
		slog.Debug("discarding stale geocoding pass", "generation", gen, "current", w.generation)
		return
	}
	if err != nil {
		slog.Debug("geocoding pass stopped", "generation", gen, "error", err)
		return
	}

	pins := make([]Pin, 0, len(results))
	fallbacks := 0
	for _, r := range results {
		c := located[r.Index]
		pins = append(pins, Pin{
			ComplaintID: c.ID,
			Title:       c.Title,
			Location:    c.Location,
			Status:      c.Status,
			Coords:      r.Coords,
			Fallback:    r.Fallback,
		})
		if r.Fallback {
			fallbacks++
		}
	}
	w.snapshot.Pins = pins
	w.snapshot.Done = true
	slog.Info("geocoding pass completed", "generation", gen, "pins", len(pins), "fallbacks", fallbacks)
}

// Snapshot returns the current map state. Pins stay empty until the
// current pass completes.
func (w *MapWorker) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.snapshot
	s.Pins = append([]Pin(nil), w.snapshot.Pins...)
	return s
}

// Wait blocks until the latest pass has finished, then returns the snapshot.
// A Load issued while waiting extends the wait to the new pass.
func (w *MapWorker) Wait(ctx context.Context) (Snapshot, error) {
	for {
		w.mu.Lock()
		done := w.passDone
		gen := w.generation
		w.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return w.Snapshot(), ctx.Err()
		}

		w.mu.Lock()
		current := w.generation
		w.mu.Unlock()
		if current == gen {
			return w.Snapshot(), nil
		}
	}
}
