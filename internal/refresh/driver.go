package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guttosm/quotepulse/internal/domain/dto"
	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/logger"
	"github.com/guttosm/quotepulse/internal/service"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
)

const (
	// DefaultInterval is the fixed refresh cadence.
	DefaultInterval = 30 * time.Second

	subscriberBuffer = 4
)

// ErrInvalidSelection is returned by Select for an empty symbol or unknown period.
var ErrInvalidSelection = errors.New("invalid selection")

// Driver re-runs the aggregator for the current selection on a fixed cadence
// and immediately after the selection changes, and fans each resulting
// dashboard out to subscribers.
//
// Failed refreshes are published as error states and are not retried; the
// next tick tries again.
type Driver struct {
	agg      service.QuoteAggregator
	interval time.Duration
	tailSize int
	clock    clockwork.Clock

	mu     sync.RWMutex
	sel    dto.Selection
	gen    uint64
	latest *dto.Dashboard

	subsMu sync.Mutex
	subs   map[int]chan dto.Dashboard
	nextID int
	closed bool

	jobs []job
}

type job struct {
	spec string
	name string
	fn   func()
}

// NewDriver creates a driver for initial. interval <= 0 means DefaultInterval;
// a nil clock means wall-clock time.
func NewDriver(agg service.QuoteAggregator, initial dto.Selection, interval time.Duration, clock clockwork.Clock) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	initial.Symbol = models.NormalizeSymbol(initial.Symbol)
	return &Driver{
		agg:      agg,
		interval: interval,
		tailSize: dto.DefaultTailSize,
		clock:    clock,
		sel:      initial,
		subs:     make(map[int]chan dto.Dashboard),
	}
}

// Interval returns the refresh cadence.
func (d *Driver) Interval() time.Duration { return d.interval }

// AddJob schedules fn on the driver's cron alongside the refresh, e.g. cache
// housekeeping. spec uses the standard cron syntax or descriptors such as
// "@every 5m". Jobs must be added before Run.
func (d *Driver) AddJob(name, spec string, fn func()) {
	d.jobs = append(d.jobs, job{spec: spec, name: name, fn: fn})
}

// Run refreshes once, then on every tick until ctx is cancelled. It always
// returns nil after waiting for a running refresh to finish.
func (d *Driver) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{}),
		cron.SkipIfStillRunning(cronLogger{}),
	))
	spec := fmt.Sprintf("@every %s", d.interval)
	if _, err := c.AddFunc(spec, func() { d.Refresh(ctx) }); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	for _, j := range d.jobs {
		if _, err := c.AddFunc(j.spec, j.fn); err != nil {
			return fmt.Errorf("register %s job: %w", j.name, err)
		}
	}

	d.Refresh(ctx)
	c.Start()
	logger.L().Info().Dur("interval", d.interval).Msg("refresh driver started")

	<-ctx.Done()
	<-c.Stop().Done()
	d.closeSubscribers()
	logger.L().Info().Msg("refresh driver stopped")
	return nil
}

// Selection returns the current selection.
func (d *Driver) Selection() dto.Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sel
}

// Select replaces the selection and refreshes immediately.
func (d *Driver) Select(ctx context.Context, sel dto.Selection) (dto.Dashboard, error) {
	sel.Symbol = models.NormalizeSymbol(sel.Symbol)
	if sel.Symbol == "" {
		return dto.Dashboard{}, fmt.Errorf("%w: symbol is required", ErrInvalidSelection)
	}
	if !sel.Period.Valid() {
		return dto.Dashboard{}, fmt.Errorf("%w: unsupported period %q", ErrInvalidSelection, sel.Period)
	}

	d.mu.Lock()
	d.sel = sel
	d.gen++
	d.mu.Unlock()

	logger.L().Info().Str("symbol", sel.Symbol).Str("period", string(sel.Period)).Bool("show_ma", sel.ShowMA).Msg("selection changed")
	return d.Refresh(ctx), nil
}

// Refresh runs the aggregator for the current selection and publishes the
// result. A result computed for a selection that was replaced meanwhile is
// returned but not published.
func (d *Driver) Refresh(ctx context.Context) dto.Dashboard {
	d.mu.RLock()
	sel, gen := d.sel, d.gen
	d.mu.RUnlock()

	dash := d.build(ctx, sel)

	d.mu.Lock()
	stale := gen != d.gen
	if !stale {
		d.latest = &dash
	}
	d.mu.Unlock()

	if stale {
		logger.L().Debug().Str("symbol", sel.Symbol).Msg("dropping refresh for replaced selection")
		return dash
	}
	d.publish(dash)
	return dash
}

// Latest returns the most recently published dashboard.
func (d *Driver) Latest() (dto.Dashboard, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.latest == nil {
		return dto.Dashboard{}, false
	}
	return *d.latest, true
}

// Subscribe registers a listener. Updates are dropped for a listener whose
// buffer is full. The returned func unsubscribes and closes the channel.
// Once Run has stopped, the channel is returned already closed.
func (d *Driver) Subscribe() (<-chan dto.Dashboard, func()) {
	ch := make(chan dto.Dashboard, subscriberBuffer)

	d.subsMu.Lock()
	if d.closed {
		d.subsMu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := d.nextID
	d.nextID++
	d.subs[id] = ch
	d.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.subsMu.Lock()
			if c, ok := d.subs[id]; ok {
				delete(d.subs, id)
				close(c)
			}
			d.subsMu.Unlock()
		})
	}
}

func (d *Driver) publish(dash dto.Dashboard) {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	for id, ch := range d.subs {
		select {
		case ch <- dash:
		default:
			logger.L().Warn().Int("subscriber", id).Msg("subscriber slow, dropping dashboard update")
		}
	}
}

func (d *Driver) closeSubscribers() {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	d.closed = true
	for id, ch := range d.subs {
		delete(d.subs, id)
		close(ch)
	}
}

func (d *Driver) build(ctx context.Context, sel dto.Selection) dto.Dashboard {
	dash := dto.Dashboard{Selection: sel, UpdatedAt: d.clock.Now()}

	snap, err := d.agg.GetSnapshot(ctx, sel.Symbol, sel.Period)
	if err != nil {
		dash.Error = DescribeError(err)
		var ih *service.InsufficientHistoryError
		var cu *service.ChangeUnavailableError
		switch {
		case errors.As(err, &ih) && len(ih.Bars) > 0:
			bar := ih.Bars[len(ih.Bars)-1]
			dash.Partial = &bar
		case errors.As(err, &cu):
			bar := cu.Latest
			dash.Partial = &bar
		}
		return dash
	}

	metrics := dto.NewSnapshotResponse(snap)
	chart := dto.NewChartResponse(snap, sel.ShowMA, d.tailSize)
	dash.Snapshot = &metrics
	dash.Chart = &chart
	return dash
}

// DescribeError maps an aggregator error to the dashboard state the viewer shows.
func DescribeError(err error) *dto.DashboardError {
	var upstream *service.UpstreamFetchError
	state := dto.StateInvalidRequest
	switch {
	case errors.As(err, &upstream):
		state = dto.StateUpstreamUnavailable
	case errors.Is(err, service.ErrInvalidSymbol):
		state = dto.StateInvalidSymbol
	case errors.Is(err, service.ErrInsufficientHistory):
		state = dto.StateInsufficientHistory
	case errors.Is(err, service.ErrDivisionByZero):
		state = dto.StateChangeUnavailable
	}
	return &dto.DashboardError{State: state, Message: err.Error()}
}
