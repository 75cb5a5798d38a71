package runner

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/search"
)

// EventType tags stream events.
type EventType string

const (
	// EventExplore carries one expanded cell.
	EventExplore EventType = "explore"
	// EventPath carries one path cell, source side first.
	EventPath EventType = "path"
	// EventDone ends the stream.
	EventDone EventType = "done"
)

// Done statuses.
const (
	StatusFound     = "found"
	StatusNotFound  = "not_found"
	StatusCancelled = "cancelled"
	StatusError     = "error"
)

// Event is one streamed message.
type Event struct {
	Type EventType       `json:"type"`
	Cell *gridgraph.Cell `json:"cell,omitempty"`
	// Seq numbers events of the same type from 0.
	Seq     int      `json:"seq"`
	Status  string   `json:"status,omitempty"`
	Summary *Summary `json:"summary,omitempty"`
}

// Stream runs alg and reports progress through emit: one explore event per
// expansion, then one path event per path cell, then a done event. With a
// positive interval explore and path events are spaced at least interval
// apart. An error from emit or a done context aborts the run; the done
// event is still attempted and the error returned.
func (r *Runner) Stream(ctx context.Context, snap *gridgraph.Snapshot, src, dst gridgraph.Cell, alg search.Algorithm, interval time.Duration, emit func(Event) error) (*search.Result, error) {
	pace := func(context.Context) error { return nil }
	if interval > 0 {
		lim := rate.NewLimiter(rate.Every(interval), 1)
		pace = func(ctx context.Context) error { return lim.Wait(ctx) }
	}

	start := time.Now()
	explored := 0
	res, err := r.Run(ctx, snap, src, dst, alg, search.WithOnExpand(func(c gridgraph.Cell) error {
		if err := pace(ctx); err != nil {
			return err
		}
		ev := Event{Type: EventExplore, Cell: &c, Seq: explored}
		explored++
		return emit(ev)
	}))

	if err == nil && res.Found() {
		for i := range res.Path {
			if err = pace(ctx); err != nil {
				break
			}
			if err = emit(Event{Type: EventPath, Cell: &res.Path[i], Seq: i}); err != nil {
				break
			}
		}
	}

	sum := Summarize(alg, res, time.Since(start), err)
	done := Event{Type: EventDone, Status: status(res, err), Summary: &sum}
	if emitErr := emit(done); err == nil {
		err = emitErr
	}

	return res, err
}

func status(res *search.Result, err error) string {
	switch {
	case res == nil:
		return StatusError
	case err != nil || res.State == search.Cancelled:
		return StatusCancelled
	case res.Found():
		return StatusFound
	default:
		return StatusNotFound
	}
}
