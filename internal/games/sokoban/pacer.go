package sokoban

import (
	"time"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Pacer throttles moves to at most one per Interval of wall-clock time.
// Directions requested between releases coalesce: the last request wins.
// The zero value releases every request immediately.
type Pacer struct {
	Interval time.Duration

	pending core.Direction
	last    time.Time
}

// NewPacer creates a pacer with the given minimum move interval.
func NewPacer(interval time.Duration) Pacer {
	return Pacer{Interval: interval}
}

// Request records d as the next direction to apply. NoMove is ignored.
func (p *Pacer) Request(d core.Direction) {
	if d != core.NoMove {
		p.pending = d
	}
}

// Pending returns the direction waiting for release.
func (p *Pacer) Pending() core.Direction {
	return p.pending
}

// Due releases the pending direction if one is waiting and at least Interval
// has passed since the previous release. A released direction is cleared.
func (p *Pacer) Due(now time.Time) (core.Direction, bool) {
	if p.pending == core.NoMove {
		return core.NoMove, false
	}
	if !p.last.IsZero() && now.Sub(p.last) < p.Interval {
		return core.NoMove, false
	}

	d := p.pending
	p.pending = core.NoMove
	p.last = now
	return d, true
}

// Reset drops the pending direction and the release history.
func (p *Pacer) Reset() {
	p.pending = core.NoMove
	p.last = time.Time{}
}

// DirectionFor maps a platform action to an engine direction.
// Non-direction actions map to NoMove.
func DirectionFor(a platformcore.Action) core.Direction {
	switch a {
	case platformcore.ActionUp:
		return core.Up
	case platformcore.ActionDown:
		return core.Down
	case platformcore.ActionLeft:
		return core.Left
	case platformcore.ActionRight:
		return core.Right
	default:
		return core.NoMove
	}
}
