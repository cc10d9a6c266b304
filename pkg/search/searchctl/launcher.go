// Package searchctl contains search functionality and utilities.
package searchctl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search options, mirroring the UCI "go" command's parameters. The
// engine may change these on every new search.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth.
	DepthLimit lang.Optional[uint]
	// NodeLimit, if set, limits the search to (approximately) the given node count.
	NodeLimit lang.Optional[uint64]
	// MoveTime, if set, fixes the time spent on this move exactly, ignoring TimeControl.
	MoveTime lang.Optional[time.Duration]
	// Infinite disables all time-based halting; the search runs until explicitly stopped.
	Infinite bool
	// TimeControl, if set, limits the search to the given game-clock time parameters.
	TimeControl lang.Optional[TimeControl]
	// Contempt biases draw scores away from (positive) or towards (negative) the side to move.
	Contempt eval.Score
	// MultiPV requests this many best lines to be reported, not just the single best one.
	// Values <= 1 behave as a normal single-PV search.
	MultiPV uint
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.NodeLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("nodes=%v", v))
	}
	if v, ok := o.MoveTime.V(); ok {
		ret = append(ret, fmt.Sprintf("movetime=%v", v))
	}
	if o.Infinite {
		ret = append(ret, "infinite")
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher is an interface for managing searches.
type Launcher interface {
	// Launch a new search from the given position. It expects an exclusive (forked) board and
	// returns a PV channel for iteratively deeper searches. If the search is exhausted, the
	// channel is closed. The search can be stopped at any time.
	Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan search.PV)
}

// Handle is an interface for the engine to manage searches. The engine is expected to spin off
// searches with forked boards and close/abandon them when no longer needed. This design keeps
// stopping conditions and re-synchronization trivial.
type Handle interface {
	// Halt halts the search, if running. Idempotent.
	Halt() search.PV
}
