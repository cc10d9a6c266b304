package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl represents a UCI-style game clock: remaining time and increment per side, plus
// how many moves remain until the next time control (0 meaning the rest of the game).
// MoveOverhead is a safety margin subtracted from every computed budget to leave headroom
// for engine/GUI communication latency, so the engine doesn't flag on time.
type TimeControl struct {
	White, Black         time.Duration
	WhiteInc, BlackInc   time.Duration
	Moves                int
	MoveOverhead         time.Duration
}

// Limits returns a soft and hard limit for making a move with the given color. The
// interpretation is that after the soft limit, no new iterative-deepening depth should be
// started; the hard limit is enforced unconditionally, mid-search.
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	remainder, inc := t.White, t.WhiteInc
	if c == board.Black {
		remainder, inc = t.Black, t.BlackInc
	}

	// We assume 40 moves to end the game, if nothing else is known.
	// Let B = T/80 + increment be the soft timeout and the hard timeout be 3B.

	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft := remainder/(2*moves) + inc
	hard := 3 * soft

	soft = withOverhead(soft, t.MoveOverhead)
	hard = withOverhead(hard, t.MoveOverhead)
	return soft, hard
}

func withOverhead(d, overhead time.Duration) time.Duration {
	if d > overhead {
		return d - overhead
	}
	return time.Millisecond
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// EnforceTimeControl enforces the time control limits, if any, by scheduling an automatic
// Halt at the hard limit. Returns the soft limit and whether one applies.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
