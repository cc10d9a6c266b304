// Package search implements the game tree search: iterative-deepening principal variation
// search with a transposition table, staged move ordering and the standard pruning and
// reduction heuristics, plus a capture/check quiescence search at the leaves.
package search

import (
	"context"
	"errors"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/eval"
)

// ErrHalted is returned by Search when the context is cancelled mid-search. The partial
// result computed so far (if any) must be discarded by the caller.
var ErrHalted = errors.New("search halted")

// Context carries the per-search state that is not specific to a single node: the search
// window, transposition table, evaluation noise and a ponder line to follow instead of the
// move ordering's own choice. A zero Context searches the full window with no table.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
	Noise       eval.Random
	Ponder      []board.Move

	// Contempt biases draw scores away from (positive) or towards (negative) the side to
	// move, so the engine doesn't settle for a draw it considers itself better than.
	Contempt eval.Score

	// ExcludeRoot skips these moves at the search root, used to find the 2nd, 3rd, ... best
	// line once the best one is already known (MultiPV).
	ExcludeRoot []board.Move
}

// drawScore returns the score to report for a drawn position, adjusted by contempt.
func (c *Context) drawScore() eval.Score {
	if c == nil {
		return eval.ZeroScore
	}
	return -c.Contempt
}

// Search searches the game tree rooted at b to the given depth and returns the node count,
// score (relative to the side to move), principal variation and an error. The board is
// mutated and restored during the search (PushMove/PopMove) but left unchanged on return.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}

// QuietSearch resolves a leaf position to a stable (quiescent) score, typically by searching
// captures, promotions and check evasions until none remain worth exploring.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score)
}
