package search

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// maxQuiescencePly bounds how deep the quiescence search will chase a check sequence, as a
// backstop against pathological positions with very long forcing lines.
const maxQuiescencePly = 32

// deltaMargin is added to the best capture's material gain before comparing against alpha:
// a safety margin so a capture that also wins a positional bonus (not just material) isn't
// pruned away.
const deltaMargin = eval.Score(200)

// ZeroPly is a QuietSearch that performs no further search at all: it returns the static
// evaluator's score directly. Used to test the main search in isolation from quiescence.
type ZeroPly struct {
	Eval eval.Evaluator
}

func (z ZeroPly) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	return 1, z.Eval.Evaluate(ctx, b) + sctx.Noise.Evaluate(ctx, b)
}

// Quiescence is a capture/check-resolving QuietSearch: it keeps searching captures,
// promotions and (while in check) all replies until the position is quiet, avoiding the
// horizon effect of evaluating in the middle of a forcing exchange.
type Quiescence struct {
	Eval eval.Evaluator
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	run := &runQuiescence{eval: q.Eval, noise: sctx.Noise, b: b, contempt: sctx.Contempt}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score := run.search(ctx, low, high, 0)
	return run.nodes, score
}

type runQuiescence struct {
	eval     eval.Evaluator
	noise    eval.Random
	b        *board.Board
	nodes    uint64
	contempt eval.Score
}

// search returns the score relative to the side to move.
func (r *runQuiescence) search(ctx context.Context, alpha, beta eval.Score, qply int) eval.Score {
	if contextx.IsCancelled(ctx) {
		return eval.ZeroScore
	}
	if r.b.Result().Outcome == board.Draw {
		return -r.contempt
	}

	r.nodes++

	inCheck := r.b.Position().IsChecked(r.b.Turn())

	standPat := eval.NegInfScore
	if !inCheck {
		standPat = r.eval.Evaluate(ctx, r.b) + r.noise.Evaluate(ctx, r.b)
		if standPat >= beta {
			return standPat
		}
		alpha = eval.Max(alpha, standPat)
	}
	if qply >= maxQuiescencePly {
		return alpha
	}

	hasLegalMove := false
	priority, explore := QuiescenceExploration(ctx, r.b)

	moves := board.NewMoveList(r.b.Position().PseudoLegalMoves(r.b.Turn()), priority)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !explore(m) {
			continue
		}
		if !inCheck && m.IsCapture() && !m.IsPromotion() {
			if standPat+eval.NominalValue(m.Capture)+deltaMargin < alpha {
				continue // delta pruning: can't possibly reach alpha
			}
		}

		if !r.b.PushMove(m) {
			continue // not legal
		}
		hasLegalMove = true

		score := r.search(ctx, beta.Negate(), alpha.Negate(), qply+1).IncrementMateDistance().Negate()
		r.b.PopMove()

		if alpha < score {
			alpha = score
		}
		if alpha >= beta {
			break // cutoff
		}
	}

	if !hasLegalMove && inCheck {
		if result := r.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.NegInfScore
		}
		return -r.contempt
	}
	return alpha
}
