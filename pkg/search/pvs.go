package search

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// PVS implements iterative-deepening-friendly principal variation search: a negamax
// alpha-beta search that assumes the first move explored at each node is the best one (the
// principal variation), searches the rest with a cheap null-window probe and only falls back
// to a full re-search when a later move actually beats it. On top of that skeleton it adds a
// transposition table, staged move ordering (TT move, SEE-ordered captures, killers, history
// for quiets), and the standard forward-pruning and reduction heuristics: razoring, reverse
// futility pruning, null-move pruning, internal iterative deepening, futility pruning, late
// move pruning, late move reductions and check extensions.
//
// Pseudo-code for the PVS core (see https://en.wikipedia.org/wiki/Principal_variation_search):
//
//	function pvs(node, depth, α, β, color) is
//	   if depth = 0 or node is a terminal node then
//	       return color × the heuristic value of node
//	   for each child of node do
//	       if child is first child then
//	           score := −pvs(child, depth − 1, −β, −α, −color)
//	       else
//	           score := −pvs(child, depth − 1, −α − 1, −α, −color)
//	           if α < score < β then
//	               score := −pvs(child, depth − 1, −β, −score, −color)
//	       α := max(α, score)
//	       if α ≥ β then
//	           break
//	   return α
type PVS struct {
	Explore Exploration
	Eval    QuietSearch
	Static  eval.Evaluator
}

func (p PVS) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runPVS{
		explore:     fullIfNotSet(p.Explore),
		eval:        p.Eval,
		static:      p.Static,
		tt:          sctx.TT,
		noise:       sctx.Noise,
		ponder:      sctx.Ponder,
		contempt:    sctx.Contempt,
		excludeRoot: sctx.ExcludeRoot,
		killers:     newKillers(),
		history:     newHistory(),
		b:           b,
	}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score, moves := run.search(ctx, depth, low, high, 0, true, true)
	if contextx.IsCancelled(ctx) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runPVS struct {
	explore Exploration
	eval    QuietSearch
	static  eval.Evaluator
	tt      TranspositionTable
	noise   eval.Random
	killers *killers
	history *history
	b       *board.Board
	nodes   uint64

	ponder      []board.Move
	contempt    eval.Score
	excludeRoot []board.Move
}

// search returns the score relative to the side to move at ply, plus the principal
// variation from this node. ply is the distance from the search root, used for killer slots
// and mate-distance bookkeeping; depth is the remaining search depth. pvNode marks a node on
// the principal variation, where pruning is disabled to keep the reported line exact;
// allowNull disables a second consecutive null move.
func (m *runPVS) search(ctx context.Context, depth int, alpha, beta eval.Score, ply int, pvNode, allowNull bool) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.InvalidScore, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return m.drawScore(), nil
	}

	var ttMove board.Move
	if bound, d, score, mv, ok := m.tt.Read(m.b.Hash()); ok {
		ttMove = mv
		if !pvNode && depth <= d {
			switch {
			case bound == ExactBound:
				return score, nil
			case bound == LowerBound && score >= beta:
				return score, nil
			case bound == UpperBound && score <= alpha:
				return score, nil
			}
		}
	}

	if depth <= 0 {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise, Contempt: m.contempt}
		nodes, score := m.eval.QuietSearch(ctx, sctx, m.b)
		m.nodes += nodes
		m.tt.Write(m.b.Hash(), ExactBound, ply, 0, score, board.Move{})
		return score, nil
	}

	m.nodes++
	inCheck := m.b.Position().IsChecked(m.b.Turn())

	// (1) Razoring: hopelessly far below alpha with little depth left, drop straight into
	// quiescence instead of searching a full ply.
	if !pvNode && !inCheck && depth <= 2 && !alpha.IsMate() {
		margin := eval.Score(depth) * 150
		if static := m.static.Evaluate(ctx, m.b); static+margin < alpha {
			sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise, Contempt: m.contempt}
			nodes, score := m.eval.QuietSearch(ctx, sctx, m.b)
			m.nodes += nodes
			if score < alpha {
				return score, nil
			}
		}
	}

	// (2) Reverse futility / static null-move pruning: a huge static margin above beta
	// means no amount of searching is likely to bring the score back down to beta.
	if !pvNode && !inCheck && depth <= 6 && !beta.IsMate() {
		margin := eval.Score(depth) * 120
		static := m.static.Evaluate(ctx, m.b)
		if static-margin >= beta {
			return static - margin, nil
		}
	}

	// (3) Null-move pruning: let the opponent move twice in a row; if we're still winning
	// easily, the real move would only be better. Skipped in check and in likely zugzwang
	// (no non-pawn material), since passing is then not a sound approximation.
	if allowNull && !pvNode && !inCheck && depth >= 3 && hasNonPawnMaterial(m.b, m.b.Turn()) {
		reduction := 3 + depth/6
		m.b.PushMove(board.Move{Type: board.NullMove})
		score, _ := m.search(ctx, depth-1-reduction, beta.Negate(), beta.Negate()+1, ply+1, false, false)
		score = score.IncrementMateDistance().Negate()
		m.b.PopMove()

		if score >= beta && !score.IsMate() {
			return beta, nil
		}
	}

	// (4) Internal iterative deepening: no TT move to order by, so do a cheap reduced
	// search first purely to populate one.
	if ttMove == (board.Move{}) && depth >= 5 && pvNode {
		m.search(ctx, depth-2, alpha, beta, ply, pvNode, false)
		if _, _, _, mv, ok := m.tt.Read(m.b.Hash()); ok {
			ttMove = mv
		}
	}

	hasLegalMove := false
	bound := UpperBound
	var pv []board.Move
	moveCount := 0
	quietCount := 0

	_, explore := m.explore(ctx, m.b)
	if len(m.ponder) > 0 {
		explore = m.ponder[0].Equals
		m.ponder = m.ponder[1:]
	}

	ordered := board.First(ttMove, m.orderer(ply))
	moves := board.NewMoveList(m.b.Position().PseudoLegalMoves(m.b.Turn()), ordered)
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !explore(move) {
			continue
		}
		if m.isExcludedRootMove(ply, move) {
			continue
		}

		quiet := !move.IsCapture() && !move.IsPromotion()

		// (5) Futility pruning / late move pruning for quiet moves close to the leaves,
		// once at least one move has been tried so legality/mate detection still works.
		if hasLegalMove && quiet && !pvNode && !inCheck && depth <= 6 {
			quietCount++
			if quietCount > 4+depth*depth {
				continue // LMP: too many quiet moves tried already at this depth
			}
			if depth <= 3 && !alpha.IsMate() {
				margin := eval.Score(depth) * 100
				if static := m.static.Evaluate(ctx, m.b); static+margin <= alpha {
					continue // futility: this quiet move can't plausibly raise alpha
				}
			}
		}

		if !m.b.PushMove(move) {
			continue // not legal
		}
		moveCount++

		givesCheck := m.b.Position().IsChecked(m.b.Turn())
		ext := 0
		if givesCheck {
			ext = 1 // check extension: don't let a checking move run out the clock
		}

		var score eval.Score
		var rem []board.Move

		newDepth := depth - 1 + ext
		switch {
		case !hasLegalMove:
			score, rem = m.search(ctx, newDepth, beta.Negate(), alpha.Negate(), ply+1, pvNode, true)
			score = score.IncrementMateDistance().Negate()
		default:
			red := 0
			if ext == 0 && quiet && moveCount > 3 && depth >= 3 && !inCheck {
				red = lmrReduction(depth, moveCount)
			}

			score, rem = m.search(ctx, newDepth-red, alpha.Negate()-1, alpha.Negate(), ply+1, false, true)
			score = score.IncrementMateDistance().Negate()

			if score > alpha && (red > 0 || score < beta) {
				// Either the reduced search beat alpha (re-verify at full depth) or it
				// fell inside the window and needs the full-width re-search.
				score, rem = m.search(ctx, newDepth, beta.Negate(), alpha.Negate(), ply+1, pvNode, true)
				score = score.IncrementMateDistance().Negate()
			}
		}
		m.b.PopMove()
		hasLegalMove = true

		if alpha < score {
			alpha = score
			bound = ExactBound
			pv = append([]board.Move{move}, rem...)
		}

		if alpha >= beta {
			bound = LowerBound
			if quiet {
				m.killers.add(ply, move)
				m.history.add(m.b.Turn(), move, depth)
			}
			break // cutoff
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.NegInfScore, nil
		}
		return m.drawScore(), nil
	}

	m.tt.Write(m.b.Hash(), bound, ply, depth, alpha, firstOrNone(pv))
	return alpha, pv
}

// orderer ranks moves within a node: good captures/queen promotions by SEE gain, then
// killers, then quiet moves by history score, then bad captures and under-promotions last.
func (m *runPVS) orderer(ply int) board.MovePriorityFn {
	k1, k2 := m.killers.at(ply)
	turn := m.b.Turn()
	pos := m.b.Position()

	return func(mv board.Move) board.MovePriority {
		switch {
		case mv.IsCapture() && mv.Type != board.EnPassant:
			gain := eval.SEE(pos, turn, mv.To, mv.Capture)
			if gain >= 0 {
				return board.MovePriority(20000 + gain)
			}
			return board.MovePriority(500 + gain/10)
		case mv.Type == board.EnPassant:
			return board.MovePriority(20000 + eval.NominalValue(board.Pawn))
		case mv.IsPromotion():
			if mv.Promotion == board.Queen {
				return board.MovePriority(20000 + eval.NominalValue(board.Queen))
			}
			return -1000
		case k1.Equals(mv):
			return 19000
		case k2.Equals(mv):
			return 18999
		default:
			return 1000 + board.MovePriority(m.history.score(turn, mv)/64)
		}
	}
}

// lmrReduction computes the late-move-reduction depth cut for the moveCount-th move tried
// at the given depth: one ply, two at depth >= 6 past the 8th move, three at depth >= 10 past
// the 16th move, capped at depth-1. The reduction changes only at these fixed thresholds; it is
// not a continuous (logarithmic) function of depth and move count.
func lmrReduction(depth, moveCount int) int {
	r := 1
	if depth >= 6 && moveCount > 8 {
		r = 2
	}
	if depth >= 10 && moveCount > 16 {
		r = 3
	}
	if r > depth-1 {
		r = depth - 1
	}
	return r
}

// hasNonPawnMaterial reports whether side has any piece besides pawns and king, the usual
// precondition for null-move pruning being sound (otherwise zugzwang is too likely).
func hasNonPawnMaterial(b *board.Board, side board.Color) bool {
	pos := b.Position()
	return pos.Piece(side, board.Knight) != 0 ||
		pos.Piece(side, board.Bishop) != 0 ||
		pos.Piece(side, board.Rook) != 0 ||
		pos.Piece(side, board.Queen) != 0
}

// drawScore returns the contempt-adjusted score for a position this node judges drawn.
func (m *runPVS) drawScore() eval.Score {
	return -m.contempt
}

// isExcludedRootMove reports whether mv must be skipped at the search root, used to probe
// for the next-best line in MultiPV once better ones are already known.
func (m *runPVS) isExcludedRootMove(ply int, mv board.Move) bool {
	if ply != 0 {
		return false
	}
	for _, ex := range m.excludeRoot {
		if ex.Equals(mv) {
			return true
		}
	}
	return false
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}
