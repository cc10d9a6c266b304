package search_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/board/fen"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/stretchr/testify/require"
)

// TestPVSExcludeRoot checks that Context.ExcludeRoot removes a move from consideration at the
// search root only, the mechanism searchctl's Iterative uses to implement MultiPV: re-running
// the search with the previous best move(s) excluded surfaces the next-best root line.
func TestPVSExcludeRoot(t *testing.T) {
	ctx := context.Background()

	pos, turn, np, fm, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	material := eval.Material{}
	pvs := search.PVS{Eval: search.ZeroPly{Eval: material}, Static: material}

	b := board.NewBoard(board.NewZobristTable(0), pos, turn, np, fm)
	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore, TT: search.NewTranspositionTable(ctx, 1<<20)}
	_, _, best, err := pvs.Search(ctx, sctx, b, 2)
	require.NoError(t, err)
	require.NotEmpty(t, best)

	b2 := board.NewBoard(board.NewZobristTable(0), pos, turn, np, fm)
	sctx2 := &search.Context{
		Alpha: eval.NegInfScore, Beta: eval.InfScore,
		TT: search.NewTranspositionTable(ctx, 1<<20), ExcludeRoot: []board.Move{best[0]},
	}
	_, _, second, err := pvs.Search(ctx, sctx2, b2, 2)
	require.NoError(t, err)
	require.NotEmpty(t, second)

	require.False(t, best[0].Equals(second[0]), "excluded root move %v reappeared as the new best", best[0])
}
