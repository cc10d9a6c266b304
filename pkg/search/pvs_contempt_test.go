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

// pushUCI resolves a bare "e2e4"-style move against the position's legal moves and pushes it.
func pushUCI(t *testing.T, b *board.Board, str string) {
	t.Helper()

	candidate, err := board.ParseMove(str)
	require.NoError(t, err)

	for _, m := range b.Position().PseudoLegalMoves(b.Turn()) {
		if m.Equals(candidate) {
			require.True(t, b.PushMove(m), "illegal move %v", str)
			return
		}
	}
	t.Fatalf("move %v not found", str)
}

func TestPVSContempt(t *testing.T) {
	ctx := context.Background()

	pos, turn, np, fm, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	b := board.NewBoard(board.NewZobristTable(0), pos, turn, np, fm)

	// Shuffle both knights out and back twice, so the start position occurs a third time
	// (threefold repetition).
	for i := 0; i < 2; i++ {
		pushUCI(t, b, "b1c3")
		pushUCI(t, b, "b8c6")
		pushUCI(t, b, "c3b1")
		pushUCI(t, b, "c6b8")
	}
	require.Equal(t, board.Draw, b.Result().Outcome)

	material := eval.Material{}
	pvs := search.PVS{Eval: search.ZeroPly{Eval: material}, Static: material}

	for _, contempt := range []eval.Score{0, 50, -50} {
		sctx := &search.Context{
			Alpha: eval.NegInfScore, Beta: eval.InfScore,
			TT: search.NewTranspositionTable(ctx, 1<<20), Contempt: contempt,
		}

		_, score, _, err := pvs.Search(ctx, sctx, b, 1)
		require.NoError(t, err)
		require.Equal(t, -contempt, score)
	}
}
