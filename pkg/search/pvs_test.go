package search_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/board/fen"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPVS(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		fen   string
		depth int
	}{
		{fen.Initial, 3},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 3},
	}

	material := eval.Material{}
	pvs := search.PVS{Eval: search.ZeroPly{Eval: material}, Static: material}
	minimax := search.Minimax{Eval: material}

	for _, tt := range tests {
		pos, turn, np, fm, err := fen.Decode(tt.fen)
		require.NoError(t, err)

		b := board.NewBoard(board.NewZobristTable(0), pos, turn, np, fm)
		sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore, TT: search.NewTranspositionTable(ctx, 1<<20)}

		n, actual, _, err := pvs.Search(ctx, sctx, b, tt.depth)
		require.NoError(t, err)

		mb := board.NewBoard(board.NewZobristTable(0), pos, turn, np, fm)
		mn, expected, _, err := minimax.Search(ctx, &search.Context{}, mb, tt.depth)
		require.NoError(t, err)

		t.Logf("POS: %v; PVS NODES: %v; MINIMAX NODES: %v", tt.fen, n, mn)
		assert.Equalf(t, expected, actual, "failed: %v", tt.fen)
	}
}
