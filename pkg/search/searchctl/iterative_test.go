package searchctl_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/board/fen"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/kestrelchess/core/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T) *board.Board {
	t.Helper()

	pos, turn, np, fm, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(0), pos, turn, np, fm)
}

func newPVS() search.Search {
	material := eval.Material{}
	return search.PVS{Eval: search.ZeroPly{Eval: material}, Static: material}
}

func drain(out <-chan search.PV) []search.PV {
	var all []search.PV
	for pv := range out {
		all = append(all, pv)
	}
	return all
}

func TestIterativeDepthLimit(t *testing.T) {
	ctx := context.Background()

	it := &searchctl.Iterative{Root: newPVS()}
	tt := search.NewTranspositionTable(ctx, 1<<20)

	opt := searchctl.Options{DepthLimit: lang.Some(uint(3))}
	_, out := it.Launch(ctx, newBoard(t), tt, eval.Random{}, opt)

	all := drain(out)
	require.NotEmpty(t, all)
	require.Equal(t, 3, all[len(all)-1].Depth)
	for _, pv := range all {
		require.Equal(t, 1, pv.Rank) // single-PV: MultiPV defaults to 1
	}
}

func TestIterativeMultiPV(t *testing.T) {
	ctx := context.Background()

	it := &searchctl.Iterative{Root: newPVS()}
	tt := search.NewTranspositionTable(ctx, 1<<20)

	opt := searchctl.Options{DepthLimit: lang.Some(uint(2)), MultiPV: 2}
	_, out := it.Launch(ctx, newBoard(t), tt, eval.Random{}, opt)

	all := drain(out)
	require.NotEmpty(t, all)

	// The final depth must report both ranks, 1 then 2, each with a distinct first move.
	var ranksAtFinalDepth []search.PV
	for _, pv := range all {
		if pv.Depth == 2 {
			ranksAtFinalDepth = append(ranksAtFinalDepth, pv)
		}
	}
	require.Len(t, ranksAtFinalDepth, 2)
	require.Equal(t, 1, ranksAtFinalDepth[0].Rank)
	require.Equal(t, 2, ranksAtFinalDepth[1].Rank)
	require.False(t, ranksAtFinalDepth[0].Moves[0].Equals(ranksAtFinalDepth[1].Moves[0]))
}

func TestIterativeHalt(t *testing.T) {
	ctx := context.Background()

	it := &searchctl.Iterative{Root: newPVS()}
	tt := search.NewTranspositionTable(ctx, 1<<20)

	opt := searchctl.Options{Infinite: true}
	h, out := it.Launch(ctx, newBoard(t), tt, eval.Random{}, opt)

	// Drain a couple of PVs before halting, so the search has made visible progress.
	<-out
	<-out

	pv := h.Halt()
	require.NotEmpty(t, pv.Moves)

	// Further Halt calls are idempotent and the channel eventually closes.
	pv2 := h.Halt()
	require.Equal(t, pv.Moves, pv2.Moves)
}
