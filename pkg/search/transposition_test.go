package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTable(t *testing.T) {
	ctx := context.Background()

	// (1) Test that we use MSB for size only.

	tt := search.NewTranspositionTable(ctx, 0x1000)
	assert.Equal(t, uint64(0x1000), tt.Size())
	tt2 := search.NewTranspositionTable(ctx, 0x1f00)
	assert.Equal(t, uint64(0x1000), tt2.Size())

	// (2) Test read/write.

	a := board.ZobristHash(rand.Uint64())

	_, _, _, _, ok := tt.Read(a)
	assert.False(t, ok)

	m := board.Move{From: board.G4, To: board.G8, Promotion: board.Queen}
	s := eval.Score(200)
	_ = tt.Write(a, search.ExactBound, 5, 2, s, m)

	bound, depth, score, move, ok := tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 2, depth)
	assert.Equal(t, s, score)
	assert.Equal(t, m, move)

	_, _, _, _, ok = tt.Read(a ^ 0xff0000)
	assert.False(t, ok)

	// (3) Test replacement policy: higher (ply + 2*depth) value wins.

	norepl := tt.Write(a, search.ExactBound, 2, 3, eval.Score(500), m)
	assert.False(t, norepl)

	repl := tt.Write(a, search.ExactBound, 4, 3, eval.Score(500), m)
	assert.True(t, repl)

	// (4) Clear empties the table.

	tt.Clear()
	_, _, _, _, ok = tt.Read(a)
	assert.False(t, ok)
}
