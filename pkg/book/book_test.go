package book_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/board/fen"
	"github.com/kestrelchess/core/pkg/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBookFindsOpeningMove(t *testing.T) {
	ctx := context.Background()

	moves, err := book.Default.Find(ctx, fen.Initial)
	require.NoError(t, err)
	assert.NotEmpty(t, moves)
}

func TestDefaultBookEmptyOutsideTheory(t *testing.T) {
	ctx := context.Background()

	// A position far outside any known opening line should not be in the book.
	moves, err := book.Default.Find(ctx, "k7/8/8/8/8/8/8/7K w - - 0 1")
	require.NoError(t, err)
	assert.Empty(t, moves)
}

type fakeBook struct {
	moves []string
}

func (f fakeBook) Find(ctx context.Context, fen string) ([]board.Move, error) {
	var ret []board.Move
	for _, s := range f.moves {
		m, err := board.ParseMove(s)
		if err != nil {
			return nil, err
		}
		ret = append(ret, m)
	}
	return ret, nil
}

func TestChainedPrefersFirstNonEmpty(t *testing.T) {
	ctx := context.Background()

	empty := fakeBook{}
	fallback := fakeBook{moves: []string{"e2e4"}}

	chained := book.Chained{empty, fallback}
	moves, err := chained.Find(ctx, fen.Initial)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "e2e4", moves[0].String())
}
