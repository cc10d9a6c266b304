package book_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/board/fen"
	"github.com/kestrelchess/core/pkg/book"
	"github.com/stretchr/testify/require"
)

func TestPersistentBookLearnAndFind(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	pb, err := book.OpenPersistent(ctx, dir)
	require.NoError(t, err)
	defer pb.Close()

	move, err := board.ParseMove("e2e4")
	require.NoError(t, err)

	moves, err := pb.Find(ctx, fen.Initial)
	require.NoError(t, err)
	require.Empty(t, moves)

	require.NoError(t, pb.Learn(ctx, fen.Initial, move))

	moves, err = pb.Find(ctx, fen.Initial)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	require.True(t, move.Equals(moves[0]))
}

func TestPersistentBookSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	move, err := board.ParseMove("d2d4")
	require.NoError(t, err)

	pb, err := book.OpenPersistent(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, pb.Learn(ctx, fen.Initial, move))
	require.NoError(t, pb.Close())

	reopened, err := book.OpenPersistent(ctx, dir)
	require.NoError(t, err)
	defer reopened.Close()

	moves, err := reopened.Find(ctx, fen.Initial)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	require.True(t, move.Equals(moves[0]))
}
