package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/kestrelchess/core/pkg/eval"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/kestrelchess/core/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/require"
)

// TestPoolConcurrentTT exercises the lazy-SMP launcher: helper goroutines hammer the same
// shared transposition table concurrently with the main search. It reports no PV of its own, so
// the only thing to verify is that the main search still completes cleanly and the table survives
// concurrent use (run with -race to catch any unsynchronized access).
func TestPoolConcurrentTT(t *testing.T) {
	ctx := context.Background()

	pool := &searchctl.Pool{Root: newPVS(), Threads: 4}
	tt := search.NewTranspositionTable(ctx, 1<<20)

	opt := searchctl.Options{DepthLimit: lang.Some(uint(3))}
	h, out := pool.Launch(ctx, newBoard(t), tt, eval.Random{}, opt)

	all := drain(out)
	require.NotEmpty(t, all)
	require.Equal(t, 3, all[len(all)-1].Depth)

	// Helpers are cancelled once the main search's handle reports done; give them a moment to
	// unwind before the test process exits so a leaked goroutine doesn't touch a finalized table.
	h.Halt()
	time.Sleep(10 * time.Millisecond)
}

func TestPoolSingleThreadHasNoHelpers(t *testing.T) {
	ctx := context.Background()

	pool := &searchctl.Pool{Root: newPVS(), Threads: 1}
	tt := search.NewTranspositionTable(ctx, 1<<20)

	opt := searchctl.Options{DepthLimit: lang.Some(uint(2))}
	_, out := pool.Launch(ctx, newBoard(t), tt, eval.Random{}, opt)

	all := drain(out)
	require.NotEmpty(t, all)
	require.Equal(t, 2, all[len(all)-1].Depth)
}
