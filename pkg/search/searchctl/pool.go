package searchctl

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/seekerror/logw"
)

// Pool is a lazy-SMP Launcher: it runs the ordinary iterative-deepening main search on one
// goroutine while Threads-1 helper goroutines search the same root position independently
// (with slightly staggered starting depths), sharing only the transposition table. Helpers
// never report a PV; their sole effect is to warm the table with entries the main search can
// then reuse, which in practice finds deeper lines faster than a single thread would.
type Pool struct {
	Root    search.Search
	Threads int
}

func (p *Pool) Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan search.PV) {
	main := &Iterative{Root: p.Root}
	h, out := main.Launch(ctx, b, tt, noise, opt)

	helpers := p.Threads - 1
	if helpers < 1 || tt == nil {
		return h, out
	}

	hctx, cancel := context.WithCancel(ctx)
	for i := 0; i < helpers; i++ {
		go p.help(hctx, b.Fork(), tt, noise, opt, i+1)
	}

	mh := h.(*handle)
	go func() {
		<-mh.quit.Closed()
		cancel()
	}()

	return h, out
}

// help runs an unreported, ever-deepening search on its own board, staggering the starting
// depth by worker index so the pool explores more of the tree than depth-synchronized threads
// would. It runs until hctx is cancelled, which happens when the main search halts.
func (p *Pool) help(hctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options, worker int) {
	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore, TT: tt, Noise: noise, Contempt: opt.Contempt}

	depth := 1 + worker%3
	for {
		select {
		case <-hctx.Done():
			return
		default:
		}

		if _, _, _, err := p.Root.Search(hctx, sctx, b, depth); err != nil {
			logw.Debugf(hctx, "Helper %v halted at depth=%v: %v", worker, depth, err)
			return
		}
		depth++
	}
}
