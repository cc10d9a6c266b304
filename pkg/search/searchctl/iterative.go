package searchctl

import (
	"context"
	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"sync"
	"time"
)

// Iterative is a search harness for iterative deepening search.
type Iterative struct {
	Root search.Search
}

func (i *Iterative) Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, b, tt, noise, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Search, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	multiPV := int(opt.MultiPV)
	if multiPV < 1 {
		multiPV = 1
	}

	soft, useSoft := time.Duration(0), false
	switch mt, hasMoveTime := opt.MoveTime.V(); {
	case opt.Infinite:
		// No time-based halting at all; rely on DepthLimit/NodeLimit or an explicit Halt.
	case hasMoveTime:
		soft, useSoft = mt, true
		time.AfterFunc(mt, func() { h.Halt() })
	default:
		soft, useSoft = EnforceTimeControl(ctx, h, opt.TimeControl, b.Turn())
	}

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	var totalNodes uint64
	depth := 1
	for !h.quit.IsClosed() {
		start := time.Now()

		var excludeRoot []board.Move
		var best search.PV
		for rank := 1; rank <= multiPV; rank++ {
			sctx := &search.Context{
				Alpha: eval.NegInfScore, Beta: eval.InfScore, TT: tt, Noise: noise,
				Contempt: opt.Contempt, ExcludeRoot: excludeRoot,
			}

			nodes, score, moves, err := root.Search(wctx, sctx, b, depth)
			if err != nil {
				if err == search.ErrHalted {
					return // Halt was called.
				}
				logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
				return
			}
			totalNodes += nodes

			pv := search.PV{
				Depth: depth,
				Rank:  rank,
				Nodes: totalNodes,
				Score: score,
				Moves: moves,
				Time:  time.Since(start),
			}
			if tt != nil {
				pv.Hash = tt.Used()
			}

			logw.Debugf(ctx, "Searched %v: %v", b.Position(), pv)

			h.mu.Lock()
			h.pv = pv
			h.mu.Unlock()

			select {
			case <-out:
			default:
			}
			out <- pv

			if rank == 1 {
				best = pv
			}
			if len(moves) == 0 {
				break // fewer legal moves than requested PV lines
			}
			excludeRoot = append(excludeRoot, moves[0])
		}

		h.init.Close()
		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if limit, ok := opt.NodeLimit.V(); ok && totalNodes >= limit {
			return // halt: reached node budget
		}
		if md, ok := best.Score.MateDistance(); ok && int(md) <= depth {
			return // halt: forced mate found within full width search. Exact result.
		}
		if !opt.Infinite && useSoft && soft < time.Since(start) {
			return // halt: exceeded soft time limit. Do not start new search.
		}
		depth++
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
