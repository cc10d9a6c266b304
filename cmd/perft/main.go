// perft is a movegen debugging tools. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/board/fen"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	pos, turn, _, _, err := fen.Decode(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(pos, turn, i, *divide && i == *depth)
		elapsed := time.Since(start)

		var nps int64
		if elapsed > 0 {
			nps = nodes * int64(time.Second) / int64(elapsed)
		}
		println(fmt.Sprintf("perft,%v,%v,%v,%v,%v nps", *position, i, nodes, elapsed.Microseconds(), nps))
	}
}

// perft counts the leaf positions depth plies below pos, the standard move-generator
// correctness test: its counts are known exact values for a set of reference positions, so a
// mismatch pinpoints a move generation or make/unmake bug. verbose prints the per-root-move
// split at the outermost call only, when divide is requested.
func perft(pos *board.Position, turn board.Color, depth int, verbose bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range pos.PseudoLegalMoves(turn) {
		next, ok := pos.Move(turn, m)
		if !ok {
			continue
		}

		count := perft(next, turn.Opponent(), depth-1, false)
		if verbose {
			println(fmt.Sprintf("%v: %v", m, count))
		}
		nodes += count
	}
	return nodes
}
