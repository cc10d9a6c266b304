// livechess-uci is an adaptor for using a DGT EBoard via LiveChess as a UCI engine. The adaptor
// allows use of DGT EBoards in chess programs, such as CuteChess, by pretending to be an engine.
package main

import (
	"context"
	"flag"
	"strings"
	"sync/atomic"

	"github.com/herohde/livechess-go/pkg/livechess"
	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/board/fen"
	"github.com/kestrelchess/core/pkg/engine"
	"github.com/kestrelchess/core/pkg/engine/uci"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// TODO: change engine to interface. Protocol seems brittle with setup otherwise.

var (
	serial = flag.String("serial", "auto", "Board selection by serial number (default: auto)")
	flip   = flag.Bool("flip", false, "Flip board")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	id := livechess.EBoardSerial(*serial)
	if id == "auto" {
		auto, err := livechess.AutoDetect(ctx, livechess.DefaultClient)
		if err != nil {
			logw.Exitf(ctx, "Watch failed to autodetect board: %v", err)
		}
		id = auto
	}

	client, events, err := livechess.NewFeed(ctx, id)
	if err != nil {
		logw.Exitf(ctx, "Feed for %v failed: %v", id, err)
	}
	if *flip {
		if err := client.Flip(ctx, true); err != nil {
			logw.Exitf(ctx, "Flip board %v failed: %v", id, err)
		}
	}
	if err := client.Setup(ctx, fen.Initial); err != nil {
		logw.Exitf(ctx, "Setup board %v failed: %v", id, err)
	}

	s := newBoardSearch(ctx, client, events)

	e := engine.New(ctx, "kestrel-eboard", "kestrel", s,
		engine.WithOptions(engine.Options{Depth: 1}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}

// boardSearch implements search.Search by waiting for a move on a physical DGT board instead
// of exploring a game tree: UCI's "go"/"bestmove" exchange becomes "wait for the human's next
// move", so a GUI driving this as an engine actually relays the board's real moves.
type boardSearch struct {
	client livechess.FeedClient

	last  atomic.Pointer[livechess.EBoardEventResponse] // latest event carrying a move
	pulse *iox.Pulse
}

func newBoardSearch(ctx context.Context, client livechess.FeedClient, events <-chan livechess.EBoardEventResponse) *boardSearch {
	ret := &boardSearch{
		client: client,
		pulse:  iox.NewPulse(),
	}
	go ret.process(ctx, events)
	return ret
}

func (s *boardSearch) Search(ctx context.Context, sctx *search.Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	// (1) Index every legal continuation by the placement FEN it leads to, so a board event
	// carrying just the resulting placement can be resolved back to the move played.

	byPlacement := map[string]board.Move{}
	for _, m := range b.Position().LegalMoves(b.Turn()) {
		b.PushMove(m)
		placement := strings.SplitN(fen.Encode(b.Position(), b.Turn(), 0, 0), " ", 2)[0]
		byPlacement[placement] = m
		b.PopMove()
	}

	if len(byPlacement) == 0 {
		if result := b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return 1, eval.NegInfScore, nil, nil
		}
		return 1, eval.ZeroScore, nil, nil
	}

	// (2) Block until the board reports a placement matching one of them.

	for {
		if last := s.last.Load(); last != nil {
			if m, ok := byPlacement[last.Board]; ok {
				return 1, eval.ZeroScore, []board.Move{m}, nil
			}
		}

		select {
		case <-s.pulse.Chan():
			// board changed; re-check against the candidates
		case <-ctx.Done():
			return 0, eval.InvalidScore, nil, search.ErrHalted
		}
	}
}

func (s *boardSearch) process(ctx context.Context, events <-chan livechess.EBoardEventResponse) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}

			if len(event.San) > 0 {
				s.last.Store(&event)
				s.pulse.Emit()
			}

		case <-ctx.Done():
			return
		}
	}
}
