package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kestrelchess/core/pkg/book"
	"github.com/kestrelchess/core/pkg/engine"
	"github.com/kestrelchess/core/pkg/engine/console"
	"github.com/kestrelchess/core/pkg/engine/uci"
	"github.com/kestrelchess/core/pkg/eval"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/seekerror/logw"
)

var (
	hash         = flag.Uint("hash", 64, "Transposition table size in MB (0 disables it)")
	threads      = flag.Uint("threads", 1, "Number of search worker threads")
	multipv      = flag.Uint("multipv", 1, "Number of principal variations to report")
	contempt     = flag.Int("contempt", 0, "Draw score bias, in centipawns")
	moveoverhead = flag.Duration("moveoverhead", 30*time.Millisecond, "Safety margin subtracted from every time budget")
	noise        = flag.Int("noise", 10, "Evaluation noise in millipawns (zero if deterministic)")
	ownbook      = flag.Bool("ownbook", true, "Use the built-in opening book")
	bookdb       = flag.String("bookdb", "", "Directory for a persistent, learned opening book (disabled if empty)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: morlock [options]

MORLOCK is a simple UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	material := eval.Material{}
	s := search.PVS{
		Eval:   search.Quiescence{Eval: material},
		Static: material,
	}

	e := engine.New(ctx, "morlock", "herohde", s, engine.WithOptions(engine.Options{
		Hash:         *hash,
		Threads:      *threads,
		MultiPV:      *multipv,
		Contempt:     *contempt,
		MoveOverhead: *moveoverhead,
		Noise:        uint(*noise),
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		// Use UCI protocol.

		var opts []uci.Option
		if *ownbook {
			books := book.Chained{book.Default}
			if *bookdb != "" {
				if pb, err := book.OpenPersistent(ctx, *bookdb); err != nil {
					logw.Errorf(ctx, "Opening book db %v failed, continuing without it: %v", *bookdb, err)
				} else {
					defer pb.Close()
					books = append(books, pb)
				}
			}
			opts = append(opts, uci.UseBook(books, time.Now().UnixNano()))
		}

		driver, out := uci.NewDriver(ctx, e, in, opts...)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
