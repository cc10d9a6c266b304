package book

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/engine"
	"github.com/seekerror/logw"
)

// Persistent is a disk-backed opening book that learns as it plays: every move the engine
// commits to in the opening is recorded, so future games in the same position benefit from
// past search effort instead of starting from nothing.
type Persistent struct {
	db *badger.DB
}

// OpenPersistent opens (creating if absent) a badger-backed book at the given directory.
func OpenPersistent(ctx context.Context, dir string) (*Persistent, error) {
	opt := badger.DefaultOptions(dir).WithLogger(nil)

	db, err := badger.Open(opt)
	if err != nil {
		return nil, err
	}
	logw.Infof(ctx, "Opened persistent book at %v", dir)
	return &Persistent{db: db}, nil
}

func (p *Persistent) Close() error {
	return p.db.Close()
}

// entry is the set of moves observed from a given position, most-played first.
type entry struct {
	Moves []string `json:"moves"`
	Plays []int    `json:"plays"`
}

func (p *Persistent) Find(ctx context.Context, fen string) ([]board.Move, error) {
	var e entry
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bookKey(fen))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if err != nil {
		return nil, err
	}

	var moves []board.Move
	for _, s := range e.Moves {
		m, err := board.ParseMove(s)
		if err != nil {
			continue // stale/corrupt entry; skip rather than fail the lookup
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// Learn records that move was played (or chosen) from the position given by fen, incrementing
// its play count so it is preferred over lesser-seen alternatives in the future.
func (p *Persistent) Learn(ctx context.Context, fen string, move board.Move) error {
	key := bookKey(fen)
	mv := move.String()

	return p.db.Update(func(txn *badger.Txn) error {
		var e entry
		if item, err := txn.Get(key); err == nil {
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		found := false
		for i, s := range e.Moves {
			if s == mv {
				e.Plays[i]++
				for ; i > 0 && e.Plays[i] > e.Plays[i-1]; i-- {
					e.Plays[i], e.Plays[i-1] = e.Plays[i-1], e.Plays[i]
					e.Moves[i], e.Moves[i-1] = e.Moves[i-1], e.Moves[i]
				}
				found = true
				break
			}
		}
		if !found {
			e.Moves = append(e.Moves, mv)
			e.Plays = append(e.Plays, 1)
		}

		buf, err := json.Marshal(e)
		if err != nil {
			return err
		}
		return txn.Set(key, buf)
	})
}

var _ engine.Book = (*Persistent)(nil)

func bookKey(fen string) []byte {
	parts := strings.Split(fen, " ")
	if len(parts) > 4 {
		parts = parts[:4]
	}
	return []byte(strings.Join(parts, " "))
}
