// Package book provides a small built-in opening book, so the engine doesn't have to
// spend search time on well-known early theory.
package book

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/engine"
	"github.com/seekerror/logw"
)

// Default is a short, hand-picked set of main-line openings covering both colors.
var Default engine.Book

func init() {
	var err error
	Default, err = engine.NewBook([]engine.Line{
		{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"},           // Ruy Lopez
		{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4"},           // Italian
		{"e2e4", "c7c5"},                                   // Sicilian
		{"e2e4", "e7e6"},                                   // French
		{"e2e4", "c7c6"},                                   // Caro-Kann
		{"d2d4", "d7d5", "c2c4"},                            // Queen's Gambit
		{"d2d4", "g8f6", "c2c4", "g7g6"},                   // King's Indian / Grunfeld family
		{"d2d4", "g8f6", "c2c4", "e7e6"},                   // Nimzo/QID family
		{"g1f3", "d7d5", "c2c4"},                           // Reti
		{"c2c4"},                                           // English
	})
	if err != nil {
		logw.Exitf(context.Background(), "Invalid default opening book: %v", err)
	}
}

// Chained tries each book in order and returns the first non-empty result, so a curated
// book of known theory can be backed by a persistent, learned one (or vice versa).
type Chained []engine.Book

func (c Chained) Find(ctx context.Context, fen string) ([]board.Move, error) {
	for _, b := range c {
		moves, err := b.Find(ctx, fen)
		if err != nil {
			return nil, err
		}
		if len(moves) > 0 {
			return moves, nil
		}
	}
	return nil, nil
}
