package eval

import "github.com/kestrelchess/core/pkg/board"

// SEE performs a static exchange evaluation of a capture on sq: the net material gain for
// side after all profitable recaptures resolve, assuming both sides always recapture with
// their least valuable attacker. occupant is the nominal value of the piece initially
// standing on sq (the first piece captured); the initial capture is taken to be made by side's
// least valuable attacker. Attackers are resolved once against the live
// position rather than re-discovering x-rayed sliders as pieces are removed, which slightly
// understates the value of batteries but keeps the algorithm a straightforward generalization
// of the standard swap-off loop.
func SEE(pos *board.Position, side board.Color, sq board.Square, occupant board.Piece) Score {
	var attackers [2][]board.Placement
	attackers[side] = Attackers(pos, side, sq)
	attackers[side.Opponent()] = Attackers(pos, side.Opponent(), sq)
	var idx [2]int

	gain := make([]Score, 1, 32)
	gain[0] = NominalValue(occupant)

	turn := side.Opponent()
	captured := occupant
	if len(attackers[side]) > 0 {
		captured = attackers[side][0].Piece // side's capturer is what the opponent takes next
		idx[side] = 1
	}
	for idx[turn] < len(attackers[turn]) {
		attacker := attackers[turn][idx[turn]]
		idx[turn]++

		gain = append(gain, NominalValue(captured)-gain[len(gain)-1])
		captured = attacker.Piece
		turn = turn.Opponent()
	}

	for i := len(gain) - 2; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}
