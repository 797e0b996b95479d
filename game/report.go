package game

import "fmt"

// EncounterReport is one round's outcome as seen by one player.
type EncounterReport[ID Identifier[ID]] struct {
	OwnAction   Action
	OtherAction Action
	Side        Side
	OtherID     ID
}

// LeftAction is the action played from the left seat.
func (r EncounterReport[ID]) LeftAction() Action {
	if r.Side == Left {
		return r.OwnAction
	}
	return r.OtherAction
}

// RightAction is the action played from the right seat.
func (r EncounterReport[ID]) RightAction() Action {
	if r.Side == Left {
		return r.OtherAction
	}
	return r.OwnAction
}

func (r EncounterReport[ID]) SideAction(side Side) Action {
	if side == Left {
		return r.LeftAction()
	}
	return r.RightAction()
}

func (r EncounterReport[ID]) OwnSide() Side {
	return r.Side
}

// CalculateReward scores the report for its owner. The own/other pair is first put back into
// seat order, so asymmetric tables pay the seat the owner actually held.
func (r EncounterReport[ID]) CalculateReward(table RewardTable) int64 {
	return table.RewardForSide(r.Side, r.LeftAction(), r.RightAction())
}

func (r EncounterReport[ID]) String() string {
	return fmt.Sprintf("Update [own action: %s, opponent's action: %s]", r.OwnAction, r.OtherAction)
}

// Pair seats two players for one round.
type Pair[ID Identifier[ID]] struct {
	Left  ID
	Right ID
}

// Pairing is the full seating of one round.
type Pairing[ID Identifier[ID]] []Pair[ID]

// ClassicGameUpdate is broadcast to every player after a round is resolved. Encounters is
// indexed by player index.
type ClassicGameUpdate[ID Identifier[ID]] struct {
	Encounters []EncounterReport[ID]
	Pairing    Pairing[ID]
}

// Report returns the encounter of the player with the given id.
func (u ClassicGameUpdate[ID]) Report(id ID) (EncounterReport[ID], bool) {
	i := id.Index()
	if i < 0 || i >= len(u.Encounters) {
		return EncounterReport[ID]{}, false
	}
	return u.Encounters[i], true
}
