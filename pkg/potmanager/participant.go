package potmanager

// Contribution is what a participant has committed across the whole hand
type Contribution struct {
	ID string
	// Seat is where the participant is seated at the table
	Seat int
	// Amount is every chip committed, swept or still in the current round
	Amount int
	Folded bool
}

// contending returns true if the participant can still win chips
func (c Contribution) contending() bool {
	return !c.Folded
}
