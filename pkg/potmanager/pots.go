package potmanager

// Pot is one layer of the pot with the participants eligible to win it
type Pot struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
	Winners  []string `json:"winners,omitempty"`
}

// Pots is a collection of pots, main pot first
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}
