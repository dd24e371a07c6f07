package holdem

import (
	"fmt"
)

// Street is a betting round
type Street int

// street constants
const (
	Preflop Street = iota
	Flop
	Turn
	River
	// Complete is set once the hand has been settled
	Complete
)

var streetNames = []string{"preflop", "flop", "turn", "river", "complete"}

// streetForBoard returns the street being played given the number of community cards
func streetForBoard(n int) Street {
	switch n {
	case 0:
		return Preflop
	case 3:
		return Flop
	case 4:
		return Turn
	}

	return River
}

func (s Street) String() string {
	if s < Preflop || s > Complete {
		return fmt.Sprintf("Street(%d)", int(s))
	}

	return streetNames[s]
}

// MarshalText encodes the street by name
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes the street from its name
func (s *Street) UnmarshalText(b []byte) error {
	for i, name := range streetNames {
		if name == string(b) {
			*s = Street(i)
			return nil
		}
	}

	return fmt.Errorf("unknown street: %s", string(b))
}
