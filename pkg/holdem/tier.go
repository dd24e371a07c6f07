package holdem

import (
	"fmt"
)

// Tier is the skill of an automated participant
type Tier string

// tier constants
const (
	Easy   Tier = "easy"
	Medium Tier = "medium"
	Hard   Tier = "hard"
)

// ParseTier returns the tier for the given string
// An empty string is medium
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case Easy, Medium, Hard:
		return Tier(s), nil
	case "":
		return Medium, nil
	}

	return "", fmt.Errorf("unknown tier: %s", s)
}
