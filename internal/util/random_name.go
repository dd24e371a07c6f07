package util

import (
	"fmt"

	"holdem-server/internal/rng"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Speedy", "Trotting", "Weaving", "Gracious", "Healthy", "Happy", "Funny",
	"Red", "Blue", "Green", "Orange", "Purple", "Fuzzy", "Smiling", "Tall", "Grand", "Prime",
	"Growling", "Slithering", "Swimming", "Flying", "Jumping", "Running", "Charging", "Bouncing", "Leaping",
}

var animals = []string{
	"Dog", "Cat", "Mouse", "Alligator", "Shark", "Hippo", "Giraffe", "Antelope", "Lion", "Tiger",
	"Bear", "Muskrat", "Otter", "Dolphin", "Porcupine", "Hedgehog", "Snake", "Lizard", "Chipmunk",
	"Okapi", "Eagle", "Mandrill", "Bonobo", "Wolf", "Fox", "Armadillo", "Rhino", "Anteater", "Panda",
}

// RandomName returns a name for an automated participant by combining an adjective with an animal
func RandomName(gen rng.Generator) string {
	return fmt.Sprintf("%s %s", adjectives[gen.Intn(len(adjectives))], animals[gen.Intn(len(animals))])
}
