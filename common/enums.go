// Package common keeps enums shared by configuration and the phrase engine so
// neither has to import the other.
package common

// How configured phrase classes are matched against element class attribute.
// ENUM(subset, exact)
type ClassMatch int

// Result of a single phrase toggle.
// ENUM(unchanged, added, removed, split)
type Outcome int

func (o Outcome) Changed() bool {
	return o != OutcomeUnchanged
}
