// Package layout provides a one-dimensional constraint solver that
// partitions an available length into sub-regions. Two-dimensional
// layouts come from applying the solver along one axis and then again
// along the other on any resulting region; the solver itself has no
// two-dimensional concept.
package layout

import "fmt"

type constraintKind uint8

const (
	kindLength constraintKind = iota
	kindMin
	kindMax
	kindRatio
	kindPercentage
	kindFlex
)

// Constraint describes how much of the available length one region
// claims. Constraints are immutable inputs to a single solver call.
type Constraint struct {
	kind constraintKind
	a, b int
}

// Length claims exactly n cells
func Length(n int) Constraint {
	return Constraint{kind: kindLength, a: clampNonNegative(n)}
}

// Min claims at least n cells
func Min(n int) Constraint {
	return Constraint{kind: kindMin, a: clampNonNegative(n)}
}

// Max claims whatever remains, capped at n cells
func Max(n int) Constraint {
	return Constraint{kind: kindMax, a: clampNonNegative(n)}
}

// Ratio claims round(length × num/den); a zero denominator claims nothing
func Ratio(num, den int) Constraint {
	return Constraint{kind: kindRatio, a: clampNonNegative(num), b: clampNonNegative(den)}
}

// Percentage claims round(length × n/100)
func Percentage(n int) Constraint {
	return Constraint{kind: kindPercentage, a: clampNonNegative(n)}
}

// Flex claims a weight-proportional share of the space left after all
// other constraints are satisfied
func Flex(weight int) Constraint {
	return Constraint{kind: kindFlex, a: clampNonNegative(weight)}
}

// isFlex reports whether the constraint takes part in flexible
// distribution
func (c Constraint) isFlex() bool {
	return c.kind == kindFlex
}

// String returns a debug representation
func (c Constraint) String() string {
	switch c.kind {
	case kindLength:
		return fmt.Sprintf("Length(%d)", c.a)
	case kindMin:
		return fmt.Sprintf("Min(%d)", c.a)
	case kindMax:
		return fmt.Sprintf("Max(%d)", c.a)
	case kindRatio:
		return fmt.Sprintf("Ratio(%d,%d)", c.a, c.b)
	case kindPercentage:
		return fmt.Sprintf("Percentage(%d)", c.a)
	case kindFlex:
		return fmt.Sprintf("Flex(%d)", c.a)
	}
	return "Constraint(?)"
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
