package layout

import (
	"github.com/lixenwraith/termcore/render"
)

// Direction selects the axis a split runs along
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

// Alignment is the distribution policy for leftover space when the
// constraints demand less than the available length. It repositions
// already-sized regions; sizes never change.
//
// AlignLegacy, the default, keeps the historical behavior: leftover
// space is absorbed by the final flexible entry, or the final entry
// when none is flexible, so the regions always tile the full length.
type Alignment uint8

const (
	AlignLegacy Alignment = iota
	AlignStart
	AlignEnd
	AlignCenter
	AlignSpaceBetween
	AlignSpaceAround
	AlignSpaceEvenly
)

// SplitLengths partitions length into one sub-length per constraint
// with the legacy alignment policy, so the results always sum to
// exactly length regardless of over- or under-subscription. A nil or
// empty constraint list yields no regions.
func SplitLengths(length int, cons []Constraint) []int {
	if len(cons) == 0 {
		return nil
	}
	sizes := resolve(length, cons)
	absorbLeftover(length, sizes, cons)
	return sizes
}

// Split partitions area along dir into one sub-rect per constraint.
// The cross-axis extent of every sub-rect matches the input area.
func Split(area render.Rect, dir Direction, cons []Constraint, align Alignment) []render.Rect {
	if len(cons) == 0 {
		return nil
	}

	length := area.Width
	if dir == Vertical {
		length = area.Height
	}

	sizes := resolve(length, cons)
	if align == AlignLegacy {
		absorbLeftover(length, sizes, cons)
	}
	starts := positions(length, sizes, align)

	rects := make([]render.Rect, len(cons))
	for i := range cons {
		if dir == Horizontal {
			rects[i] = render.Rect{
				X:      area.X + starts[i],
				Y:      area.Y,
				Width:  sizes[i],
				Height: area.Height,
			}
		} else {
			rects[i] = render.Rect{
				X:      area.X,
				Y:      area.Y + starts[i],
				Width:  area.Width,
				Height: sizes[i],
			}
		}
	}
	return rects
}

// resolve computes one size per constraint. Resolution order: Length,
// Min, Max, then Percentage and Ratio against the original length,
// then weight-proportional flexible distribution of whatever remains.
// Over-subscription zeroes the flexible entries first, then scales the
// fixed claims proportionally with an exact-sum accumulation; nothing
// ever goes negative.
func resolve(length int, cons []Constraint) []int {
	n := len(cons)
	claims := make([]int, n)
	if length < 0 {
		length = 0
	}

	claimed := 0

	// Fixed lengths and minimums
	for i, c := range cons {
		if c.kind == kindLength || c.kind == kindMin {
			claims[i] = c.a
			claimed += c.a
		}
	}

	// Maximums cap their own share at what is still unclaimed
	for i, c := range cons {
		if c.kind == kindMax {
			avail := length - claimed
			if avail < 0 {
				avail = 0
			}
			claims[i] = min(c.a, avail)
			claimed += claims[i]
		}
	}

	// Percentages and ratios claim against the original length
	for i, c := range cons {
		switch c.kind {
		case kindPercentage:
			claims[i] = roundDiv(length*c.a, 100)
		case kindRatio:
			if c.b > 0 {
				claims[i] = roundDiv(length*c.a, c.b)
			}
		default:
			continue
		}
		claimed += claims[i]
	}

	if claimed > length {
		// Over-subscribed: flexible entries stay at zero and the fixed
		// claims shrink proportionally. The running-total scaling keeps
		// the sum exact despite integer division.
		acc := 0
		scaledAcc := 0
		for i, c := range cons {
			if c.isFlex() {
				continue
			}
			acc += claims[i]
			scaled := acc * length / claimed
			claims[i] = scaled - scaledAcc
			scaledAcc = scaled
		}
		return claims
	}

	// Flexible distribution of the remainder, final entry takes the
	// integer rounding slack
	remaining := length - claimed
	totalWeight := 0
	lastFlex := -1
	for i, c := range cons {
		if c.isFlex() {
			totalWeight += c.a
			lastFlex = i
		}
	}
	if lastFlex >= 0 && totalWeight > 0 {
		given := 0
		for i, c := range cons {
			if !c.isFlex() || i == lastFlex {
				continue
			}
			share := remaining * c.a / totalWeight
			claims[i] = share
			given += share
		}
		claims[lastFlex] = remaining - given
	}

	return claims
}

// absorbLeftover implements the legacy policy: any length not claimed
// goes to the last flexible entry, or the last entry outright, keeping
// the partition exact.
func absorbLeftover(length int, sizes []int, cons []Constraint) {
	used := 0
	for _, s := range sizes {
		used += s
	}
	leftover := length - used
	if leftover <= 0 {
		return
	}
	target := len(sizes) - 1
	for i, c := range cons {
		if c.isFlex() {
			target = i
		}
	}
	sizes[target] += leftover
}

// positions computes each region's start offset for the given
// alignment. Legacy/Start pack from the front; the space-distributing
// modes spread the leftover deterministically with integer arithmetic.
func positions(length int, sizes []int, align Alignment) []int {
	n := len(sizes)
	starts := make([]int, n)

	used := 0
	for _, s := range sizes {
		used += s
	}
	leftover := length - used
	if leftover < 0 {
		leftover = 0
	}

	pos := 0
	for i := range sizes {
		var pad int
		switch align {
		case AlignEnd:
			if i == 0 {
				pad = leftover
			}
		case AlignCenter:
			if i == 0 {
				pad = leftover / 2
			}
		case AlignSpaceBetween:
			if i > 0 && n > 1 {
				// Cumulative gaps keep rounding drift bounded to one cell
				pad = leftover*i/(n-1) - leftover*(i-1)/(n-1)
			}
		case AlignSpaceAround:
			pad = around(leftover, i, n) - aroundPrev(leftover, i, n)
		case AlignSpaceEvenly:
			pad = leftover*(i+1)/(n+1) - leftover*i/(n+1)
		}
		pos += pad
		starts[i] = pos
		pos += sizes[i]
	}
	return starts
}

// around returns the cumulative space before region i under
// SpaceAround: half a gap at each edge, full gaps between regions.
func around(leftover, i, n int) int {
	return leftover * (2*i + 1) / (2 * n)
}

func aroundPrev(leftover, i, n int) int {
	if i == 0 {
		return 0
	}
	return leftover * (2*i - 1) / (2 * n)
}

// roundDiv divides rounding half away from zero; inputs are
// non-negative here
func roundDiv(num, den int) int {
	if den == 0 {
		return 0
	}
	return (num + den/2) / den
}
