// Package runelock provides a justification-maintained constraint solver
// for a twelve-slot permutation lock. This file defines ring positions and
// the geometric relations between them.
//
// The lock consists of two concentric rings of six runes each. Positions
// 0-5 address the outer ring and 6-11 the inner ring, both clockwise. All
// relations below are pure, total functions of the two position indices;
// their exact combinatorial structure is pinned down by exhaustive 12x12
// truth tables in position_test.go.
package runelock

import (
	"fmt"
	"strconv"
)

// RingSize is the number of positions (and activations) on the lock.
const RingSize = 12

// halfSize is the length of one ring; positions p and p+halfSize occupy
// the same angle on the outer and inner ring respectively.
const halfSize = RingSize / 2

// Position identifies one of the twelve rune slots on the lock.
// Positions 0-5 lie on the outer ring, 6-11 on the inner ring.
type Position int

// santorTable assigns every position its santor weight. Both elements of
// the vertical sector carry a higher santor than the elements in the side
// sectors, which holds as long as the rings are equally spaced.
var santorTable = [RingSize]int{
	// Outer ring
	7, 5, 2, 0, 2, 5,
	// Inner ring
	6, 4, 3, 1, 3, 4,
}

// maxSantor and minSantor are the extremes of santorTable, used by the
// santor-ordering rule to detect unfulfillable placements.
var maxSantor, minSantor = func() (int, int) {
	max, min := santorTable[0], santorTable[0]
	for _, s := range santorTable[1:] {
		if s > max {
			max = s
		}
		if s < min {
			min = s
		}
	}
	return max, min
}()

// ParsePosition validates a raw index from the boundary and converts it
// into a Position. Indices outside [0, RingSize) are rejected.
func ParsePosition(index int) (Position, error) {
	if index < 0 || index >= RingSize {
		return 0, fmt.Errorf("position %d is out of bounds [0, %d)", index, RingSize)
	}
	return Position(index), nil
}

// Ring returns 0 for outer-ring positions and 1 for inner-ring positions.
func (p Position) Ring() int {
	if p < halfSize {
		return 0
	}
	return 1
}

// AntakianConjugate returns the position directly opposite p on its own
// ring (three steps around the 6-cycle).
func (p Position) AntakianConjugate() Position {
	if p < halfSize {
		return (p + 3) % halfSize
	}
	return (p+3)%halfSize + halfSize
}

// AntakianConjugateOf reports whether p and other sit opposite each other
// on the same ring: they must be antakian twins and alwanese conjugates.
func (p Position) AntakianConjugateOf(other Position) bool {
	return p.AntakianTwinOf(other) && p.AlwaneseConjugateOf(other)
}

// AlwaneseOf reports whether p follows other within two steps of clockwise
// ring distance, ignoring which ring either position is on. The relation
// is directional: AlwaneseOf(p, other) does not imply AlwaneseOf(other, p).
func (p Position) AlwaneseOf(other Position) bool {
	distance := (RingSize + int(p) - int(other)) % halfSize
	return distance > 0 && distance <= 2
}

// AlwaneseConjugateOf reports whether p and other occupy opposite angles,
// ring membership ignored.
func (p Position) AlwaneseConjugateOf(other Position) bool {
	return int(p)%halfSize == (int(other)+3)%halfSize
}

// AntakianTwinOf reports whether p and other lie on the same ring.
func (p Position) AntakianTwinOf(other Position) bool {
	return (p < halfSize) == (other < halfSize)
}

// Santor returns the santor weight of p.
func (p Position) Santor() int {
	return santorTable[p]
}

// IncreasesSantorTo reports whether other has a strictly larger santor
// weight than p.
func (p Position) IncreasesSantorTo(other Position) bool {
	return p.Santor() < other.Santor()
}

// Max0ConductiveWith reports whether p and other are adjacent under the
// doubled-ring connectivity: neighbours along their shared ring, or the
// same angle across the two rings.
func (p Position) Max0ConductiveWith(other Position) bool {
	if p.AntakianTwinOf(other) {
		return (int(p)+1)%halfSize == int(other)%halfSize ||
			(int(other)+1)%halfSize == int(p)%halfSize
	}
	return (int(p)+halfSize)%RingSize == int(other)
}

// Index returns the raw array index of p.
func (p Position) Index() int {
	return int(p)
}

func (p Position) String() string {
	return strconv.Itoa(int(p))
}
