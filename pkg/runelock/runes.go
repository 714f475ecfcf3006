package runelock

import "strconv"

// Rune is the label carved into a lock position. The default lock uses a
// four-letter alphabet; labels are fixed at lock definition time and only
// the rune-adjacency rule ever inspects them.
type Rune uint8

// Rune labels of the default lock alphabet.
const (
	RuneZ Rune = iota
	RuneV
	RuneS
	RuneC
)

func (r Rune) String() string {
	switch r {
	case RuneZ:
		return "Z"
	case RuneV:
		return "V"
	case RuneS:
		return "S"
	case RuneC:
		return "C"
	default:
		return strconv.Itoa(int(r))
	}
}
