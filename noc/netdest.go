package noc

import (
	"fmt"
	"strings"
)

const netDestWordBits = 64

// NetDest is a set of terminal IDs. Routing tables store one NetDest
// per output port, listing the terminals reachable through that port.
type NetDest struct {
	words []uint64
}

// NetDestOf creates a NetDest holding the given terminal IDs.
func NetDestOf(terminals ...int) NetDest {
	d := NetDest{}
	for _, t := range terminals {
		d.Add(t)
	}

	return d
}

// Add inserts a terminal ID into the set.
func (d *NetDest) Add(terminal int) {
	if terminal < 0 {
		panic("terminal ID must not be negative")
	}

	word := terminal / netDestWordBits
	for len(d.words) <= word {
		d.words = append(d.words, 0)
	}

	d.words[word] |= 1 << uint(terminal%netDestWordBits)
}

// Contains reports whether the set holds the given terminal ID.
func (d NetDest) Contains(terminal int) bool {
	word := terminal / netDestWordBits
	if word >= len(d.words) {
		return false
	}

	return d.words[word]&(1<<uint(terminal%netDestWordBits)) != 0
}

// IntersectsWith reports whether the two sets share at least one
// terminal.
func (d NetDest) IntersectsWith(other NetDest) bool {
	n := len(d.words)
	if len(other.words) < n {
		n = len(other.words)
	}

	for i := 0; i < n; i++ {
		if d.words[i]&other.words[i] != 0 {
			return true
		}
	}

	return false
}

// IsEmpty reports whether the set holds no terminal.
func (d NetDest) IsEmpty() bool {
	for _, w := range d.words {
		if w != 0 {
			return false
		}
	}

	return true
}

// String lists the terminals in the set.
func (d NetDest) String() string {
	var parts []string

	for w, word := range d.words {
		for b := 0; b < netDestWordBits; b++ {
			if word&(1<<uint(b)) != 0 {
				parts = append(parts,
					fmt.Sprintf("%d", w*netDestWordBits+b))
			}
		}
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
