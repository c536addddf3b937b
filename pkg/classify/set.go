package classify

import (
	"math/bits"

	"github.com/ramparte/amplifier-stories/pkg/markup"
)

// Set is a bitset of node IDs.
type Set struct {
	words []uint64
}

// NewSet returns a set able to hold IDs below n.
func NewSet(n int) *Set {
	return &Set{words: make([]uint64, (n+63)/64)}
}

// Has reports whether id is in the set.
func (s *Set) Has(id markup.NodeID) bool {
	i := int(id) / 64
	return id >= 0 && i < len(s.words) && s.words[i]&(1<<(uint(id)%64)) != 0
}

// Add inserts id.
func (s *Set) Add(id markup.NodeID) {
	i := int(id) / 64
	for i >= len(s.words) {
		s.words = append(s.words, 0)
	}
	s.words[i] |= 1 << (uint(id) % 64)
}

// MarkTree inserts n and every descendant of n.
func (s *Set) MarkTree(n *markup.Node) {
	for id := n.ID(); id < n.End(); id++ {
		s.Add(id)
	}
}

// HasDescendant reports whether any strict descendant of n is in the set.
func (s *Set) HasDescendant(n *markup.Node) bool {
	for id := n.ID() + 1; id < n.End(); id++ {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// Len returns the number of IDs in the set.
func (s *Set) Len() int {
	total := 0
	for _, w := range s.words {
		total += bits.OnesCount64(w)
	}
	return total
}
