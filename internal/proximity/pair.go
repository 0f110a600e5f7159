package proximity

import "fmt"

// Pair is an unordered pair of distinct entity ids, stored with A < B.
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewPair orders x and y lexicographically.
func NewPair(x, y string) Pair {
	if y < x {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.A, p.B)
}

// PairCount is the number of index-aligned samples a pair spent within
// the distance threshold.
type PairCount struct {
	Pair  Pair `json:"pair"`
	Count int  `json:"count"`
}
