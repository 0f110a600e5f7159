package proximity

import (
	"fmt"

	"github.com/banshee-data/herd.report/internal/track"
)

// QualifyPolicy returns the count a scored pair must exceed to qualify.
type QualifyPolicy func(ds *track.Dataset, p Pair) float64

// LastIteratedReference requires more than half the sample count of the
// last entity in dataset iteration order, whatever the pair. It is not
// symmetric in the pair and depends on load order.
func LastIteratedReference(ds *track.Dataset, _ Pair) float64 {
	ids := ds.IDs()
	if len(ids) == 0 {
		return 0
	}
	return 0.5 * float64(ds.Track(ids[len(ids)-1]).Len())
}

// MinLengthReference requires more than half the shorter track.
func MinLengthReference(ds *track.Dataset, p Pair) float64 {
	a, b := pairLengths(ds, p)
	return 0.5 * float64(min(a, b))
}

// MaxLengthReference requires more than half the longer track.
func MaxLengthReference(ds *track.Dataset, p Pair) float64 {
	a, b := pairLengths(ds, p)
	return 0.5 * float64(max(a, b))
}

// MeanLengthReference requires more than half the mean track length.
func MeanLengthReference(ds *track.Dataset, p Pair) float64 {
	a, b := pairLengths(ds, p)
	return 0.25 * float64(a+b)
}

func pairLengths(ds *track.Dataset, p Pair) (int, int) {
	var a, b int
	if t := ds.Track(p.A); t != nil {
		a = t.Len()
	}
	if t := ds.Track(p.B); t != nil {
		b = t.Len()
	}
	return a, b
}

// PolicyByName maps a config name onto a policy. The empty name selects
// LastIteratedReference.
func PolicyByName(name string) (QualifyPolicy, error) {
	switch name {
	case "", "last-iterated":
		return LastIteratedReference, nil
	case "min":
		return MinLengthReference, nil
	case "max":
		return MaxLengthReference, nil
	case "mean":
		return MeanLengthReference, nil
	default:
		return nil, fmt.Errorf("unknown qualify policy %q", name)
	}
}
