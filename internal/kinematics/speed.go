package kinematics

import (
	"github.com/banshee-data/herd.report/internal/monitoring"
	"github.com/banshee-data/herd.report/internal/track"
)

// Profile is the speed sequence of one entity, in sample order.
type Profile struct {
	EntityID string
	Speeds   []float64
}

// SpeedProfile returns distance/elapsed for every consecutive sample pair
// with strictly positive elapsed time. Tracks without a matching
// timestamp sequence yield nil.
func SpeedProfile(t *track.Track) []float64 {
	if t == nil || !t.HasTimeline() {
		return nil
	}

	var speeds []float64
	for i := 1; i < len(t.Positions); i++ {
		dt := t.Timestamps[i] - t.Timestamps[i-1]
		if dt <= 0 {
			continue
		}
		speeds = append(speeds, t.Positions[i].DistanceTo(t.Positions[i-1])/dt)
	}
	return speeds
}

// ProfileDataset profiles every track in dataset order. Tracks that cannot
// be profiled still get an entry with no speeds.
func ProfileDataset(ds *track.Dataset) []Profile {
	tracks := ds.Tracks()
	out := make([]Profile, 0, len(tracks))
	skipped := 0
	for _, t := range tracks {
		if !t.HasTimeline() && t.Len() > 0 {
			skipped++
		}
		out = append(out, Profile{EntityID: t.ID, Speeds: SpeedProfile(t)})
	}
	if skipped > 0 {
		monitoring.Debugf("kinematics: %d of %d tracks have no usable timeline", skipped, len(tracks))
	}
	return out
}
