// Package track owns the entity track store: the normalised, read-only
// in-memory form of a tracking dataset.
//
// Responsibilities: decoding the JSON dataset, coercing every position,
// timestamp and sound-level sample to float64, category classification,
// and ordered access to tracks.
// Key types: Track, Dataset, Position.
//
// Dependency rule: the analysis packages (kinematics, proximity,
// occupancy, acoustic) depend on track; track depends on none of them.
package track
