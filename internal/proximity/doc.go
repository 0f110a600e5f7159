// Package proximity detects sustained closeness between pairs of tracked
// entities.
//
// Samples are aligned by index, not by timestamp: sample i of one track
// is compared with sample i of the other, up to the shorter track. A pair
// is scored once, in dataset iteration order, with the lexicographically
// smaller id first. Whether a scored pair qualifies as a social bond is
// decided by a QualifyPolicy.
//
// The package also finds lion/zebra co-location points (MingleLocations).
package proximity
