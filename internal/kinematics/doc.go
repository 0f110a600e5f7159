// Package kinematics turns entity tracks into speed profiles.
//
// Responsibilities: instantaneous speed between consecutive samples,
// the empirical CDF series consumed by the speed plot, and summary
// statistics (mean, spread, percentiles) of a pooled speed sample.
//
// Speeds are in input distance units per input time unit. Consecutive
// samples whose elapsed time is not strictly positive are skipped.
package kinematics
