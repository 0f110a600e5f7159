// Package aggregate runs every analysis over a loaded dataset and flattens
// the per-entity results into corpus-wide collections for reporting and
// rendering.
//
// Aggregation is concatenation and filtering only: pooled speeds keep
// dataset order then sample order, proximity pairs keep scoring order and
// transients keep dataset order then index order.
package aggregate
