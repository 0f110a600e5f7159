// Package trackdb archives loaded track datasets in SQLite so repeated
// analysis runs can skip JSON parsing.
//
// The archive holds the raw input only: entity ids in load order,
// categories, positions, timestamps and sound levels. Each Import replaces
// the archived dataset and records a row in the imports table. Schema
// changes are applied with golang-migrate from the embedded migrations/
// directory.
package trackdb
