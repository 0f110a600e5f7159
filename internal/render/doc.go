// Package render draws analysis reports as static PNG figures (gonum/plot)
// and as a self-contained interactive HTML dashboard (go-echarts).
//
// Neither output feeds back into the analyses; a report can be rendered any
// number of times or not at all.
package render
