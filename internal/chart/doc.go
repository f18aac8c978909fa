// Package chart turns convergence differences into figures.
//
// Build resolves a list of PanelSpec against a table into a Figure: one
// Panel per spec, each holding its plotted lines, tolerance reference lines,
// custom x ticks and the symmetric-log threshold of its y axis. The figure
// is then rendered once, by SavePNG (gonum/plot, stacked panels with a
// legend column) or SaveHTML (go-echarts, one zoomable chart per panel).
//
// PresetFull and PresetBands reproduce the two standard layouts.
package chart
