// Package table loads the convergence-test table written by the DFT input
// generator.
//
// The file is whitespace separated with a single header row. Each data row
// describes one calculation:
//
//	Kpoint Cutoff_(eV/ion) fine_Gmax_(1/A) fine_grid_scale Cutoff_run Kpt_run fGmax_run Total_time_(s) Energy_(eV/ion) Force_(eV/A) Stress_(GPa)
//	4x4x4  200             12.0            2.0             T          F       F         31.2           -107.12         0.0123       0.51
//
// Header names are matched case-insensitively with their unit suffix
// stripped, so "Cutoff_(eV)" and "Cutoff_(eV/ion)" both resolve to
// ColCutoff. The unit is kept for axis and legend labels.
//
// Rows are decoded into the statically typed Row struct once, at load time.
// The k-point grid column is also turned into the derived ColGridSize
// (the product of its "x"-separated segments).
package table
