// Package converge computes convergence differences and symmetric-log
// scale thresholds for the convergence table.
//
// A Sweep names the column held fixed within a group, the column being
// converged, an optional run flag selecting the rows that belong to the
// sweep, and the observables to difference. DifferenceGroups partitions the
// table accordingly and differences every row against the group's
// reference row: the one with the largest swept value.
//
// SymlogThreshold picks the linear threshold of a symmetric-log axis one
// decade below the smallest meaningful magnitude, and PanelThreshold folds
// the thresholds of every series drawn on one panel.
package converge
