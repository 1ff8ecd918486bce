// Package report renders sweeps and ensemble summaries as a terminal table,
// CSV, JSON or YAML.
//
// CSV is the interchange format for sweeps: the header is
// q,components,largest_cluster,nsc and floats are printed in the shortest
// form that round-trips. Ensemble CSV lists the averaged curve.
package report
