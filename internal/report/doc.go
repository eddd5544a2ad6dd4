// Package report writes the two per-run output files — raw diff and
// generated summary — under deterministic names so repeat runs for the
// same project and tags overwrite rather than accumulate.
package report
