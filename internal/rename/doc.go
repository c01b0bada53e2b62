// Package rename turns a reviewed batch into filesystem moves.
//
// A Planner computes every target name up front, resolving collisions
// against the output folder and within the batch itself, so the whole
// rename can be previewed before a single file moves. An Executor then
// applies the plan under a folder lock and appends each move to a CSV
// audit log.
package rename
