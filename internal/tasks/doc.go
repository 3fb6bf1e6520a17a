// Package tasks holds work that must run after a schematic's file changes are
// committed. The schematic only enqueues; the CLI drains the queue with a
// Runner once the tree has been written, so task failures never reach the
// schematic itself.
package tasks
