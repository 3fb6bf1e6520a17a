// Package workspace reads and writes Angular workspace files (angular.json).
// It locates projects, resolves their root and source directories, edits the
// architect target table, and validates the file's structure against an
// embedded JSON Schema. Key order and untouched content survive a round trip.
package workspace
