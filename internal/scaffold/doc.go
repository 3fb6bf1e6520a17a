// Package scaffold materializes the static files a project needs to run inside
// an Electron shell. Files are embedded in the binary and copied verbatim,
// only when the target path is still free.
package scaffold
