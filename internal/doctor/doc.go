// Package doctor runs read-only health checks against a workspace: the
// workspace file and its schema, package.json, and the node and package
// manager binaries the install step relies on.
package doctor
