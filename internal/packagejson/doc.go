// Package packagejson adds dependency entries to a workspace's package.json.
// Entries are inserted in sorted position within their section, existing
// entries are left alone unless overwrite is requested, and every version pin
// must parse as a semver range.
package packagejson
