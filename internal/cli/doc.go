// Package cli defines the Cobra command tree for the ngtron CLI. Each file
// registers one top-level command with the root command. Commands parse flags,
// format output, and delegate the work to the internal packages.
package cli
