// Package main hosts the cinelog CLI entrypoint and command graph.
//
// The Cobra-based command tree wires configuration resolution, structured
// logging, and the sync pipeline together: `cinelog sync` runs one diary
// pass, `cinelog config` scaffolds and validates configuration, and
// `cinelog test-notify` exercises the ntfy channel. Subcommands stay thin;
// the behavior lives in the internal packages.
package main
