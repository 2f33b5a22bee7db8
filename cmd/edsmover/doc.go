// Package main hosts the edsmover CLI entrypoint and command graph.
//
// Running edsmover with no subcommand starts the scan loop using paths.txt
// from the working directory. Subcommands expose a single pass, a dry-run
// preview, configuration scaffolding, and the optional move journal.
package main
