// Package app wires application dependencies for the CLI.
//
// It loads Config (defaults, then the YAML file, then CNFT_* environment
// variables), builds the concrete stores, the RPC client and the high-level
// services from it, and exposes them via the Wire struct for commands to use.
package app
