// Package cli implements the command-line interface for llamadocs.
//
// The cli package provides:
// - Server commands for the HTTP and stdio transports
// - Catalog listing and search from the terminal
// - Page viewing in a pager or in the browser
// - Flag and environment configuration shared by every command
package cli
