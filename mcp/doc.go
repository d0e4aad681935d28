// Package mcp implements the Model Context Protocol surface of llamadocs.
//
// The mcp package provides:
// - JSON-RPC request decoding and response encoding
// - A dispatcher routing MCP methods to the documentation library
// - Tool descriptors for searching and reading documentation
// - An HTTP transport and a stdio transport sharing the same tools
package mcp
