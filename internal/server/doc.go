// Package server implements the MCP (Model Context Protocol) server for the
// card recognition tools.
//
// This package provides a JSON-RPC 2.0 server that exposes card reading and
// the supporting image inspection tools through the MCP protocol, so a client
// can read a hand from a table screenshot and look into the geometry behind
// the answer.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Region and Color Operations:
//   - image_crop: Extract rectangular region
//   - image_sample_color: Get color at pixel
//
// Card Recognition:
//   - cards_read: Read the hand on a table screenshot
//   - cards_segment: Locate card rectangles without classifying them
//   - card_classify: Classify a single card image
//   - cards_layout_overlay: Draw the slot geometry over the screenshot
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client through "card-tools serve":
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
