package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// pathOnlySchema is the input schema of tools that take nothing but a path.
func pathOnlySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": pathProperty(),
		},
		"required": []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load (or reload) an image file and return its dimensions, format and file size. Any cached copy is replaced, so later operations see the file as it is now.",
			InputSchema: pathOnlySchema(),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: pathOnlySchema(),
		},

		// Region and Color Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into a card or the table band.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1":   intProperty("Left edge X coordinate (0-based)"),
					"y1":   intProperty("Top edge Y coordinate (0-based)"),
					"x2":   intProperty("Right edge X coordinate (exclusive)"),
					"y2":   intProperty("Bottom edge Y coordinate (exclusive)"),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate, as hex, RGB and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x":    intProperty("X coordinate (0-based, from left)"),
					"y":    intProperty("Y coordinate (0-based, from top)"),
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Card Recognition
		{
			Name:        "cards_read",
			Description: "Read the cards lying on the table of a screenshot, left to right. Returns each card's rank, suit and position plus the concatenated hand (e.g. \"10h10s7d5h\"). Unrecognized ranks read as \"U\".",
			InputSchema: pathOnlySchema(),
		},
		{
			Name:        "cards_segment",
			Description: "Locate the cards of a table screenshot without classifying them. Returns the layout band, the candidate slots and one rectangle per card found.",
			InputSchema: pathOnlySchema(),
		},
		{
			Name:        "card_classify",
			Description: "Classify an image of a single card. Returns rank, suit and the 3x3 ink density vector of the rank glyph, optionally restricted to a region of the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1":   intProperty("Optional card region left edge"),
					"y1":   intProperty("Optional card region top edge"),
					"x2":   intProperty("Optional card region right edge (exclusive)"),
					"y2":   intProperty("Optional card region bottom edge (exclusive)"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cards_layout_overlay",
			Description: "Render the table screenshot with the card band (yellow), presence row (magenta), slots (blue) and detected cards (red) outlined. Returns base64-encoded PNG.",
			InputSchema: pathOnlySchema(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
