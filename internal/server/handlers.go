package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/card-tools-mcp/internal/cards"
	"github.com/ironsheep/card-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "cards_read", "image_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if s.debug {
		log.Printf("[DEBUG] tool %s: err=%v", params.Name, err)
	}
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/cards function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region and Color Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Card Recognition
	case "cards_read":
		return s.handleCardsRead(args)
	case "cards_segment":
		return s.handleCardsSegment(args)
	case "card_classify":
		return s.handleCardClassify(args)
	case "cards_layout_overlay":
		return s.handleCardsLayoutOverlay(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

// handleImageLoad always reads the file again, so a screenshot saved over an
// earlier one at the same path is picked up by every later tool call.
func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Path)
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// loadImage decodes the path argument shared by every image tool.
func (s *Server) loadImage(args json.RawMessage) (image.Image, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.cache.Load(a.Path)
}

// === Region and Color Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Card Recognition Handlers ===

// rect is the JSON form of an image.Rectangle.
type rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func toRect(r image.Rectangle) rect {
	return rect{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

type cardResult struct {
	Code   string `json:"code"`
	Rank   string `json:"rank"`
	Suit   string `json:"suit"`
	Bounds rect   `json:"bounds"`
}

// CardsReadResult is the hand read from a table screenshot.
type CardsReadResult struct {
	Hand  string       `json:"hand"`
	Count int          `json:"count"`
	Cards []cardResult `json:"cards"`
}

func (s *Server) handleCardsRead(args json.RawMessage) (interface{}, error) {
	img, err := s.loadImage(args)
	if err != nil {
		return nil, err
	}
	hand, err := cards.ReadTable(img)
	if err != nil {
		return nil, err
	}

	result := &CardsReadResult{Hand: hand.String(), Count: len(hand), Cards: make([]cardResult, 0, len(hand))}
	for _, c := range hand {
		result.Cards = append(result.Cards, cardResult{
			Code:   c.Code(),
			Rank:   c.Rank,
			Suit:   string(c.Suit),
			Bounds: toRect(c.Bounds),
		})
	}
	return result, nil
}

// CardsSegmentResult describes the table layout and the cards found in it.
type CardsSegmentResult struct {
	Band        rect   `json:"band"`
	PresenceRow int    `json:"presence_row"`
	Slots       []rect `json:"slots"`
	Cards       []rect `json:"cards"`
}

func (s *Server) handleCardsSegment(args json.RawMessage) (interface{}, error) {
	img, err := s.loadImage(args)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	l, err := cards.NewLayout(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	found, err := cards.SegmentRects(img)
	if err != nil {
		return nil, err
	}

	result := &CardsSegmentResult{
		Band:        toRect(image.Rect(l.Left, l.Top, l.Right, l.Top+l.Height)),
		PresenceRow: l.PresenceRow,
		Slots:       []rect{},
		Cards:       []rect{},
	}
	for _, r := range l.Slots() {
		result.Slots = append(result.Slots, toRect(r))
	}
	for _, r := range found {
		result.Cards = append(result.Cards, toRect(r))
	}
	return result, nil
}

type cardClassifyArgs struct {
	Path string `json:"path"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

// CardClassifyResult is a single card reading with its rank density vector.
type CardClassifyResult struct {
	Code   string `json:"code"`
	Rank   string `json:"rank"`
	Suit   string `json:"suit"`
	Vector []int  `json:"vector"`
}

func (s *Server) handleCardClassify(args json.RawMessage) (interface{}, error) {
	var a cardClassifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.X1 != 0 || a.Y1 != 0 || a.X2 != 0 || a.Y2 != 0 {
		r, err := imaging.Region(a.X1, a.Y1, a.X2, a.Y2)
		if err != nil {
			return nil, err
		}
		img, err = imaging.SubImage(img, r)
		if err != nil {
			return nil, err
		}
	}

	v, err := cards.RankVector(img)
	if err != nil {
		return nil, err
	}
	c, err := cards.Classify(img)
	if err != nil {
		return nil, err
	}
	return &CardClassifyResult{
		Code:   c.Code(),
		Rank:   c.Rank,
		Suit:   string(c.Suit),
		Vector: v[:],
	}, nil
}

func (s *Server) handleCardsLayoutOverlay(args json.RawMessage) (interface{}, error) {
	img, err := s.loadImage(args)
	if err != nil {
		return nil, err
	}
	return cards.LayoutOverlay(img)
}
