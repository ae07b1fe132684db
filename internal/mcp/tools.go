package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"orbit/internal/gesture"
	"orbit/internal/knowledge"
	"orbit/internal/orbit"
	"orbit/internal/store"
)

const defaultRankLimit = 10

type GetFrameInput struct{}

type RankItemsInput struct {
	Query string `json:"query" jsonschema:"free text to score items against"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum results, default 10"`
}

type SearchItemsInput struct {
	Query string `json:"query" jsonschema:"search terms"`
	Kind  string `json:"kind,omitempty" jsonschema:"restrict to one item kind"`
}

type SendMessageInput struct {
	Text string `json:"text" jsonschema:"the visitor's message"`
}

type SelectItemInput struct {
	ID string `json:"id" jsonschema:"id of the item to select"`
}

type DismissSelectionInput struct{}

type PointerEventInput struct {
	Kind    string  `json:"kind" jsonschema:"down, move, up, cancel or leave"`
	Pointer int     `json:"pointer" jsonschema:"pointer id, stable for one finger or mouse"`
	X       float64 `json:"x" jsonschema:"canvas x in pixels"`
	Y       float64 `json:"y" jsonschema:"canvas y in pixels"`
	AtMS    int64   `json:"at_ms" jsonschema:"milliseconds since the server started"`
	Target  string  `json:"target,omitempty" jsonschema:"id of the tile under the pointer, empty for bare canvas"`
}

type WheelInput struct {
	DeltaY float64 `json:"delta_y" jsonschema:"wheel delta; negative zooms in"`
}

type RankedItemOutput struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type RankItemsOutput struct {
	Results []RankedItemOutput `json:"results"`
}

type SearchResultOutput struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
	Score    float64  `json:"score"`
	Snippet  string   `json:"snippet,omitempty"`
}

type SearchItemsOutput struct {
	Results []SearchResultOutput `json:"results"`
}

type SendMessageOutput struct {
	Reply    string         `json:"reply"`
	Data     map[string]any `json:"data,omitempty"`
	Fallback bool           `json:"fallback"`
	Keywords []string       `json:"keywords"`
	Frame    orbit.Frame    `json:"frame"`
}

type SelectItemOutput struct {
	OpeningMessage string      `json:"opening_message"`
	Frame          orbit.Frame `json:"frame"`
}

type PointerEventOutput struct {
	State string      `json:"state"`
	Frame orbit.Frame `json:"frame"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_frame",
		Description: "Return the current canvas: placed tiles, viewport and intent level",
	}, s.handleGetFrame)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "rank_items",
		Description: "Score every knowledge item against free text",
	}, s.handleRankItems)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_items",
		Description: "Full-text search over the stored knowledge base",
	}, s.handleSearchItems)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "send_message",
		Description: "Send a visitor message to the assistant and update the keyword window",
	}, s.handleSendMessage)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "select_item",
		Description: "Select an item as if its tile were tapped and return the opening message",
	}, s.handleSelectItem)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "dismiss_selection",
		Description: "Clear the selected item",
	}, s.handleDismissSelection)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "pointer_event",
		Description: "Feed one pointer sample to the gesture controller",
	}, s.handlePointerEvent)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "wheel",
		Description: "Apply one mouse wheel step to the zoom",
	}, s.handleWheel)
}

func (s *Server) handleGetFrame(ctx context.Context, req *sdk.CallToolRequest, input GetFrameInput) (*sdk.CallToolResult, orbit.Frame, error) {
	return nil, s.session.Snapshot(), nil
}

func (s *Server) handleRankItems(ctx context.Context, req *sdk.CallToolRequest, input RankItemsInput) (*sdk.CallToolResult, RankItemsOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, RankItemsOutput{}, fmt.Errorf("query is required")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultRankLimit
	}

	ranked := s.session.Rank(input.Query)
	output := make([]RankedItemOutput, 0, min(limit, len(ranked)))
	for _, r := range ranked {
		if len(output) == limit {
			break
		}
		output = append(output, RankedItemOutput{
			ID:    knowledge.ID(r.Item),
			Kind:  string(r.Item.Kind()),
			Label: r.Item.Label(),
			Score: r.Score,
		})
	}
	return nil, RankItemsOutput{Results: output}, nil
}

func (s *Server) handleSearchItems(ctx context.Context, req *sdk.CallToolRequest, input SearchItemsInput) (*sdk.CallToolResult, SearchItemsOutput, error) {
	if input.Query == "" {
		return nil, SearchItemsOutput{}, fmt.Errorf("query is required")
	}
	if s.search == nil {
		return nil, SearchItemsOutput{}, fmt.Errorf("search needs a sqlite:// or postgres:// knowledge source")
	}
	results, err := s.search.Search(ctx, input.Query, input.Kind)
	if err != nil {
		return nil, SearchItemsOutput{}, err
	}

	output := make([]SearchResultOutput, 0, len(results))
	for _, result := range results {
		output = append(output, searchResultOutputFromStore(result))
	}
	return nil, SearchItemsOutput{Results: output}, nil
}

func (s *Server) handleSendMessage(ctx context.Context, req *sdk.CallToolRequest, input SendMessageInput) (*sdk.CallToolResult, SendMessageOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, SendMessageOutput{}, fmt.Errorf("text is required")
	}
	exchange := s.session.Send(ctx, input.Text)
	keywords := exchange.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return nil, SendMessageOutput{
		Reply:    exchange.Reply.Text,
		Data:     exchange.Reply.Data,
		Fallback: exchange.Fallback,
		Keywords: keywords,
		Frame:    s.session.Snapshot(),
	}, nil
}

func (s *Server) handleSelectItem(ctx context.Context, req *sdk.CallToolRequest, input SelectItemInput) (*sdk.CallToolResult, SelectItemOutput, error) {
	if input.ID == "" {
		return nil, SelectItemOutput{}, fmt.Errorf("id is required")
	}
	message, err := s.session.Select(input.ID)
	if err != nil {
		if errors.Is(err, orbit.ErrUnknownItem) {
			return nil, SelectItemOutput{}, fmt.Errorf("item not found: %s", input.ID)
		}
		return nil, SelectItemOutput{}, err
	}
	return nil, SelectItemOutput{OpeningMessage: message, Frame: s.session.Snapshot()}, nil
}

func (s *Server) handleDismissSelection(ctx context.Context, req *sdk.CallToolRequest, input DismissSelectionInput) (*sdk.CallToolResult, orbit.Frame, error) {
	s.session.Dismiss()
	return nil, s.session.Snapshot(), nil
}

func (s *Server) handlePointerEvent(ctx context.Context, req *sdk.CallToolRequest, input PointerEventInput) (*sdk.CallToolResult, PointerEventOutput, error) {
	kind := strings.ToLower(input.Kind)
	if kind == "wheel" {
		return nil, PointerEventOutput{}, fmt.Errorf("use the wheel tool for wheel input")
	}
	script := &gesture.Script{Events: []gesture.ScriptEvent{{
		Kind:    kind,
		Pointer: input.Pointer,
		X:       input.X,
		Y:       input.Y,
		At:      input.AtMS,
		Target:  input.Target,
	}}}
	if err := s.session.Replay(script, s.origin); err != nil {
		return nil, PointerEventOutput{}, err
	}
	return nil, PointerEventOutput{
		State: s.session.GestureState().String(),
		Frame: s.session.Snapshot(),
	}, nil
}

func (s *Server) handleWheel(ctx context.Context, req *sdk.CallToolRequest, input WheelInput) (*sdk.CallToolResult, orbit.Frame, error) {
	s.session.Wheel(input.DeltaY)
	return nil, s.session.Snapshot(), nil
}

func searchResultOutputFromStore(result store.SearchResult) SearchResultOutput {
	keywords := result.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return SearchResultOutput{
		ID:       result.ID,
		Kind:     result.Kind,
		Label:    result.Label,
		Keywords: keywords,
		Score:    result.Score,
		Snippet:  result.Snippet,
	}
}
