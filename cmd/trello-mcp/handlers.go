package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/trello-mcp/internal/trello/client"
	"github.com/bobmcallan/trello-mcp/internal/trello/common"
	"github.com/bobmcallan/trello-mcp/internal/trello/models"
)

// --- Result envelopes ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// errorResult wraps a failure as a {"error": message} text envelope. Every
// dispatch failure — validation, unknown tool, downstream — goes through
// here; the orchestrator never sees a protocol-level fault.
func errorResult(message string) *mcp.CallToolResult {
	payload, _ := json.Marshal(map[string]string{"error": message})
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(payload)),
		},
		IsError: true,
	}
}

// --- Dispatcher ---

// toolEntry pairs a tool descriptor with its handler, making tool addition
// a table edit rather than new branching logic.
type toolEntry struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

type dispatcher struct {
	logger  *common.Logger
	entries []toolEntry
	byName  map[string]server.ToolHandlerFunc
}

// newDispatcher builds the full tool table. The table is read-only after
// construction; invocations share no mutable state.
func newDispatcher(c *client.Client, logger *common.Logger) *dispatcher {
	d := &dispatcher{
		logger: logger,
		byName: make(map[string]server.ToolHandlerFunc),
	}
	d.entries = []toolEntry{
		{createGetCardsByListTool(), handleGetCardsByList(c)},
		{createGetListsTool(), handleGetLists(c)},
		{createGetRecentActivityTool(), handleGetRecentActivity(c)},
		{createAddCardTool(), handleAddCard(c)},
		{createUpdateCardTool(), handleUpdateCard(c)},
		{createArchiveCardTool(), handleArchiveCard(c)},
		{createAddListTool(), handleAddList(c)},
		{createArchiveListTool(), handleArchiveList(c)},
		{createGetMyCardsTool(), handleGetMyCards(c)},
		{createSearchAllBoardsTool(), handleSearchAllBoards(c)},
	}
	for _, e := range d.entries {
		d.byName[e.tool.Name] = d.wrap(e.tool.Name, e.handler)
	}
	return d
}

// register wires every table entry onto the MCP server in table order.
func (d *dispatcher) register(s *server.MCPServer) {
	for _, e := range d.entries {
		s.AddTool(e.tool, d.byName[e.tool.Name])
	}
}

// invoke dispatches a tool call by name. Unknown names produce an error
// envelope rather than a fault.
func (d *dispatcher) invoke(ctx context.Context, name string, args map[string]interface{}) *mcp.CallToolResult {
	h, ok := d.byName[name]
	if !ok {
		d.logger.Warn().Str("tool", name).Msg("Unknown tool requested")
		return errorResult(fmt.Sprintf("Unknown tool: %s", name))
	}

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	if args != nil {
		request.Params.Arguments = args
	}

	result, err := h(ctx, request)
	if err != nil {
		return errorResult(err.Error())
	}
	return result
}

// wrap adds per-invocation logging with a correlation ID and the uniform
// no-arguments check. Wrapped handlers never return a non-nil error.
func (d *dispatcher) wrap(name string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := d.logger.WithCorrelationId(uuid.NewString())
		logger.Info().Str("tool", name).Msg("Tool call received")

		if request.GetArguments() == nil {
			logger.Warn().Str("tool", name).Msg("Tool call without arguments")
			return errorResult("No arguments provided"), nil
		}

		result, err := h(ctx, request)
		if err != nil {
			logger.Error().Err(err).Str("tool", name).Msg("Tool handler failed")
			return errorResult(err.Error()), nil
		}
		if result.IsError {
			logger.Warn().Str("tool", name).Msg("Tool call returned error envelope")
		}
		return result, nil
	}
}

// --- Handlers ---

func handleGetCardsByList(c *client.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.GetCardsByListRequest{
			ListID: request.GetString("listId", ""),
		}
		if err := req.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}

		body, err := c.CardsByList(ctx, req.ListID)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(body)), nil
	}
}

func handleGetLists(c *client.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := c.Lists(ctx)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(body)), nil
	}
}

func handleGetRecentActivity(c *client.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.RecentActivityRequest{
			Limit: request.GetInt("limit", models.DefaultLimit),
		}
		if err := req.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}

		body, err := c.RecentActivity(ctx, req.Limit)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(body)), nil
	}
}

func handleAddCard(c *client.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.AddCardRequest{
			ListID:      request.GetString("listId", ""),
			Name:        request.GetString("name", ""),
			Description: request.GetString("description", ""),
			DueDate:     request.GetString("dueDate", ""),
			Labels:      request.GetStringSlice("labels", nil),
		}
		if err := req.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}

		body, err := c.AddCard(ctx, req)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(body)), nil
	}
}

func handleUpdateCard(c *client.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.UpdateCardRequest{
			CardID:      request.GetString("cardId", ""),
			Name:        request.GetString("name", ""),
			Description: request.GetString("description", ""),
			DueDate:     request.GetString("dueDate", ""),
			Labels:      request.GetStringSlice("labels", nil),
		}
		if err := req.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}

		body, err := c.UpdateCard(ctx, req)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(body)), nil
	}
}

func handleArchiveCard(c *client.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.ArchiveCardRequest{
			CardID: request.GetString("cardId", ""),
		}
		if err := req.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}

		body, err := c.ArchiveCard(ctx, req.CardID)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(body)), nil
	}
}

func handleAddList(c *client.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.AddListRequest{
			Name: request.GetString("name", ""),
		}
		if err := req.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}

		body, err := c.AddList(ctx, req.Name)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(body)), nil
	}
}

func handleArchiveList(c *client.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.ArchiveListRequest{
			ListID: request.GetString("listId", ""),
		}
		if err := req.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}

		body, err := c.ArchiveList(ctx, req.ListID)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(body)), nil
	}
}

func handleGetMyCards(c *client.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := c.MyCards(ctx)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(body)), nil
	}
}

func handleSearchAllBoards(c *client.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := models.SearchRequest{
			Query: request.GetString("query", ""),
			Limit: request.GetInt("limit", models.DefaultLimit),
		}
		if err := req.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}

		body, err := c.Search(ctx, req.Query, req.Limit)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(body)), nil
	}
}
