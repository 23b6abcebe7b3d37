package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

func createGetCardsByListTool() mcp.Tool {
	return mcp.NewTool("get_cards_by_list",
		mcp.WithDescription("Fetch all cards in a specific list on the board."),
		mcp.WithString("listId", mcp.Required(), mcp.Description("ID of the Trello list")),
	)
}

func createGetListsTool() mcp.Tool {
	return mcp.NewTool("get_lists",
		mcp.WithDescription("Retrieve all lists on the configured board."),
	)
}

func createGetRecentActivityTool() mcp.Tool {
	return mcp.NewTool("get_recent_activity",
		mcp.WithDescription("Fetch recent activity on the board, most recent first."),
		mcp.WithNumber("limit", mcp.Description("Number of activity entries to fetch (default: 10)")),
	)
}

func createAddCardTool() mcp.Tool {
	return mcp.NewTool("add_card",
		mcp.WithDescription("Add a new card to a specified list."),
		mcp.WithString("listId", mcp.Required(), mcp.Description("ID of the list to add the card to")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the card")),
		mcp.WithString("description", mcp.Description("Description of the card")),
		mcp.WithString("dueDate", mcp.Description("Due date for the card (ISO 8601 format)")),
		mcp.WithArray("labels", mcp.WithStringItems(), mcp.Description("Label IDs to apply to the card")),
	)
}

func createUpdateCardTool() mcp.Tool {
	return mcp.NewTool("update_card",
		mcp.WithDescription("Update an existing card's details."),
		mcp.WithString("cardId", mcp.Required(), mcp.Description("ID of the card to update")),
		mcp.WithString("name", mcp.Description("New name for the card")),
		mcp.WithString("description", mcp.Description("New description for the card")),
		mcp.WithString("dueDate", mcp.Description("New due date (ISO 8601 format)")),
		mcp.WithArray("labels", mcp.WithStringItems(), mcp.Description("Label IDs to apply to the card")),
	)
}

func createArchiveCardTool() mcp.Tool {
	return mcp.NewTool("archive_card",
		mcp.WithDescription("Send a card to the archive."),
		mcp.WithString("cardId", mcp.Required(), mcp.Description("ID of the card to archive")),
	)
}

func createAddListTool() mcp.Tool {
	return mcp.NewTool("add_list",
		mcp.WithDescription("Add a new list to the board."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the new list")),
	)
}

func createArchiveListTool() mcp.Tool {
	return mcp.NewTool("archive_list",
		mcp.WithDescription("Send a list to the archive."),
		mcp.WithString("listId", mcp.Required(), mcp.Description("ID of the list to archive")),
	)
}

func createGetMyCardsTool() mcp.Tool {
	return mcp.NewTool("get_my_cards",
		mcp.WithDescription("Fetch all cards assigned to the current user."),
	)
}

func createSearchAllBoardsTool() mcp.Tool {
	return mcp.NewTool("search_all_boards",
		mcp.WithDescription("Search for cards across all boards the user has access to."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query text")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default: 10)")),
	)
}
