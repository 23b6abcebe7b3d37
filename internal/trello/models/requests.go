// Package models defines the per-tool request variants for trello-mcp.
// Each variant carries the arguments one tool forwards to the Trello API
// and a Validate method that checks required fields are present. JSON tags
// match the Trello wire field names for requests that are marshalled into
// an outgoing body.
package models

import "fmt"

// DefaultLimit is applied to optional "limit" arguments when absent.
const DefaultLimit = 10

// GetCardsByListRequest fetches the cards in one list.
type GetCardsByListRequest struct {
	ListID string `json:"-"`
}

func (r *GetCardsByListRequest) Validate() error {
	if r.ListID == "" {
		return fmt.Errorf("listId is required")
	}
	return nil
}

// RecentActivityRequest fetches the N most recent board actions.
type RecentActivityRequest struct {
	Limit int `json:"-"`
}

func (r *RecentActivityRequest) Validate() error {
	if r.Limit <= 0 {
		return fmt.Errorf("limit must be positive")
	}
	return nil
}

// AddCardRequest creates a card on a list. Optional fields carry omitempty
// so absent arguments never appear in the outgoing body.
type AddCardRequest struct {
	ListID      string   `json:"idList"`
	Name        string   `json:"name"`
	Description string   `json:"desc,omitempty"`
	DueDate     string   `json:"due,omitempty"`
	Labels      []string `json:"idLabels,omitempty"`
}

func (r *AddCardRequest) Validate() error {
	if r.ListID == "" {
		return fmt.Errorf("listId is required")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// UpdateCardRequest patches fields on an existing card. The card ID goes in
// the request path, not the body.
type UpdateCardRequest struct {
	CardID      string   `json:"-"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"desc,omitempty"`
	DueDate     string   `json:"due,omitempty"`
	Labels      []string `json:"idLabels,omitempty"`
}

func (r *UpdateCardRequest) Validate() error {
	if r.CardID == "" {
		return fmt.Errorf("cardId is required")
	}
	return nil
}

// ArchiveCardRequest sets a card closed.
type ArchiveCardRequest struct {
	CardID string `json:"-"`
}

func (r *ArchiveCardRequest) Validate() error {
	if r.CardID == "" {
		return fmt.Errorf("cardId is required")
	}
	return nil
}

// AddListRequest creates a list on the configured board.
type AddListRequest struct {
	Name string `json:"name"`
}

func (r *AddListRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// ArchiveListRequest sets a list closed.
type ArchiveListRequest struct {
	ListID string `json:"-"`
}

func (r *ArchiveListRequest) Validate() error {
	if r.ListID == "" {
		return fmt.Errorf("listId is required")
	}
	return nil
}

// SearchRequest runs a cross-board keyword search for cards.
type SearchRequest struct {
	Query string `json:"-"`
	Limit int    `json:"-"`
}

func (r *SearchRequest) Validate() error {
	if r.Query == "" {
		return fmt.Errorf("query is required")
	}
	return nil
}
