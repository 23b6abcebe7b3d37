package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bobmcallan/trello-mcp/internal/trello/common"
	"github.com/bobmcallan/trello-mcp/internal/trello/models"
)

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

func testConfig(baseURL string) common.TrelloConfig {
	return common.TrelloConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Token:   "test-token",
		BoardID: "board1",
		Timeout: "5s",
	}
}

func TestClient_AuthParamsOnEveryRequest(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("Expected key=test-key, got %q", got)
		}
		if got := r.URL.Query().Get("token"); got != "test-token" {
			t.Errorf("Expected token=test-token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	if _, err := c.Lists(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := c.AddList(context.Background(), "Doing"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestClient_CardsByList(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/lists/L1/cards" {
			t.Errorf("Expected /lists/L1/cards, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"c1","name":"Task"}]`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	body, err := c.CardsByList(context.Background(), "L1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(body) != `[{"id":"c1","name":"Task"}]` {
		t.Errorf("Body not passed through unchanged: %s", body)
	}
}

func TestClient_Lists_UsesConfiguredBoard(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/boards/board1/lists" {
			t.Errorf("Expected /boards/board1/lists, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	if _, err := c.Lists(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestClient_RecentActivity_ForwardsLimit(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/boards/board1/actions" {
			t.Errorf("Expected /boards/board1/actions, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "3" {
			t.Errorf("Expected limit=3, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	if _, err := c.RecentActivity(context.Background(), 3); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestClient_AddCard_OmitsAbsentOptionalFields(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		raw, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("Request body is not valid JSON: %v", err)
		}
		if body["idList"] != "L1" {
			t.Errorf("Expected idList=L1, got %v", body["idList"])
		}
		if body["name"] != "Task" {
			t.Errorf("Expected name=Task, got %v", body["name"])
		}
		for _, key := range []string{"desc", "due", "idLabels"} {
			if _, present := body[key]; present {
				t.Errorf("Optional field %q should be absent from body", key)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c9","name":"Task"}`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	body, err := c.AddCard(context.Background(), models.AddCardRequest{ListID: "L1", Name: "Task"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(body) != `{"id":"c9","name":"Task"}` {
		t.Errorf("Body not passed through unchanged: %s", body)
	}
}

func TestClient_UpdateCard_PutsToCardPath(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/cards/C1" {
			t.Errorf("Expected /cards/C1, got %s", r.URL.Path)
		}

		raw, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		json.Unmarshal(raw, &body)
		if body["name"] != "Renamed" {
			t.Errorf("Expected name=Renamed, got %v", body["name"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"C1","name":"Renamed"}`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	_, err := c.UpdateCard(context.Background(), models.UpdateCardRequest{CardID: "C1", Name: "Renamed"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestClient_ArchiveCard(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/cards/C1/closed" {
			t.Errorf("Expected /cards/C1/closed, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("value"); got != "true" {
			t.Errorf("Expected value=true, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"C1","closed":true}`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	if _, err := c.ArchiveCard(context.Background(), "C1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestClient_ArchiveList(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lists/L1/closed" {
			t.Errorf("Expected /lists/L1/closed, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("value"); got != "true" {
			t.Errorf("Expected value=true, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"L1","closed":true}`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	if _, err := c.ArchiveList(context.Background(), "L1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestClient_AddList_IncludesBoard(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]string
		json.Unmarshal(raw, &body)
		if body["name"] != "Doing" {
			t.Errorf("Expected name=Doing, got %q", body["name"])
		}
		if body["idBoard"] != "board1" {
			t.Errorf("Expected idBoard=board1, got %q", body["idBoard"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"L2","name":"Doing"}`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	if _, err := c.AddList(context.Background(), "Doing"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestClient_Search_ForwardsQueryAndLimit(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Expected /search, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "deadline" {
			t.Errorf("Expected query=deadline, got %q", got)
		}
		if got := r.URL.Query().Get("cards_limit"); got != "10" {
			t.Errorf("Expected cards_limit=10, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cards":[]}`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	if _, err := c.Search(context.Background(), "deadline", 10); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestClient_MyCards(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/members/me/cards" {
			t.Errorf("Expected /members/me/cards, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	if _, err := c.MyCards(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestClient_ErrorMessageBody(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "board not found"})
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	_, err := c.Lists(context.Background())
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if err.Error() != "board not found" {
		t.Errorf("Expected 'board not found', got %q", err.Error())
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
	}))
	defer mockServer.Close()

	c := New(testConfig(mockServer.URL), testLogger())
	_, err := c.Lists(context.Background())
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}
	expected := "trello returned 500: internal server error"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestClient_ServerUnavailable(t *testing.T) {
	c := New(testConfig("http://localhost:1"), testLogger())
	_, err := c.Lists(context.Background())
	if err == nil {
		t.Fatal("Expected error when server is unavailable")
	}
}

func TestClient_DefaultTimeout(t *testing.T) {
	c := New(common.TrelloConfig{BaseURL: "http://example.com", APIKey: "k", Token: "t", BoardID: "b"}, testLogger())
	if c.httpClient.Timeout.Seconds() != 30 {
		t.Errorf("Expected 30s default timeout, got %v", c.httpClient.Timeout)
	}
}
