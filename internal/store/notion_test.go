package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-flow/internal/config"
	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *NotionClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NotionConfig{
		Token:     "secret",
		BaseURL:   srv.URL + "/",
		Version:   config.DefaultNotionVer,
		RateLimit: 1000,
	}
	cfg.Properties = config.NotionProperties{
		Title: "Name", Assignee: "Assignee", Role: "Role", Priority: "Priority",
		Deadline: "Deadline", Confidence: "Confidence ", Status: "Status ",
	}
	return NewNotionClient(cfg)
}

func TestCreateRecord(t *testing.T) {
	var got map[string]interface{}
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/pages", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"object":"page","id":"p1"}`))
	})

	rec := RecordFromTask(models.Task{
		Text: " Send the report ", Assignee: "Sanya", Priority: models.PriorityHigh,
		Deadline: "2025-12-08", Confidence: 0.9,
	})
	require.NoError(t, client.CreateRecord(context.Background(), "db-1", rec))

	parent := got["parent"].(map[string]interface{})
	assert.Equal(t, "db-1", parent["database_id"])

	props := got["properties"].(map[string]interface{})
	assert.Contains(t, props, "Name")
	assert.Contains(t, props, "Assignee")
	assert.NotContains(t, props, "Role")
	assert.Contains(t, props, "Deadline")
	assert.Equal(t, 0.9, props["Confidence "].(map[string]interface{})["number"])
	assert.Equal(t, "To Do", props["Status "].(map[string]interface{})["select"].(map[string]interface{})["name"])

	title := props["Name"].(map[string]interface{})["title"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Send the report", title["text"].(map[string]interface{})["content"])
}

func TestCreateRecordAPIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"object":"error","status":400,"code":"validation_error","message":"Priority is not a property"}`))
	})

	err := client.CreateRecord(context.Background(), "db-1", Record{Title: "x", Status: InitialStatus})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation_error")
	assert.Contains(t, err.Error(), "Priority is not a property")
}

func TestQueryRecordsPaginates(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db-1/query", r.URL.Path)
		var req map[string]interface{}
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &req))
		calls++

		if req["start_cursor"] == nil {
			w.Write([]byte(`{"results":[
				{"id":"a","properties":{"Name":{"type":"title","title":[{"plain_text":"Send "},{"plain_text":"the report"}]}}},
				{"id":"b","properties":{"Name":{"type":"title","title":[]}}}
			],"has_more":true,"next_cursor":"c2"}`))
			return
		}
		assert.Equal(t, "c2", req["start_cursor"])
		w.Write([]byte(`{"results":[{"id":"c","properties":{"Name":{"type":"title","title":[{"plain_text":"Book room"}]}}}],"has_more":false,"next_cursor":null}`))
	})

	titles, err := client.QueryRecords(context.Background(), "db-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Send the report", "Book room"}, titles)
	assert.Equal(t, 2, calls)
}

func TestQueryRecordsError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := client.QueryRecords(context.Background(), "db-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestInspectSchema(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/databases/db-1", r.URL.Path)
		w.Write([]byte(`{"id":"db-1","properties":{"Name":{"type":"title"},"Priority":{"type":"select"}}}`))
	})

	schema, err := client.InspectSchema(context.Background(), "db-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Name": "title", "Priority": "select"}, schema)
	assert.Equal(t, "number", client.RequiredProperties()["Confidence "])
}

func TestRecordFromTask(t *testing.T) {
	rec := RecordFromTask(models.Task{Text: strings.Repeat("é", MaxTitleRunes+5), Deadline: "next Monday"})
	assert.Equal(t, MaxTitleRunes, len([]rune(rec.Title)))
	assert.Empty(t, rec.Deadline)
	assert.Equal(t, "Medium", rec.Priority)
	assert.Equal(t, InitialStatus, rec.Status)
}
