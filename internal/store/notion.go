package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/meeting-flow/internal/config"
)

const queryPageSize = 100

// NotionClient implements Store against the Notion REST API.
type NotionClient struct {
	baseURL    string
	token      string
	version    string
	props      config.NotionProperties
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewNotionClient creates a client from the notion config section.
func NewNotionClient(cfg config.NotionConfig) *NotionClient {
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 3
	}
	return &NotionClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		version:    cfg.Version,
		props:      cfg.Properties,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(limit), 1),
	}
}

// CreateRecord creates one page in the database destinationID.
func (c *NotionClient) CreateRecord(ctx context.Context, destinationID string, rec Record) error {
	properties := map[string]notionProperty{
		c.props.Title: {Title: []notionRichText{{Text: &notionText{Content: rec.Title}}}},
		c.props.Status: {Select: &notionSelect{Name: rec.Status}},
	}
	if rec.Assignee != "" {
		properties[c.props.Assignee] = notionProperty{RichText: []notionRichText{{Text: &notionText{Content: rec.Assignee}}}}
	}
	if rec.Role != "" {
		properties[c.props.Role] = notionProperty{RichText: []notionRichText{{Text: &notionText{Content: rec.Role}}}}
	}
	if rec.Priority != "" {
		properties[c.props.Priority] = notionProperty{Select: &notionSelect{Name: rec.Priority}}
	}
	if rec.Deadline != "" {
		properties[c.props.Deadline] = notionProperty{Date: &notionDate{Start: rec.Deadline}}
	}
	confidence := rec.Confidence
	properties[c.props.Confidence] = notionProperty{Number: &confidence}

	req := createPageRequest{
		Parent:     notionParent{Type: "database_id", DatabaseID: destinationID},
		Properties: properties,
	}
	if err := c.do(ctx, http.MethodPost, "/v1/pages", req, nil); err != nil {
		return fmt.Errorf("create page (notion): %w", err)
	}
	return nil
}

// QueryRecords returns the title of every page in the database, following
// pagination.
func (c *NotionClient) QueryRecords(ctx context.Context, destinationID string) ([]string, error) {
	var (
		titles []string
		cursor string
	)
	for {
		var resp queryDatabaseResponse
		req := queryDatabaseRequest{PageSize: queryPageSize, StartCursor: cursor}
		if err := c.do(ctx, http.MethodPost, "/v1/databases/"+destinationID+"/query", req, &resp); err != nil {
			return nil, fmt.Errorf("query database (notion): %w", err)
		}

		for _, page := range resp.Results {
			if t := plainText(page.Properties[c.props.Title].Title); t != "" {
				titles = append(titles, t)
			}
		}

		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			return titles, nil
		}
		cursor = *resp.NextCursor
	}
}

// InspectSchema returns the database's property names and their types.
func (c *NotionClient) InspectSchema(ctx context.Context, destinationID string) (map[string]string, error) {
	var resp databaseResponse
	if err := c.do(ctx, http.MethodGet, "/v1/databases/"+destinationID, nil, &resp); err != nil {
		return nil, fmt.Errorf("retrieve database (notion): %w", err)
	}
	schema := make(map[string]string, len(resp.Properties))
	for name, p := range resp.Properties {
		schema[name] = p.Type
	}
	return schema, nil
}

// RequiredProperties lists the columns CreateRecord writes, with the type
// each must have.
func (c *NotionClient) RequiredProperties() map[string]string {
	return map[string]string{
		c.props.Title:      "title",
		c.props.Assignee:   "rich_text",
		c.props.Role:       "rich_text",
		c.props.Priority:   "select",
		c.props.Deadline:   "date",
		c.props.Confidence: "number",
		c.props.Status:     "select",
	}
}

func (c *NotionClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr notionError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("notion error %d (%s): %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("API error status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func plainText(parts []notionRichText) string {
	var b strings.Builder
	for _, p := range parts {
		switch {
		case p.PlainText != "":
			b.WriteString(p.PlainText)
		case p.Text != nil:
			b.WriteString(p.Text.Content)
		}
	}
	return b.String()
}

var _ Store = (*NotionClient)(nil)
