package store

type notionText struct {
	Content string `json:"content"`
}

type notionRichText struct {
	Text      *notionText `json:"text,omitempty"`
	PlainText string      `json:"plain_text,omitempty"`
}

type notionSelect struct {
	Name string `json:"name"`
}

type notionDate struct {
	Start string `json:"start"`
}

type notionProperty struct {
	Type     string           `json:"type,omitempty"`
	Title    []notionRichText `json:"title,omitempty"`
	RichText []notionRichText `json:"rich_text,omitempty"`
	Select   *notionSelect    `json:"select,omitempty"`
	Date     *notionDate      `json:"date,omitempty"`
	Number   *float64         `json:"number,omitempty"`
}

type notionParent struct {
	Type       string `json:"type"`
	DatabaseID string `json:"database_id"`
}

type createPageRequest struct {
	Parent     notionParent              `json:"parent"`
	Properties map[string]notionProperty `json:"properties"`
}

type queryDatabaseRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type notionPage struct {
	ID         string                    `json:"id"`
	Properties map[string]notionProperty `json:"properties"`
}

type queryDatabaseResponse struct {
	Results    []notionPage `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor *string      `json:"next_cursor"`
}

type databaseResponse struct {
	ID         string                    `json:"id"`
	Properties map[string]notionProperty `json:"properties"`
}

type notionError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
