package dto

// JSONSearch is a page of database search results.
type JSONSearch struct {
	Pagination JSONPagination `json:"pagination"`
	Results    []JSONResult   `json:"results"`
}

// JSONPagination describes the result page.
type JSONPagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

// JSONResult is one search hit. Type is "release", "master", "artist" or "label".
type JSONResult struct {
	ID      int      `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Year    string   `json:"year"`
	Country string   `json:"country"`
	Format  []string `json:"format"`
	Label   []string `json:"label"`
	Genre   []string `json:"genre"`
	URI     string   `json:"uri"`
}
