package entity

// Book is a catalog entry. ISBN is the identity; two books never share one.
type Book struct {
	ISBN    string   `json:"isbn"`
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Reviews []Review `json:"reviews"`
}

// Review is one user's review of a book. A user holds at most one review
// per book; the review manager enforces that, not the store.
// JSON field names match the legacy books.json document.
type Review struct {
	Username string `json:"username"`
	Review   string `json:"review"`
	Date     string `json:"date"` // ISO-8601, UTC
}
