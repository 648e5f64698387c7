package models

// Comment represents a comment on an article
type Comment struct {
	CommentID int       `json:"comment_id" db:"comment_id"`
	Body      string    `json:"body" db:"body"`
	ArticleID int       `json:"article_id" db:"article_id"`
	Author    string    `json:"author" db:"author"`
	Votes     int       `json:"votes" db:"votes"`
	CreatedAt Timestamp `json:"created_at" db:"created_at"`
}

// NewComment is a validated request to post a comment
type NewComment struct {
	Username string `json:"username" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

// SeedComment represents a comment record from a fixture file
type SeedComment struct {
	Body      string    `json:"body"`
	ArticleID int       `json:"article_id"`
	Author    string    `json:"author"`
	Votes     int       `json:"votes"`
	CreatedAt Timestamp `json:"created_at"`
}
