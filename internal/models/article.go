package models

// Article represents an article together with its live comment count.
// CommentCount is derived from the comments table on every read.
type Article struct {
	ArticleID    int       `json:"article_id" db:"article_id"`
	Title        string    `json:"title" db:"title"`
	Topic        string    `json:"topic" db:"topic"`
	Author       string    `json:"author" db:"author"`
	Body         string    `json:"body" db:"body"`
	CreatedAt    Timestamp `json:"created_at" db:"created_at"`
	Votes        int       `json:"votes" db:"votes"`
	CommentCount int       `json:"comment_count" db:"comment_count"`
}

// Sortable article columns
const (
	SortByCreatedAt    = "created_at"
	SortByVotes        = "votes"
	SortByTitle        = "title"
	SortByTopic        = "topic"
	SortByAuthor       = "author"
	SortByArticleID    = "article_id"
	SortByCommentCount = "comment_count"
)

// Sort directions
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Listing defaults
const (
	DefaultSortBy = SortByCreatedAt
	DefaultOrder  = OrderDesc
)

// ValidSortColumns defines the columns articles may be sorted by
var ValidSortColumns = map[string]bool{
	SortByCreatedAt:    true,
	SortByVotes:        true,
	SortByTitle:        true,
	SortByTopic:        true,
	SortByAuthor:       true,
	SortByArticleID:    true,
	SortByCommentCount: true,
}

// ValidOrders defines the allowed sort directions
var ValidOrders = map[string]bool{
	OrderAsc:  true,
	OrderDesc: true,
}

// ArticleQuery holds validated listing parameters. An empty Topic means no filter.
type ArticleQuery struct {
	SortBy string
	Order  string
	Topic  string
}

// SeedArticle represents an article record from a fixture file
type SeedArticle struct {
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt Timestamp `json:"created_at"`
	Votes     int       `json:"votes"`
}
