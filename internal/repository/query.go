package repository

import (
	"fmt"
	"strings"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
)

// articleSelect selects articles with their comment count. Callers append
// filters and must group by a.article_id.
const articleSelect = `
	SELECT a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes,
		COUNT(c.comment_id)::INT AS comment_count
	FROM articles a
	LEFT JOIN comments c ON c.article_id = a.article_id`

// sortExpressions maps each sortable column to the trusted SQL expression it
// sorts by. Request values never reach the query text; only these do.
var sortExpressions = map[string]string{
	models.SortByCreatedAt:    "a.created_at",
	models.SortByVotes:        "a.votes",
	models.SortByTitle:        "a.title",
	models.SortByTopic:        "a.topic",
	models.SortByAuthor:       "a.author",
	models.SortByArticleID:    "a.article_id",
	models.SortByCommentCount: "comment_count",
}

var orderKeywords = map[string]string{
	models.OrderAsc:  "ASC",
	models.OrderDesc: "DESC",
}

// buildListArticlesQuery renders the listing query for q. Ties are broken by
// article_id ascending so every ordering is deterministic.
func buildListArticlesQuery(q models.ArticleQuery) (string, []interface{}, error) {
	column, ok := sortExpressions[q.SortBy]
	if !ok {
		return "", nil, apperror.InvalidSortColumn()
	}
	direction, ok := orderKeywords[q.Order]
	if !ok {
		return "", nil, apperror.InvalidOrder()
	}

	var sb strings.Builder
	var args []interface{}

	sb.WriteString(articleSelect)
	if q.Topic != "" {
		args = append(args, q.Topic)
		fmt.Fprintf(&sb, "\n\tWHERE a.topic = $%d", len(args))
	}
	sb.WriteString("\n\tGROUP BY a.article_id")
	fmt.Fprintf(&sb, "\n\tORDER BY %s %s", column, direction)
	if column != sortExpressions[models.SortByArticleID] {
		sb.WriteString(", a.article_id ASC")
	}

	return sb.String(), args, nil
}
