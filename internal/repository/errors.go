package repository

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL error codes the repositories translate
const (
	foreignKeyViolation pq.ErrorCode = "23503"
)

// foreign key constraints on the comments table, as named by PostgreSQL
const (
	commentsArticleFK = "comments_article_id_fkey"
	commentsAuthorFK  = "comments_author_fkey"
)

// violatedForeignKey returns the constraint name when err is a foreign key violation
func violatedForeignKey(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
