package repository

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var comment models.Comment
	err := row.Scan(
		&comment.CommentID, &comment.Body, &comment.ArticleID, &comment.Author,
		&comment.Votes, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByArticle returns an article's comments, most recent first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int) ([]*models.Comment, error) {
	query := `
		SELECT comment_id, body, article_id, author, votes, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC, comment_id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// Create inserts a new comment. Storage assigns comment_id, votes and created_at.
// A foreign key violation means the article or user disappeared after the
// caller's existence checks and is reported as NotFound.
func (r *commentRepo) Create(ctx context.Context, articleID int, comment *models.NewComment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (body, article_id, author)
		VALUES ($1, $2, $3)
		RETURNING comment_id, body, article_id, author, votes, created_at
	`
	created, err := scanComment(r.db.QueryRowContext(ctx, query, comment.Body, articleID, comment.Username))
	if constraint, ok := violatedForeignKey(err); ok {
		if constraint == commentsAuthorFK {
			return nil, apperror.UserNotFound()
		}
		return nil, apperror.ArticleNotFound()
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes the comment with the given ID and reports whether a row was deleted
func (r *commentRepo) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE comment_id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// BatchInsert inserts multiple comments using PostgreSQL COPY.
// IDs are assigned by the sequence in input order.
func (r *commentRepo) BatchInsert(ctx context.Context, comments []*models.SeedComment) (int, error) {
	if len(comments) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("comments",
		"body", "article_id", "author", "votes", "created_at",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()

	for _, comment := range comments {
		createdAt := comment.CreatedAt.Time
		if createdAt.IsZero() {
			createdAt = now
		}

		_, err := stmt.ExecContext(ctx,
			comment.Body, comment.ArticleID, comment.Author, comment.Votes, createdAt,
		)
		if err != nil {
			return 0, err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(comments), nil
}
