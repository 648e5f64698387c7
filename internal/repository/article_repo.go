package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	err := row.Scan(
		&article.ArticleID, &article.Title, &article.Topic, &article.Author, &article.Body,
		&article.CreatedAt, &article.Votes, &article.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// List retrieves articles with comment counts, filtered and sorted per q
func (r *articleRepo) List(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error) {
	query, args, err := buildListArticlesQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// GetByID retrieves an article by ID, returning nil when absent
func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.Article, error) {
	query := articleSelect + `
	WHERE a.article_id = $1
	GROUP BY a.article_id`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)", id).Scan(&exists)
	return exists, err
}

// IncrementVotes adds delta to the article's votes in a single statement and
// returns the updated article, or nil when no article has that ID.
// The increment is applied by PostgreSQL, so concurrent calls never lose an update.
func (r *articleRepo) IncrementVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	query := `
	WITH updated AS (
		UPDATE articles SET votes = votes + $1
		WHERE article_id = $2
		RETURNING article_id, title, topic, author, body, created_at, votes
	)
	SELECT u.article_id, u.title, u.topic, u.author, u.body, u.created_at, u.votes,
		(SELECT COUNT(*)::INT FROM comments c WHERE c.article_id = u.article_id) AS comment_count
	FROM updated u`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, delta, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// BatchInsert inserts multiple articles using PostgreSQL COPY.
// IDs are assigned by the sequence in input order.
func (r *articleRepo) BatchInsert(ctx context.Context, articles []*models.SeedArticle) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("articles",
		"title", "topic", "author", "body", "created_at", "votes",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()

	for _, article := range articles {
		createdAt := article.CreatedAt.Time
		if createdAt.IsZero() {
			createdAt = now
		}

		_, err := stmt.ExecContext(ctx,
			article.Title, article.Topic, article.Author, article.Body,
			createdAt, article.Votes,
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

	return len(articles), nil
}
