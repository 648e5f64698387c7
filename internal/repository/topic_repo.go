package repository

import (
	"context"

	"github.com/lib/pq"
	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
)

// topicRepo is the concrete implementation of TopicRepository
type topicRepo struct {
	db *database.DB
}

// NewTopicRepo creates a new topic repository
func NewTopicRepo(db *database.DB) TopicRepository {
	return &topicRepo{db: db}
}

// List returns every topic ordered by slug
func (r *topicRepo) List(ctx context.Context) ([]*models.Topic, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	topics := make([]*models.Topic, 0)
	for rows.Next() {
		var topic models.Topic
		if err := rows.Scan(&topic.Slug, &topic.Description); err != nil {
			return nil, err
		}
		topics = append(topics, &topic)
	}
	return topics, rows.Err()
}

// Exists checks if a topic with the given slug exists
func (r *topicRepo) Exists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM topics WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// BatchInsert inserts multiple topics using PostgreSQL COPY
func (r *topicRepo) BatchInsert(ctx context.Context, topics []*models.Topic) (int, error) {
	if len(topics) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("topics", "slug", "description"))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, topic := range topics {
		if _, err := stmt.ExecContext(ctx, topic.Slug, topic.Description); err != nil {
			return 0, err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(topics), nil
}
