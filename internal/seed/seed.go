// Package seed loads fixture data into the news schema.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
)

//go:embed data/test/*.json
var testData embed.FS

// Data is a complete fixture set. Comments refer to articles by their
// 1-based position in Articles, which matches the ids the sequence assigns
// after a reset.
type Data struct {
	Topics   []*models.Topic
	Users    []*models.User
	Articles []*models.SeedArticle
	Comments []*models.SeedComment
}

// Resetter empties the schema and restarts its id sequences
type Resetter interface {
	Reset(ctx context.Context) error
}

// TestData returns the embedded fixture set used by tests
func TestData() (*Data, error) {
	sub, err := fs.Sub(testData, "data/test")
	if err != nil {
		return nil, err
	}
	return read(sub)
}

// FromDir reads topics.json, users.json, articles.json and comments.json from dir
func FromDir(dir string) (*Data, error) {
	return read(os.DirFS(dir))
}

func read(fsys fs.FS) (*Data, error) {
	data := &Data{}
	files := []struct {
		name string
		dest interface{}
	}{
		{"topics.json", &data.Topics},
		{"users.json", &data.Users},
		{"articles.json", &data.Articles},
		{"comments.json", &data.Comments},
	}

	for _, f := range files {
		raw, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(raw, f.dest); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.name, err)
		}
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// Validate checks that every reference in the fixture set resolves
func (d *Data) Validate() error {
	topics := make(map[string]bool, len(d.Topics))
	for _, t := range d.Topics {
		if t.Slug == "" {
			return fmt.Errorf("topic with empty slug")
		}
		topics[t.Slug] = true
	}

	users := make(map[string]bool, len(d.Users))
	for _, u := range d.Users {
		if u.Username == "" {
			return fmt.Errorf("user with empty username")
		}
		users[u.Username] = true
	}

	for i, a := range d.Articles {
		if !topics[a.Topic] {
			return fmt.Errorf("article %d: unknown topic %q", i+1, a.Topic)
		}
		if !users[a.Author] {
			return fmt.Errorf("article %d: unknown author %q", i+1, a.Author)
		}
	}

	for i, c := range d.Comments {
		if c.ArticleID < 1 || c.ArticleID > len(d.Articles) {
			return fmt.Errorf("comment %d: unknown article %d", i+1, c.ArticleID)
		}
		if !users[c.Author] {
			return fmt.Errorf("comment %d: unknown author %q", i+1, c.Author)
		}
	}

	return nil
}

// Load resets the schema and inserts data in dependency order. Each table is
// copied in its own transaction, so a failed insert resets the schema again
// and the database is left empty rather than partly loaded.
func Load(ctx context.Context, db Resetter, repos *repository.Repositories, data *Data) error {
	if err := data.Validate(); err != nil {
		return err
	}

	if err := db.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset schema: %w", err)
	}

	if err := insert(ctx, repos, data); err != nil {
		if resetErr := db.Reset(ctx); resetErr != nil {
			return errors.Join(err, fmt.Errorf("failed to clear partial load: %w", resetErr))
		}
		return err
	}

	return nil
}

func insert(ctx context.Context, repos *repository.Repositories, data *Data) error {
	if _, err := repos.Topic.BatchInsert(ctx, data.Topics); err != nil {
		return fmt.Errorf("failed to insert topics: %w", err)
	}
	if _, err := repos.User.BatchInsert(ctx, data.Users); err != nil {
		return fmt.Errorf("failed to insert users: %w", err)
	}
	if _, err := repos.Article.BatchInsert(ctx, data.Articles); err != nil {
		return fmt.Errorf("failed to insert articles: %w", err)
	}
	if _, err := repos.Comment.BatchInsert(ctx, data.Comments); err != nil {
		return fmt.Errorf("failed to insert comments: %w", err)
	}
	return nil
}
