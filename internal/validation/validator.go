package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
)

var idRegex = regexp.MustCompile(`^-?[0-9]+$`)

// incVotesKey is the only key allowed in a PATCH /api/articles/:article_id body
const incVotesKey = "inc_votes"

// Keys of a POST /api/articles/:article_id/comments body, matched case-sensitively
const (
	commentUsernameKey = "username"
	commentBodyKey     = "body"
)

var commentKeys = []string{commentUsernameKey, commentBodyKey}

// Validator checks request parameters before any storage access.
// It holds no per-request state and is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// ID validates a numeric path identifier. Values must be base-10 integers
// that fit the 32-bit storage key.
func (v *Validator) ID(raw string) (int, error) {
	if !idRegex.MatchString(raw) {
		return 0, apperror.BadRequest(fmt.Errorf("id %q is not an integer", raw))
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, apperror.BadRequest(err)
	}
	return int(id), nil
}

// ListQuery validates the article listing parameters. A nil pointer means the
// parameter was absent; defaults apply only then. Topic is passed through
// unchecked, its existence is resolved after querying.
func (v *Validator) ListQuery(sortBy, order, topic *string) (models.ArticleQuery, error) {
	q := models.ArticleQuery{
		SortBy: models.DefaultSortBy,
		Order:  models.DefaultOrder,
	}

	if sortBy != nil {
		if !models.ValidSortColumns[*sortBy] {
			return models.ArticleQuery{}, apperror.InvalidSortColumn()
		}
		q.SortBy = *sortBy
	}

	if order != nil {
		if !models.ValidOrders[*order] {
			return models.ArticleQuery{}, apperror.InvalidOrder()
		}
		q.Order = *order
	}

	if topic != nil {
		q.Topic = *topic
	}

	return q, nil
}

// PatchBody validates an {"inc_votes": n} body and returns n.
// Missing or extra keys are InvalidBody; a non-integer increment is BadRequest.
func (v *Validator) PatchBody(body []byte) (int, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return 0, apperror.BadRequest(err)
	}

	raw, ok := fields[incVotesKey]
	if !ok || len(fields) != 1 {
		return 0, apperror.InvalidBody()
	}

	if string(raw) == "null" {
		return 0, apperror.BadRequest(errors.New("inc_votes is null"))
	}

	var delta int32
	if err := json.Unmarshal(raw, &delta); err != nil {
		return 0, apperror.BadRequest(fmt.Errorf("inc_votes: %w", err))
	}
	return int(delta), nil
}

// CommentBody validates a {"username": ..., "body": ...} body.
// Keys match exactly; missing, extra or mistyped keys are BadRequest.
func (v *Validator) CommentBody(body []byte) (*models.NewComment, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, apperror.BadRequest(err)
	}
	if len(fields) != len(commentKeys) {
		return nil, apperror.BadRequest(fmt.Errorf("comment body has %d keys, want %d", len(fields), len(commentKeys)))
	}

	var comment models.NewComment
	targets := map[string]*string{
		commentUsernameKey: &comment.Username,
		commentBodyKey:     &comment.Body,
	}
	for _, key := range commentKeys {
		raw, ok := fields[key]
		if !ok {
			return nil, apperror.BadRequest(fmt.Errorf("comment body is missing %q", key))
		}
		if err := json.Unmarshal(raw, targets[key]); err != nil {
			return nil, apperror.BadRequest(fmt.Errorf("%s: %w", key, err))
		}
	}

	if err := v.validate.Struct(&comment); err != nil {
		return nil, apperror.BadRequest(err)
	}
	return &comment, nil
}
