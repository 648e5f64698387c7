package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/api"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/mocks"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHealth struct {
	err error
}

func (f *fakeHealth) HealthCheck(ctx context.Context) error {
	return f.err
}

type testRouter struct {
	router   *gin.Engine
	registry *prometheus.Registry
	health   *fakeHealth
	topics   *mocks.MockTopicService
	users    *mocks.MockUserService
	articles *mocks.MockArticleService
	comments *mocks.MockCommentService
}

func setupTestRouter(t *testing.T) *testRouter {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tr := &testRouter{
		registry: prometheus.NewRegistry(),
		health:   &fakeHealth{},
		topics:   mocks.NewMockTopicService(),
		users:    mocks.NewMockUserService(),
		articles: mocks.NewMockArticleService(),
		comments: mocks.NewMockCommentService(),
	}

	services := &service.Services{
		Topic:   tr.topics,
		User:    tr.users,
		Article: tr.articles,
		Comment: tr.comments,
	}

	tr.router = api.NewRouter(services, tr.health, tr.registry, zerolog.Nop())
	return tr
}

func (tr *testRouter) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	tr.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Msg
}

func sampleArticle(id int) *models.Article {
	return &models.Article{
		ArticleID:    id,
		Title:        "Eight pug gifs that remind me of mitch",
		Topic:        "mitch",
		Author:       "icellusedkars",
		Body:         "some gifs",
		CreatedAt:    models.NewTimestamp(time.Date(2020, 11, 3, 9, 12, 0, 0, time.UTC)),
		Votes:        0,
		CommentCount: 2,
	}
}

func TestHealthEndpoint(t *testing.T) {
	tr := setupTestRouter(t)

	w := tr.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "news-api", response["service"])
}

func TestHealthEndpoint_Unhealthy(t *testing.T) {
	tr := setupTestRouter(t)
	tr.health.err = errors.New("connection refused")

	w := tr.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestEndpointsDocument(t *testing.T) {
	tr := setupTestRouter(t)

	w := tr.do(http.MethodGet, "/api", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	for _, key := range []string{
		"GET /api",
		"GET /api/topics",
		"GET /api/users",
		"GET /api/users/:username",
		"GET /api/articles",
		"GET /api/articles/:article_id",
		"PATCH /api/articles/:article_id",
		"GET /api/articles/:article_id/comments",
		"POST /api/articles/:article_id/comments",
		"DELETE /api/comments/:comment_id",
	} {
		assert.Contains(t, body, key)
	}
}

func TestListTopics(t *testing.T) {
	tr := setupTestRouter(t)
	tr.topics.Topics = []*models.Topic{
		{Slug: "mitch", Description: "The man, the Mitch, the legend"},
		{Slug: "cats", Description: "Not dogs"},
	}

	w := tr.do(http.MethodGet, "/api/topics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Topics []models.Topic `json:"topics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Topics, 2)
	assert.Equal(t, "mitch", body.Topics[0].Slug)
}

func TestListUsers_Empty(t *testing.T) {
	tr := setupTestRouter(t)

	w := tr.do(http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"users": []}`, w.Body.String())
}

func TestGetUser(t *testing.T) {
	tr := setupTestRouter(t)
	tr.users.Users = []*models.User{{
		Username:  "rogersop",
		Name:      "paul",
		AvatarURL: "https://avatars2.githubusercontent.com/u/24394918?s=400&v=4",
	}}

	w := tr.do(http.MethodGet, "/api/users/rogersop", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user": {
		"username": "rogersop",
		"name": "paul",
		"avatar_url": "https://avatars2.githubusercontent.com/u/24394918?s=400&v=4"
	}}`, w.Body.String())

	w = tr.do(http.MethodGet, "/api/users/tom", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No user with that username", errorMessage(t, w))
}

func TestGetArticle(t *testing.T) {
	tr := setupTestRouter(t)
	tr.articles.GetFunc = func(ctx context.Context, id int) (*models.Article, error) {
		if id == 3 {
			return sampleArticle(3), nil
		}
		return nil, apperror.ArticleNotFound()
	}

	w := tr.do(http.MethodGet, "/api/articles/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"article": {
		"article_id": 3,
		"title": "Eight pug gifs that remind me of mitch",
		"topic": "mitch",
		"author": "icellusedkars",
		"body": "some gifs",
		"created_at": "2020-11-03T09:12:00.000Z",
		"votes": 0,
		"comment_count": 2
	}}`, w.Body.String())

	w = tr.do(http.MethodGet, "/api/articles/999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No article found with that id", errorMessage(t, w))
}

func TestMalformedIDs(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"get article", http.MethodGet, "/api/articles/not-an-id", ""},
		{"patch article", http.MethodPatch, "/api/articles/1.5", `{"inc_votes": 1}`},
		{"list comments", http.MethodGet, "/api/articles/abc/comments", ""},
		{"post comment", http.MethodPost, "/api/articles/abc/comments", `{"username": "lurker", "body": "hi"}`},
		{"delete comment", http.MethodDelete, "/api/comments/carrots", ""},
		{"overflowing id", http.MethodGet, "/api/articles/99999999999", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := setupTestRouter(t)

			w := tr.do(tt.method, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Bad request", errorMessage(t, w))
			assert.Zero(t, tr.articles.Calls, "validation must short-circuit before the article service")
			assert.Zero(t, tr.comments.Calls, "validation must short-circuit before the comment service")
		})
	}
}

func TestListArticles_QueryValidation(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantMsg    string
		wantQuery  models.ArticleQuery
	}{
		{
			name:       "defaults",
			target:     "/api/articles",
			wantStatus: http.StatusOK,
			wantQuery:  models.ArticleQuery{SortBy: "created_at", Order: "desc"},
		},
		{
			name:       "explicit parameters",
			target:     "/api/articles?sort_by=votes&order=asc&topic=cats",
			wantStatus: http.StatusOK,
			wantQuery:  models.ArticleQuery{SortBy: "votes", Order: "asc", Topic: "cats"},
		},
		{
			name:       "invalid sort column",
			target:     "/api/articles?sort_by=DROP%20TABLE%20articles",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid sort_by - no column with that name",
		},
		{
			name:       "invalid order",
			target:     "/api/articles?order=sideways",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Bad order request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := setupTestRouter(t)

			w := tr.do(http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorMessage(t, w))
				assert.Empty(t, tr.articles.Queries)
				return
			}
			require.Len(t, tr.articles.Queries, 1)
			assert.Equal(t, tt.wantQuery, tr.articles.Queries[0])
			assert.JSONEq(t, `{"articles": []}`, w.Body.String())
		})
	}
}

func TestListArticles_TrailingSlash(t *testing.T) {
	tr := setupTestRouter(t)

	w := tr.do(http.MethodGet, "/api/articles/?topic=paper", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, tr.articles.Queries, 1)
	assert.Equal(t, "paper", tr.articles.Queries[0].Topic)

	w = tr.do(http.MethodGet, "/api/topics/", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListArticles_UnknownTopic(t *testing.T) {
	tr := setupTestRouter(t)
	tr.articles.ListFunc = func(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error) {
		return nil, apperror.UnknownTopic()
	}

	w := tr.do(http.MethodGet, "/api/articles?topic=tom", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No topic with that name", errorMessage(t, w))
}

func TestPatchArticle(t *testing.T) {
	tr := setupTestRouter(t)
	var gotDelta int
	tr.articles.UpdateVotesFunc = func(ctx context.Context, id int, delta int) (*models.Article, error) {
		gotDelta = delta
		article := sampleArticle(id)
		article.Votes = 100 + delta
		return article, nil
	}

	w := tr.do(http.MethodPatch, "/api/articles/1", `{"inc_votes": -60}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -60, gotDelta)

	var body struct {
		Article models.Article `json:"article"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 40, body.Article.Votes)
}

func TestPatchArticle_BodyValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"mistyped value", `{"inc_votes": "cat"}`, "Bad request"},
		{"fractional value", `{"inc_votes": 1.5}`, "Bad request"},
		{"not json", `inc_votes=1`, "Bad request"},
		{"missing key", `{}`, "Invalid request body"},
		{"extra key", `{"inc_votes": 1, "name": "Mitch"}`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := setupTestRouter(t)

			w := tr.do(http.MethodPatch, "/api/articles/1", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, w))
			assert.Zero(t, tr.articles.Calls)
		})
	}
}

func TestListComments(t *testing.T) {
	tr := setupTestRouter(t)
	tr.comments.ListFunc = func(ctx context.Context, articleID int) ([]*models.Comment, error) {
		if articleID != 3 {
			return nil, apperror.ArticleNotFound()
		}
		return []*models.Comment{
			{CommentID: 11, Body: "Ambidextrous marsupial", ArticleID: 3, Author: "icellusedkars"},
			{CommentID: 10, Body: "git push origin master", ArticleID: 3, Author: "icellusedkars"},
		}, nil
	}

	w := tr.do(http.MethodGet, "/api/articles/3/comments", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Comments []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Comments, 2)

	w = tr.do(http.MethodGet, "/api/articles/999/comments", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostComment(t *testing.T) {
	tr := setupTestRouter(t)
	tr.comments.AddFunc = func(ctx context.Context, articleID int, c *models.NewComment) (*models.Comment, error) {
		return &models.Comment{
			CommentID: 19,
			Body:      c.Body,
			ArticleID: articleID,
			Author:    c.Username,
			CreatedAt: models.NewTimestamp(time.Now()),
		}, nil
	}

	w := tr.do(http.MethodPost, "/api/articles/1/comments", `{"username": "rogersop", "body": "An insightful comment"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Comment models.Comment `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 19, body.Comment.CommentID)
	assert.Equal(t, 1, body.Comment.ArticleID)
	assert.Equal(t, "rogersop", body.Comment.Author)
	assert.Zero(t, body.Comment.Votes)
}

func TestPostComment_BodyValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing body", `{"username": "rogersop"}`},
		{"missing username", `{"body": "hello"}`},
		{"extra key", `{"username": "rogersop", "body": "hello", "votes": 10}`},
		{"wrong type", `{"username": 7, "body": "hello"}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := setupTestRouter(t)

			w := tr.do(http.MethodPost, "/api/articles/1/comments", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Bad request", errorMessage(t, w))
			assert.Zero(t, tr.comments.Calls)
		})
	}
}

func TestPostComment_UnknownUser(t *testing.T) {
	tr := setupTestRouter(t)
	tr.comments.AddFunc = func(ctx context.Context, articleID int, c *models.NewComment) (*models.Comment, error) {
		return nil, apperror.UserNotFound()
	}

	w := tr.do(http.MethodPost, "/api/articles/1/comments", `{"username": "tom", "body": "hello"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No user with that username", errorMessage(t, w))
}

func TestDeleteComment(t *testing.T) {
	tr := setupTestRouter(t)
	deleted := map[int]bool{}
	tr.comments.DeleteFunc = func(ctx context.Context, id int) error {
		if id != 1 || deleted[id] {
			return apperror.ArticleNotFound()
		}
		deleted[id] = true
		return nil
	}

	w := tr.do(http.MethodDelete, "/api/comments/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = tr.do(http.MethodDelete, "/api/comments/1", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No article found with that id", errorMessage(t, w))
}

func TestInternalErrorsDoNotLeak(t *testing.T) {
	tr := setupTestRouter(t)
	tr.topics.Err = errors.New(`pq: relation "topics" does not exist`)

	w := tr.do(http.MethodGet, "/api/topics", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", errorMessage(t, w))
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestRouteNotFound(t *testing.T) {
	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/nothing-here"},
		{http.MethodGet, "/not-api"},
		{http.MethodGet, "/api/carrots"},
		{http.MethodGet, "/api/articles/3/"},
		{http.MethodDelete, "/api/users/tom"},
		{http.MethodPut, "/api/articles/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			tr := setupTestRouter(t)

			w := tr.do(tt.method, tt.target, "")
			require.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Route not found", errorMessage(t, w))
		})
	}
}

func TestRequestID(t *testing.T) {
	tr := setupTestRouter(t)

	w := tr.do(http.MethodGet, "/api/topics", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	tr.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSHeaders(t *testing.T) {
	tr := setupTestRouter(t)

	w := tr.do(http.MethodOptions, "/api/articles", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestMetrics(t *testing.T) {
	tr := setupTestRouter(t)

	tr.do(http.MethodGet, "/api/articles?sort_by=nope", "")
	tr.do(http.MethodGet, "/api/articles?sort_by=nope", "")
	tr.do(http.MethodGet, "/api/nothing-here", "")
	tr.do(http.MethodGet, "/api/articles", "")

	expected := `
# HELP news_api_errors_total Total number of error responses by kind
# TYPE news_api_errors_total counter
news_api_errors_total{kind="invalid_sort_column"} 2
news_api_errors_total{kind="route_not_found"} 1
`
	require.NoError(t, testutil.GatherAndCompare(tr.registry, strings.NewReader(expected), "news_api_errors_total"))

	count, err := testutil.GatherAndCount(tr.registry, "news_api_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "one series per method, route and status")

	w := tr.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `news_api_http_requests_total{method="GET",route="/api/articles",status="400"} 2`)
	assert.Contains(t, w.Body.String(), `route="unmatched"`)
}
