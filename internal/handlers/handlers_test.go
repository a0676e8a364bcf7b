package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/vibewham/vibe-wham/backend/internal/geo"
	"github.com/vibewham/vibe-wham/backend/internal/middleware"
	"github.com/vibewham/vibe-wham/backend/internal/models"
	"github.com/vibewham/vibe-wham/backend/internal/repositories"
	"github.com/vibewham/vibe-wham/backend/internal/router"
	"github.com/vibewham/vibe-wham/backend/validators"
)

const testUserID = "3f9c5a1e-0000-4000-8000-000000000001"

// newTestServer builds an echo instance wired like production (validator and
// error handler from the real packages) with a stub identity middleware that
// injects a fixed caller id.
func newTestServer(register func(g *echo.Group)) *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = router.HTTPErrorHandler
	g := e.Group("/api/v1", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ContextUserIDKey, testUserID)
			return next(c)
		}
	})
	register(g)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(rec *httptest.ResponseRecorder, out interface{}) error {
	return json.Unmarshal(rec.Body.Bytes(), out)
}

// --- in-memory fakes implementing the repository interfaces ---

type fakePostRepository struct {
	posts map[string]models.Post
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{posts: make(map[string]models.Post)}
}

func (f *fakePostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ReachRadiusM <= 0 {
		return repositories.ErrInvalidReachRadius
	}
	if _, err := geo.NewPoint(post.Latitude, post.Longitude); err != nil {
		return repositories.ErrInvalidCoordinates
	}
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now().UTC()
	post.Location = post.Point().EWKT()
	f.posts[post.ID] = *post
	return nil
}

func (f *fakePostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return &post, nil
}

func (f *fakePostRepository) FindWithinBounds(ctx context.Context, b geo.Bounds) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCommentRepository struct {
	posts    *fakePostRepository
	comments []models.Comment
}

func (f *fakeCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if _, ok := f.posts.posts[comment.PostID]; !ok {
		return repositories.ErrPostNotFound
	}
	if comment.ParentCommentID != nil {
		parent, err := f.GetByID(ctx, *comment.ParentCommentID)
		if err != nil {
			return repositories.ErrParentCommentNotFound
		}
		if parent.PostID != comment.PostID {
			return repositories.ErrParentCommentMismatch
		}
	}
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	for i := range f.comments {
		if f.comments[i].ID == id {
			return &f.comments[i], nil
		}
	}
	return nil, repositories.ErrCommentNotFound
}

func (f *fakeCommentRepository) ListByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type voteKey struct {
	userID, targetType, targetID string
}

type fakeVoteRepository struct {
	votes map[voteKey]models.Vote
}

func newFakeVoteRepository() *fakeVoteRepository {
	return &fakeVoteRepository{votes: make(map[voteKey]models.Vote)}
}

func (f *fakeVoteRepository) Upsert(ctx context.Context, vote *models.Vote) error {
	vote.ID = uuid.NewString()
	vote.CreatedAt = time.Now().UTC()
	f.votes[voteKey{vote.UserID, vote.TargetType, vote.TargetID}] = *vote
	return nil
}

type fakeReportRepository struct {
	reports []models.Report
}

func (f *fakeReportRepository) Create(ctx context.Context, report *models.Report) error {
	report.CreatedAt = time.Now().UTC()
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeReportRepository) ListByTarget(ctx context.Context, targetType, targetID string) ([]models.Report, error) {
	var out []models.Report
	for _, r := range f.reports {
		if r.TargetType == targetType && r.TargetID == targetID {
			out = append(out, r)
		}
	}
	return out, nil
}
