package discovery

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vibewham/vibe-wham/backend/internal/geo"
	"github.com/vibewham/vibe-wham/backend/internal/models"
)

// metersPerDegreeLat converts a north-south offset in meters to degrees on
// the same sphere the engine measures on.
const metersPerDegreeLat = math.Pi * 6371008.8 / 180

type stubPostRepository struct {
	posts []models.Post
	err   error
	ctx   context.Context
}

func (s *stubPostRepository) Create(ctx context.Context, post *models.Post) error {
	s.posts = append(s.posts, *post)
	return nil
}

func (s *stubPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return &s.posts[i], nil
		}
	}
	return nil, errors.New("post not found")
}

func (s *stubPostRepository) FindWithinBounds(ctx context.Context, b geo.Bounds) ([]models.Post, error) {
	s.ctx = ctx
	if s.err != nil {
		return nil, s.err
	}
	// Coarse prefilter contract: any superset of the box contents is valid.
	return s.posts, nil
}

func postAt(id string, lat, lon float64, reachM int, createdAt time.Time) models.Post {
	return models.Post{
		ID:           id,
		AuthorID:     "author-1",
		Title:        "t",
		Body:         "b",
		Latitude:     lat,
		Longitude:    lon,
		ReachRadiusM: reachM,
		CreatedAt:    createdAt,
	}
}

func TestDiscoverMutualIntersectionRule(t *testing.T) {
	origin := geo.Point{Latitude: 31.1234, Longitude: 74.1234}
	now := time.Now()

	repo := &stubPostRepository{posts: []models.Post{
		postAt("at-origin", origin.Latitude, origin.Longitude, 500, now),
	}}
	engine := NewEngine(repo)

	// Viewer at the post location sees it with distance ~0.
	got, err := engine.Discover(context.Background(), origin, 1000, 1, 10)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "at-origin" {
		t.Fatalf("viewer at origin should see the post, got %d results", len(got))
	}
	if got[0].DistanceM > 0.001 {
		t.Errorf("distance = %v, want ~0", got[0].DistanceM)
	}

	// Viewer 600 m away: 500 < 600 < 1000, so the post's own reach radius
	// excludes it even though the query radius would allow it.
	far := geo.Point{Latitude: origin.Latitude + 600/metersPerDegreeLat, Longitude: origin.Longitude}
	got, err = engine.Discover(context.Background(), far, 1000, 1, 10)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("post beyond its reach radius should be invisible, got %d results", len(got))
	}
}

func TestDiscoverQueryRadiusLimits(t *testing.T) {
	origin := geo.Point{Latitude: 31.1234, Longitude: 74.1234}
	// 600 m north of the viewer with a generous reach radius.
	repo := &stubPostRepository{posts: []models.Post{
		postAt("nearby", origin.Latitude+600/metersPerDegreeLat, origin.Longitude, 10000, time.Now()),
	}}
	engine := NewEngine(repo)

	// Query radius 500 < distance 600: excluded by the viewer's own radius.
	got, err := engine.Discover(context.Background(), origin, 500, 1, 10)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("post outside the query radius should be invisible, got %d results", len(got))
	}

	// Query radius 700 > distance 600: visible.
	got, err = engine.Discover(context.Background(), origin, 700, 1, 10)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("post inside both radii should be visible, got %d results", len(got))
	}
	if math.Abs(got[0].DistanceM-600) > 1 {
		t.Errorf("distance = %v, want ~600", got[0].DistanceM)
	}
}

func TestDiscoverRankingAndTieBreak(t *testing.T) {
	origin := geo.Point{Latitude: 0, Longitude: 0}
	now := time.Now()

	repo := &stubPostRepository{posts: []models.Post{
		postAt("far", 2000/metersPerDegreeLat, 0, 100000, now),
		postAt("near-old", 1000/metersPerDegreeLat, 0, 100000, now.Add(-time.Hour)),
		postAt("near-new", 1000/metersPerDegreeLat, 0, 100000, now),
	}}
	engine := NewEngine(repo)

	got, err := engine.Discover(context.Background(), origin, 5000, 1, 10)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	// Ascending distance, ties broken by created_at descending.
	if got[0].ID != "near-new" || got[1].ID != "near-old" || got[2].ID != "far" {
		t.Errorf("order = [%s %s %s], want [near-new near-old far]", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestDiscoverPaginationPartitions(t *testing.T) {
	origin := geo.Point{Latitude: 0, Longitude: 0}
	now := time.Now()

	repo := &stubPostRepository{}
	for i := 0; i < 7; i++ {
		repo.posts = append(repo.posts,
			postAt(string(rune('a'+i)), float64(100*(i+1))/metersPerDegreeLat, 0, 100000, now))
	}
	engine := NewEngine(repo)

	var all []string
	for page := 1; page <= 3; page++ {
		got, err := engine.Discover(context.Background(), origin, 5000, page, 3)
		if err != nil {
			t.Fatalf("page %d returned error: %v", page, err)
		}
		for _, p := range got {
			all = append(all, p.ID)
		}
	}

	want := []string{"a", "b", "c", "d", "e", "f", "g"}
	if len(all) != len(want) {
		t.Fatalf("pages concatenate to %d results, want %d", len(all), len(want))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("position %d = %s, want %s", i, all[i], want[i])
		}
	}

	// A page past the end is empty, not an error.
	got, err := engine.Discover(context.Background(), origin, 5000, 4, 3)
	if err != nil {
		t.Fatalf("page past the end returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("page past the end has %d results, want 0", len(got))
	}
}

func TestDiscoverHugePageIsEmpty(t *testing.T) {
	origin := geo.Point{Latitude: 0, Longitude: 0}
	repo := &stubPostRepository{posts: []models.Post{
		postAt("p", 0, 0, 100000, time.Now()),
	}}
	engine := NewEngine(repo)

	// Page values large enough that (page-1)*limit would wrap around must
	// behave like any other page past the end.
	for _, page := range []int{math.MaxInt, math.MaxInt/3 + 2, math.MaxInt/4 + 1} {
		got, err := engine.Discover(context.Background(), origin, 5000, page, 3)
		if err != nil {
			t.Fatalf("page %d returned error: %v", page, err)
		}
		if len(got) != 0 {
			t.Errorf("page %d has %d results, want 0", page, len(got))
		}
	}
}

func TestDiscoverParameterValidation(t *testing.T) {
	engine := NewEngine(&stubPostRepository{})
	origin := geo.Point{}

	cases := []struct {
		name                string
		radius, page, limit int
		want                error
	}{
		{"zero radius", 0, 1, 10, ErrInvalidRadius},
		{"negative radius", -5, 1, 10, ErrInvalidRadius},
		{"zero page", 100, 0, 10, ErrInvalidPage},
		{"zero limit", 100, 1, 0, ErrInvalidLimit},
		{"limit over max", 100, 1, 101, ErrInvalidLimit},
	}
	for _, tc := range cases {
		if _, err := engine.Discover(context.Background(), origin, tc.radius, tc.page, tc.limit); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	// Bounds are inclusive.
	if _, err := engine.Discover(context.Background(), origin, 100, 1, 100); err != nil {
		t.Errorf("limit 100 rejected: %v", err)
	}
}

func TestDiscoverPropagatesContextAndErrors(t *testing.T) {
	repo := &stubPostRepository{err: context.DeadlineExceeded}
	engine := NewEngine(repo)

	_, err := engine.Discover(context.Background(), geo.Point{}, 100, 1, 10)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("store timeout not propagated: %v", err)
	}

	repo = &stubPostRepository{posts: []models.Post{postAt("p", 0, 0, 100, time.Now())}}
	engine = NewEngine(repo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := engine.Discover(ctx, geo.Point{}, 100, 1, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context not surfaced: %v", err)
	}
	if repo.ctx == nil {
		t.Error("query context was not passed to the store")
	}
}
