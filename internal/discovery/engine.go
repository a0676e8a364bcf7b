package discovery

import (
	"context"
	"errors"
	"sort"

	"github.com/vibewham/vibe-wham/backend/internal/geo"
	"github.com/vibewham/vibe-wham/backend/internal/models"
	"github.com/vibewham/vibe-wham/backend/internal/repositories"
)

// Pagination defaults and bounds for Discover.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrInvalidRadius = errors.New("radius_m must be a positive integer")
	ErrInvalidPage   = errors.New("page must be 1 or greater")
	ErrInvalidLimit  = errors.New("limit must be between 1 and 100")
)

// DiscoveredPost is a post annotated with its great-circle distance from the
// viewer in meters.
type DiscoveredPost struct {
	models.Post
	DistanceM float64 `json:"distance"`
}

// Engine answers proximity-bounded discovery queries. It performs no mutation
// and is safe for arbitrary concurrent use.
type Engine struct {
	posts repositories.PostRepository
}

// NewEngine creates a new discovery Engine
func NewEngine(posts repositories.PostRepository) *Engine {
	return &Engine{posts: posts}
}

// Discover returns the page of posts visible to a viewer at the given
// location. A post is a candidate iff its distance from the viewer is within
// both the post's own reach radius and the caller's query radius (closed
// bound): a post never reaches beyond its declared radius no matter how large
// a radius the viewer asks for. Candidates are ranked by ascending distance,
// ties broken by created_at descending, then paginated with a 1-based page.
func (e *Engine) Discover(ctx context.Context, viewer geo.Point, radiusM, page, limit int) ([]DiscoveredPost, error) {
	if radiusM <= 0 {
		return nil, ErrInvalidRadius
	}
	if page < 1 {
		return nil, ErrInvalidPage
	}
	if limit < 1 || limit > MaxLimit {
		return nil, ErrInvalidLimit
	}

	// Coarse bounding-box prefilter in SQL, exact predicate here. The dual
	// radius rule stays a single auditable comparison instead of two range
	// queries.
	candidates, err := e.posts.FindWithinBounds(ctx, geo.BoundingBox(viewer, float64(radiusM)))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := make([]DiscoveredPost, 0, len(candidates))
	for _, post := range candidates {
		dist := geo.DistanceM(viewer, post.Point())
		maxDist := float64(radiusM)
		if float64(post.ReachRadiusM) < maxDist {
			maxDist = float64(post.ReachRadiusM)
		}
		if dist <= maxDist {
			matched = append(matched, DiscoveredPost{Post: post, DistanceM: dist})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].DistanceM != matched[j].DistanceM {
			return matched[i].DistanceM < matched[j].DistanceM
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	// Bound page before multiplying so an extreme page value cannot
	// overflow the offset.
	lastPage := (len(matched) + limit - 1) / limit
	if page > lastPage {
		return []DiscoveredPost{}, nil
	}
	offset := (page - 1) * limit
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}
