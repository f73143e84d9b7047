package feed

import (
	"context"

	"go.uber.org/zap"

	"github.com/ripple-social/ripple/internal/db"
	"github.com/ripple-social/ripple/internal/models"
	"github.com/ripple-social/ripple/pkg/logging"
)

// Service assembles a viewer's feed: the time-ordered union of the
// viewer's own published posts and those of followed authors, each
// enriched with read-time engagement.
type Service struct {
	feed       *db.FeedRepository
	engagement *db.EngagementRepository
	logger     *zap.Logger
}

// NewService creates a new feed service
func NewService(repo *db.Repository) *Service {
	return &Service{
		feed:       db.NewFeedRepository(repo),
		engagement: db.NewEngagementRepository(repo),
		logger:     logging.WithComponent("feed"),
	}
}

// Page is one feed page. HasMore is a heuristic: true iff the page came
// back exactly full. It can misreport at exact boundary counts and is
// documented as non-guaranteed.
type Page struct {
	Posts   []*models.EnrichedPost `json:"posts"`
	HasMore bool                   `json:"has_more"`
}

// GetFeed retrieves one page of the viewer's feed with engagement
// values computed in the same read.
func (s *Service) GetFeed(ctx context.Context, viewerID int64, limit, offset int) (*Page, error) {
	rows, err := s.feed.Page(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}

	if len(rows) > 0 {
		ids := make([]int64, len(rows))
		for i, row := range rows {
			ids[i] = row.ID
		}
		engs, err := s.engagement.ForPosts(ctx, ids, &viewerID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			e := engs[row.ID]
			row.LikesCount = e.LikesCount
			row.CommentsCount = e.CommentsCount
			row.LikedByViewer = e.LikedByViewer
		}
	}

	if rows == nil {
		rows = []*models.EnrichedPost{}
	}

	return &Page{
		Posts:   rows,
		HasMore: len(rows) == limit && len(rows) > 0,
	}, nil
}
