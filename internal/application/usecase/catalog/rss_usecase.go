package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/domain/catalog"
	"github.com/khoahotran/career-path/pkg/logger"
)

const rssItemLimit = 20

type RSSUseCase struct {
	repo      catalog.Repository
	publicURL string
	logger    logger.Logger
}

func NewRSSUseCase(repo catalog.Repository, publicURL string, log logger.Logger) *RSSUseCase {
	return &RSSUseCase{
		repo:      repo,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    log,
	}
}

func (uc *RSSUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	_, span := tracer.Start(ctx, "RSSUseCase.Execute")
	defer span.End()

	uc.logger.Info("Generating updates RSS feed...")

	updates := catalog.FilterUpdates(uc.repo.Updates(), "")
	if len(updates) > rssItemLimit {
		updates = updates[:rssItemLimit]
	}

	feed := &feeds.Feed{
		Title:       "CareerPath - Latest Updates",
		Link:        &feeds.Link{Href: uc.publicURL + "/api/updates"},
		Description: "Scholarships, exams and education news for students.",
		Author:      &feeds.Author{Name: "CareerPath"},
		Created:     time.Now(),
	}
	if len(updates) > 0 {
		feed.Created = updates[0].Date
	}

	items := make([]*feeds.Item, 0, len(updates))
	for _, u := range updates {
		link := u.Link
		if link == "" {
			link = fmt.Sprintf("%s/api/updates#%d", uc.publicURL, u.ID)
		}
		items = append(items, &feeds.Item{
			Id:          fmt.Sprintf("update-%d", u.ID),
			Title:       fmt.Sprintf("[%s] %s", u.Category, u.Title),
			Link:        &feeds.Link{Href: link},
			Description: u.Description,
			Created:     u.Date,
		})
	}
	feed.Items = items

	uc.logger.Info("RSS feed generated successfully", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
