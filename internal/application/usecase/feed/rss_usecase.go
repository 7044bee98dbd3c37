package feed

import (
	"context"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// Source is whatever holds the live document.
type Source interface {
	Document() *portfolio.Document
}

type RSSUseCase struct {
	source  Source
	baseURL string
	logger  logger.Logger
	now     func() time.Time
}

func NewRSSUseCase(source Source, baseURL string, log logger.Logger) *RSSUseCase {
	return &RSSUseCase{
		source:  source,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  log,
		now:     time.Now,
	}
}

// Execute builds a feed of the visible projects, featured ones first.
func (uc *RSSUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	doc := uc.source.Document()
	now := uc.now()

	title := doc.Settings.SEOTitle
	if title == "" {
		title = doc.Profile.Name + " - Projects"
	}
	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: uc.baseURL},
		Description: doc.Settings.SEODescription,
		Author:      &feeds.Author{Name: doc.Profile.Name, Email: doc.Profile.Email},
		Created:     now,
	}

	visible := doc.VisibleProjects()
	items := make([]*feeds.Item, 0, len(visible))
	for _, featured := range []bool{true, false} {
		for _, p := range visible {
			if p.IsFeatured != featured {
				continue
			}
			link := p.Link
			if link == "" || link == "#" {
				link = uc.baseURL + "/#projects"
			}
			items = append(items, &feeds.Item{
				Id:          p.ID,
				Title:       p.Title,
				Link:        &feeds.Link{Href: link},
				Description: p.Description,
				Created:     now,
			})
		}
	}

	feed.Items = items
	uc.logger.Info("RSS feed generated successfully", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
