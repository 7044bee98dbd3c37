package http

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	feedUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/feed"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type feedFormat struct {
	contentType string
	write       func(*feeds.Feed, io.Writer) error
}

var feedFormats = map[string]feedFormat{
	"rss":  {"application/xml; charset=utf-8", (*feeds.Feed).WriteRss},
	"atom": {"application/atom+xml; charset=utf-8", (*feeds.Feed).WriteAtom},
	"json": {"application/feed+json; charset=utf-8", (*feeds.Feed).WriteJSON},
}

// FeedHandler serves the visible projects as a syndication feed.
type FeedHandler struct {
	feedUseCase *feedUC.RSSUseCase
	logger      logger.Logger
}

func NewFeedHandler(uc *feedUC.RSSUseCase, log logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: uc,
		logger:      log,
	}
}

// Feed writes RSS by default; ?format=atom or ?format=json pick the other encodings.
func (h *FeedHandler) Feed(c *gin.Context) {
	name := c.DefaultQuery("format", "rss")
	format, ok := feedFormats[name]
	if !ok {
		c.Error(apperror.NewInvalidInput(fmt.Sprintf("unknown feed format %q", name), nil))
		return
	}

	feed, err := h.feedUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(apperror.NewInternal("failed to build project feed", err))
		return
	}

	c.Header("Content-Type", format.contentType)
	if err := format.write(feed, c.Writer); err != nil {
		h.logger.Error("Failed to write project feed", err, zap.String("format", name))
	}
}
