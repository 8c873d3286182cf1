package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gorilla/feeds"
)

const feedSize = 50

func (s *Server) handleRSSFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.ListRecent(r.Context(), feedSize)
	if err != nil {
		slog.Error("failed to list posts for feed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("Hustlewire (%s)", s.name),
		Link:        &feeds.Link{Href: "http://localhost/"},
		Description: "Aggregated side-hustle posts",
		Created:     time.Now().UTC(),
	}

	for _, post := range posts {
		created := time.Time{}
		if post.CreatedUTC != "" {
			if ts, err := dateparse.ParseAny(post.CreatedUTC); err == nil {
				created = ts
			}
		}

		feed.Items = append(feed.Items, &feeds.Item{
			Id:          post.URL,
			Title:       post.Title,
			Link:        &feeds.Link{Href: post.URL},
			Description: post.Source,
			Created:     created,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		slog.Error("failed to render rss", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	fmt.Fprint(w, rss)
}
