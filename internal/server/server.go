package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"hustlewire/internal/cache"
	"hustlewire/internal/storage"
	"hustlewire/internal/types"
)

type Config struct {
	Port         string
	CacheTTL     time.Duration
	SinglePerDay bool
}

// Server is the read-side API over the post and recommendation stores.
// GET responses are cached briefly; the pipeline runs out of band, so a
// short TTL is the staleness bound.
type Server struct {
	name      string
	config    Config
	posts     storage.PostStore
	recs      storage.RecommendationStore
	respCache *cache.Cache[string, []byte]
	server    *http.Server
}

func New(name string, config Config, posts storage.PostStore, recs storage.RecommendationStore) *Server {
	if config.Port == "" {
		config.Port = "10000"
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = time.Minute
	}

	return &Server{
		name:      name,
		config:    config,
		posts:     posts,
		recs:      recs,
		respCache: cache.New[string, []byte](config.CacheTTL, func(k string) string { return k }),
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", s.handlePosts)
	mux.HandleFunc("/api/posts/latest-time", s.handleLatestTime)
	mux.HandleFunc("/api/recommendation/today", s.handleTodayRecommendation)
	mux.HandleFunc("/api/recommendation", s.handleAddRecommendation)
	mux.HandleFunc("/feed.rss", s.handleRSSFeed)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.config.Port,
		Handler: s.Routes(),
	}

	go func() {
		slog.Info("api server starting", "name", s.name, "port", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("api server error", "name", s.name, "error", err)
		}
	}()

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			slog.Error("api server shutdown error", "name", s.name, "error", err)
		}
	}
	return nil
}

type postsResponse struct {
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
	Total       int          `json:"total"`
	Posts       []types.Post `json:"posts"`
	UpdatedTime string       `json:"updated_time"`
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	cacheKey := "posts:" + r.URL.RawQuery
	if body, ok := s.respCache.Get(cacheKey); ok {
		writeJSONBytes(w, http.StatusOK, body)
		return
	}

	opts := storage.QueryOptions{
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 10),
		Search: r.URL.Query().Get("search"),
		Source: r.URL.Query().Get("source"),
	}

	posts, total, err := s.posts.Query(r.Context(), opts)
	if err != nil {
		slog.Error("failed to query posts", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to query posts")
		return
	}

	if posts == nil {
		posts = []types.Post{}
	}

	body, err := json.Marshal(postsResponse{
		Page:        opts.Page,
		Limit:       opts.Limit,
		Total:       total,
		Posts:       posts,
		UpdatedTime: time.Now().UTC().Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	s.respCache.Set(cacheKey, body)
	writeJSONBytes(w, http.StatusOK, body)
}

func (s *Server) handleLatestTime(w http.ResponseWriter, r *http.Request) {
	latest, err := s.posts.LatestCreatedUTC(r.Context())
	if err != nil {
		slog.Error("failed to fetch latest post time", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch latest post time")
		return
	}

	var latestTime *string
	if latest != "" {
		latestTime = &latest
	}

	writeJSON(w, http.StatusOK, map[string]*string{"latest_time": latestTime})
}

type recommendationResponse struct {
	Posts   []types.Recommendation `json:"posts"`
	HasData bool                   `json:"has_data"`
	Date    string                 `json:"date"`
}

func (s *Server) handleTodayRecommendation(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	cacheKey := "rec:" + date
	if body, ok := s.respCache.Get(cacheKey); ok {
		writeJSONBytes(w, http.StatusOK, body)
		return
	}

	recs, err := s.recs.ListForDate(r.Context(), date)
	if err != nil {
		slog.Error("failed to list recommendations", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recommendations")
		return
	}

	if recs == nil {
		recs = []types.Recommendation{}
	}

	body, err := json.Marshal(recommendationResponse{
		Posts:   recs,
		HasData: len(recs) > 0,
		Date:    date,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	s.respCache.Set(cacheKey, body)
	writeJSONBytes(w, http.StatusOK, body)
}

type addRecommendationRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date"`
}

func (s *Server) handleAddRecommendation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req addRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if req.Date == "" {
		req.Date = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}

	if s.config.SinglePerDay {
		count, err := s.recs.CountForDate(r.Context(), req.Date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to check existing recommendations")
			return
		}
		if count > 0 {
			writeError(w, http.StatusBadRequest, "a recommendation already exists for this date")
			return
		}
	}

	switch err := s.recs.Add(r.Context(), req.Title, req.URL, req.Date); {
	case err == nil:
		s.respCache.InvalidatePrefix("rec:")
		writeJSON(w, http.StatusOK, map[string]string{"message": "recommendation added"})
	case types.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrDuplicate):
		writeError(w, http.StatusBadRequest, "this recommendation already exists for this date")
	default:
		slog.Error("failed to add recommendation", "error", err)
		writeError(w, http.StatusInternalServerError, "database error")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","name":"%s","time":"%s"}`, s.name, time.Now().UTC().Format(time.RFC3339))
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSONBytes(w, status, body)
}

func writeJSONBytes(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
