package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dripcast/internal/library"
	"dripcast/internal/metadata"
	"dripcast/internal/models"
	"dripcast/internal/source"
)

// SnapshotProvider hands the handlers the gated, sorted episode collection.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (models.Podcast, []models.Episode, error)
	Lookup(ctx context.Context, filename string) (source.Asset, error)
}

// TokenValidator determines whether a supplied token is authorized.
type TokenValidator interface {
	IsValidToken(token string) bool
}

type serverHandler struct {
	lib       SnapshotProvider
	validator TokenValidator
	logger    *log.Logger
}

type episodesResponse struct {
	Podcast  models.Podcast   `json:"podcast"`
	Episodes []models.Episode `json:"episodes"`
}

// New creates the HTTP handler exposing the feed, the JSON listing, and
// audio streaming.
func New(lib SnapshotProvider, validator TokenValidator, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}

	h := &serverHandler{
		lib:       lib,
		validator: validator,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/episodes", h.handleEpisodes)
	mux.HandleFunc("/feed", h.handleFeed)
	mux.HandleFunc("/feed.xml", h.handleFeed)
	mux.HandleFunc("/rss", h.handleFeed)
	mux.HandleFunc("/audio/", h.handleAudio)

	return logRequests(mux, logger)
}

func (h *serverHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *serverHandler) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	token, ok := h.requireToken(w, r)
	if !ok {
		return
	}

	base := h.requestBaseURL(r)
	if base == nil {
		h.logger.Printf("unable to determine request base URL")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	podcast, episodes, err := h.lib.Snapshot(r.Context())
	if err != nil {
		h.logger.Printf("failed to assemble episodes: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	for i := range episodes {
		episodes[i].URL = episodeURL(base, episodes[i], token)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(episodesResponse{Podcast: podcast, Episodes: episodes}); err != nil {
		h.logger.Printf("failed to encode episodes: %v", err)
	}
}

func (h *serverHandler) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	token, ok := h.requireToken(w, r)
	if !ok {
		return
	}

	base := h.requestBaseURL(r)
	if base == nil {
		h.logger.Printf("unable to determine request base URL")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	podcast, episodes, err := h.lib.Snapshot(r.Context())
	if err != nil {
		h.logger.Printf("failed to assemble feed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	data, err := buildRSSFeed(base, r.URL.Path, r.URL.RawQuery, podcast, episodes, token)
	if err != nil {
		h.logger.Printf("failed to build RSS feed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		h.logger.Printf("failed to write RSS feed: %v", err)
	}
}

func (h *serverHandler) handleAudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if _, ok := h.requireToken(w, r); !ok {
		return
	}

	// The feed only knows flat filenames; anything path-shaped is a miss.
	name := strings.TrimPrefix(r.URL.Path, "/audio/")
	if name == "" || name == "." || strings.Contains(name, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	asset, err := h.lib.Lookup(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, library.ErrUnsupported):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, library.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.logger.Printf("failed to resolve audio %s: %v", name, err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	if asset.RemoteURL != "" {
		http.Redirect(w, r, asset.RemoteURL, http.StatusFound)
		return
	}

	if mimeType, ok := metadata.MIMEType(name); ok {
		w.Header().Set("Content-Type", mimeType)
	}
	http.ServeFile(w, r, asset.LocalPath)
}

func (h *serverHandler) requireToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.validator == nil {
		return "", true
	}

	token := extractToken(r)
	if token == "" || !h.validator.IsValidToken(token) {
		w.WriteHeader(http.StatusForbidden)
		return "", false
	}
	return token, true
}

func (h *serverHandler) requestBaseURL(r *http.Request) *url.URL {
	scheme := "http"
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			candidate := strings.TrimSpace(parts[0])
			if candidate != "" {
				scheme = candidate
			}
		}
	} else if r.TLS != nil {
		scheme = "https"
	}

	host := strings.TrimSpace(r.Host)
	if host == "" {
		return nil
	}

	return &url.URL{Scheme: scheme, Host: host}
}

// episodeURL picks the hosted URL when one exists and otherwise builds a
// locally served one with the access token embedded, so feed readers can
// fetch enclosures without extra headers.
func episodeURL(base *url.URL, ep models.Episode, token string) string {
	if ep.URL != "" {
		return ep.URL
	}

	u := *base
	u.Path = "/audio/" + ep.Filename
	if token != "" {
		values := url.Values{}
		values.Set("token", token)
		u.RawQuery = values.Encode()
	}
	return u.String()
}

type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

func logRequests(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		duration := time.Since(start)
		logger.Printf("%s %s -> %d (%dB) in %s", r.Method, r.URL.Path, sw.status, sw.size, duration)
	})
}

func extractToken(r *http.Request) string {
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}

	if header := strings.TrimSpace(r.Header.Get("X-Podcast-Token")); header != "" {
		return header
	}

	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return ""
	}

	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}

	return ""
}
