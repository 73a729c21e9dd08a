// Package server exposes an Engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/cognicore/quest/internal/metrics"
	"github.com/cognicore/quest/pkg/quest"
	"github.com/cognicore/quest/pkg/quest/cards"
	"github.com/cognicore/quest/pkg/quest/internalerr"
)

// Answerer answers one query.
type Answerer interface {
	Answer(ctx context.Context, req quest.AnswerRequest) (quest.AnswerResponse, error)
}

// Handler serves answers. Identical concurrent queries share a single
// ranking pass.
type Handler struct {
	engine     Answerer
	metrics    *metrics.Metrics
	log        *logrus.Entry
	maxResults int
	group      singleflight.Group
}

// AnswerBody is the JSON response of the answer endpoint.
type AnswerBody struct {
	Files     []string   `json:"files"`
	Sentences []string   `json:"sentences"`
	Card      cards.Card `json:"card"`
	Shared    bool       `json:"shared"`
}

// New creates a handler. maxResults caps the files and sentences a
// client may request; zero means 100.
func New(engine Answerer, m *metrics.Metrics, log *logrus.Entry, maxResults int) *Handler {
	if maxResults <= 0 {
		maxResults = 100
	}
	return &Handler{
		engine:     engine,
		metrics:    m,
		log:        log,
		maxResults: maxResults,
	}
}

// Routes returns a mux with every endpoint registered.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/answer", h.Answer)
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", h.metrics.Handler())
	return mux
}

// Answer handles GET /api/v1/answer?q=...&files=N&sentences=M.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, r, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	files, err := h.count(r, "files")
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	sentences, err := h.count(r, "sentences")
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req := quest.AnswerRequest{Query: query, Files: files, Sentences: sentences}
	key := fmt.Sprintf("%d\x00%d\x00%s", files, sentences, query)
	v, err, shared := h.group.Do(key, func() (any, error) {
		return h.engine.Answer(context.WithoutCancel(r.Context()), req)
	})
	if shared {
		h.metrics.SharedAnswersTotal.Inc()
	}
	if err != nil {
		if errors.Is(err, internalerr.ErrInvalidInput) {
			h.metrics.AnswersTotal.WithLabelValues("invalid").Inc()
			h.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.metrics.AnswersTotal.WithLabelValues("error").Inc()
		h.log.WithError(err).WithField("query", query).Error("answer failed")
		h.writeError(w, r, http.StatusInternalServerError, "answer failed")
		return
	}
	resp := v.(quest.AnswerResponse)

	elapsed := time.Since(start)
	h.metrics.AnswerLatency.Observe(elapsed.Seconds())
	h.metrics.CandidateSentences.Observe(float64(resp.Candidates))
	if len(resp.Card.MatchedTokens) == 0 {
		h.metrics.AnswersTotal.WithLabelValues("no_match").Inc()
	} else {
		h.metrics.AnswersTotal.WithLabelValues("ok").Inc()
	}

	h.log.WithFields(logrus.Fields{
		"card":       resp.Card.ID,
		"query":      query,
		"files":      len(resp.Files),
		"sentences":  len(resp.Sentences),
		"shared":     shared,
		"latency_ms": elapsed.Milliseconds(),
	}).Info("answer completed")

	h.writeJSON(w, r, http.StatusOK, AnswerBody{
		Files:     resp.Files,
		Sentences: resp.Sentences,
		Card:      resp.Card,
		Shared:    shared,
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// count parses an optional positive integer parameter; absent means 0,
// which selects the engine default.
func (h *Handler) count(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	if n > h.maxResults {
		n = h.maxResults
	}
	return n, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.metrics.HTTPRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.WithError(err).Error("failed to write response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, map[string]string{"error": message})
}
