package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"exam-qa-study/internal/config"
	"exam-qa-study/internal/metrics"
	"exam-qa-study/internal/progress"
	"exam-qa-study/internal/segment"
	"exam-qa-study/internal/storage"
)

// Server отдает разобранные вопросы и принимает ответы по HTTP
type Server struct {
	cfg       config.ServerConfig
	text      string
	records   *segment.Records
	stats     segment.Stats
	store     progress.Store
	metrics   *metrics.Metrics
	sessionID string
	etag      string
}

// New создает сервер поверх уже разобранного документа
func New(cfg config.ServerConfig, text string, records *segment.Records, store progress.Store, m *metrics.Metrics) *Server {
	if m == nil {
		m = metrics.NewMetrics()
	}
	etag := ""
	if sum, err := storage.Fingerprint([]byte(text)); err == nil {
		etag = `"` + sum + `"`
	}
	return &Server{
		cfg:       cfg,
		text:      text,
		records:   records,
		stats:     segment.Summarize(records),
		store:     store,
		metrics:   m,
		sessionID: uuid.New().String(),
		etag:      etag,
	}
}

// Router собирает маршруты API
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", s.handleQuestions)
		r.Route("/questions/{id}", func(r chi.Router) {
			r.Get("/", s.handleQuestion)
			r.Get("/question", s.handleQuestionOnly)
			r.Get("/answer", s.handleAnswerExplain)
		})
		r.Get("/stats", s.handleStats)
		r.Get("/progress", s.handleProgressList)
		r.Post("/progress", s.handleProgressAppend)
		r.Get("/metrics", s.handleMetrics)
	})
	return r
}

// ListenAndServe запускает HTTP сервер и останавливает его по отмене контекста
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🌐 API слушает %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if s.etag != "" {
		w.Header().Set("ETag", s.etag)
		if r.Header.Get("If-None-Match") == s.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.records)
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, found := s.records.Get(id)
	if !found {
		writeErr(w, http.StatusNotFound, "question not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type textResp struct {
	ID   int    `json:"q_num"`
	Text string `json:"text"`
}

func (s *Server) handleQuestionOnly(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	text, err := segment.QuestionOnly(s.text, id)
	if err != nil {
		s.metrics.IncrementQuestionsMissing()
		writeLookupErr(w, err)
		return
	}
	s.metrics.IncrementQuestionsShown()
	writeJSON(w, http.StatusOK, textResp{ID: id, Text: text})
}

func (s *Server) handleAnswerExplain(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	text, err := segment.AnswerExplain(s.text, id)
	if err != nil {
		writeLookupErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, textResp{ID: id, Text: text})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stats)
}

func (s *Server) handleProgressList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.Entries(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []progress.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

type answerReq struct {
	ID     int    `json:"q_num"`
	Answer string `json:"answer"`
}

type answerResp struct {
	ID            int           `json:"q_num"`
	Answer        string        `json:"answer"`
	Grade         metrics.Grade `json:"grade"`
	CorrectAnswer *string       `json:"correct_answer"`
}

func (s *Server) handleProgressAppend(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	letter, ok := progress.NormalizeLetter(req.Answer)
	if !ok {
		writeErr(w, http.StatusBadRequest, "answer must be one of A-E")
		return
	}
	rec, found := s.records.Get(req.ID)
	if !found {
		writeErr(w, http.StatusNotFound, "question not found")
		return
	}

	if err := s.store.Append(r.Context(), req.ID, letter, s.sessionID); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	grade := metrics.GradeAnswer(letter, rec.AnswerChoice)
	s.metrics.RecordAnswer(grade)

	writeJSON(w, http.StatusCreated, answerResp{
		ID:            req.ID,
		Answer:        letter,
		Grade:         grade,
		CorrectAnswer: rec.AnswerChoice,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeErr(w, http.StatusBadRequest, "invalid question id")
		return 0, false
	}
	return id, true
}

func writeLookupErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, segment.ErrNotFound):
		writeErr(w, http.StatusNotFound, "question not found")
	case errors.Is(err, segment.ErrNoAnswer):
		writeErr(w, http.StatusNotFound, "answer not found")
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
