package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"lingodesk/internal/pipeline"
	"lingodesk/internal/reply"
	"lingodesk/internal/storage"
)

// historyLimit caps the rows returned by /api/history.
const historyLimit = 50

// Server is the interactive surface: a single form that submits one
// interaction to the pipeline and renders its four outputs.
type Server struct {
	handler   *pipeline.Handler
	recorder  storage.Recorder
	server    *http.Server
	tmpl      *template.Template
	log       *logrus.Logger
	port      int
	startTime time.Time
}

func NewServer(handler *pipeline.Handler, recorder storage.Recorder, port int, log *logrus.Logger) *Server {
	return &Server{
		handler:   handler,
		recorder:  recorder,
		tmpl:      template.Must(template.New("page").Parse(pageTemplate)),
		log:       log,
		port:      port,
		startTime: time.Now(),
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/", s.handleForm)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.WithField("port", s.port).Info("web server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// pageData feeds the form template. Submitted reports whether outputs should
// be rendered at all.
type pageData struct {
	Submitted bool
	Text      string
	Tone      string
	Rating    int
	GenReply  bool
	Result    pipeline.Result
	Error     string
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := pageData{Tone: string(reply.ToneProfessional), GenReply: true}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad form", http.StatusBadRequest)
			return
		}
		rating, err := strconv.Atoi(r.FormValue("rating"))
		if err != nil || rating < 0 || rating > 5 {
			rating = 0
		}
		req := pipeline.Request{
			Text:          r.FormValue("text"),
			GenerateReply: r.FormValue("generate_reply") == "on",
			Rating:        rating,
			Tone:          reply.ParseTone(r.FormValue("tone")),
		}
		data.Submitted = true
		data.Text = req.Text
		data.Tone = string(req.Tone)
		data.Rating = req.Rating
		data.GenReply = req.GenerateReply

		res, err := s.handler.Handle(r.Context(), req)
		if err != nil {
			// Only persistence failures reach here; surface them to the
			// operator instead of pretending the row was logged.
			s.log.WithError(err).Error("interaction failed")
			data.Error = err.Error()
		} else {
			data.Result = res
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.log.WithError(err).Error("render form page")
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "lingodesk",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).String(),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleHistory returns the most recent logged interactions, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows, err := s.recorder.Load()
	if err != nil {
		s.log.WithError(err).Error("load history")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if len(rows) > historyLimit {
		rows = rows[len(rows)-historyLimit:]
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	w.Header().Set("Content-Type", "application/json")
	response := map[string]interface{}{
		"success": true,
		"rows":    rows,
		"total":   len(rows),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
