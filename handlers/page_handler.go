package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"leetStats/internal/stats"
	"leetStats/services"
)

const (
	lookupTimeout = 45 * time.Second
	askTimeout    = 60 * time.Second
)

type StatsLookup interface {
	Lookup(ctx context.Context, username string) (*stats.Record, error)
}

type Assistant interface {
	Ask(ctx context.Context, question string) (template.HTML, error)
}

type pageData struct {
	CurrentTime    string
	Input          string
	GeminiMode     bool
	Error          string
	Stats          *stats.Record
	GeminiResponse template.HTML
}

// PageHandler serves the HTML front end.
type PageHandler struct {
	profiles  StatsLookup
	assistant Assistant
	tmpl      *template.Template
	now       func() time.Time
	logger    zerolog.Logger
}

func NewPageHandler(profiles StatsLookup, assistant Assistant, logger zerolog.Logger) *PageHandler {
	tmpl := template.Must(template.New("home").Funcs(template.FuncMap{
		"deref": func(p *int) int { return *p },
	}).Parse(homeHTML))

	return &PageHandler{
		profiles:  profiles,
		assistant: assistant,
		tmpl:      tmpl,
		now:       time.Now,
		logger:    logger,
	}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pageData{CurrentTime: h.now().Format("03:04 PM")}

	if r.Method != http.MethodPost {
		h.render(w, data)
		return
	}

	if err := r.ParseForm(); err != nil {
		data.Error = "Invalid form submission"
		h.render(w, data)
		return
	}

	input := strings.TrimSpace(r.PostFormValue("username"))
	data.Input = input
	data.GeminiMode = r.PostFormValue("gemini_mode") == "true"

	if data.GeminiMode {
		h.ask(r.Context(), input, &data)
	} else {
		h.lookup(r.Context(), input, &data)
	}
	h.render(w, data)
}

func (h *PageHandler) lookup(ctx context.Context, username string, data *pageData) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	record, err := h.profiles.Lookup(ctx, username)
	if err != nil {
		data.Error = services.UserMessage(err)
		return
	}
	data.Stats = record
}

func (h *PageHandler) ask(ctx context.Context, question string, data *pageData) {
	ctx, cancel := context.WithTimeout(ctx, askTimeout)
	defer cancel()

	answer, err := h.assistant.Ask(ctx, question)
	switch {
	case err == nil:
		data.GeminiResponse = answer
	case errors.Is(err, services.ErrEmptyQuestion):
		data.Error = services.UserMessage(err)
	default:
		data.Error = "Gemini error: " + err.Error()
	}
}

func (h *PageHandler) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var buf strings.Builder
	if err := h.tmpl.Execute(&buf, data); err != nil {
		h.logger.Error().Err(err).Msg("failed to render home page")
		http.Error(w, "Could not render page", http.StatusInternalServerError)
		return
	}
	w.Write([]byte(buf.String()))
}
