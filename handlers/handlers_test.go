package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetStats/internal/stats"
	"leetStats/services"
)

type fakeLookup struct {
	record *stats.Record
	err    error
	got    string
}

func (f *fakeLookup) Lookup(ctx context.Context, username string) (*stats.Record, error) {
	f.got = username
	if strings.TrimSpace(username) == "" {
		return nil, services.ErrEmptyUsername
	}
	return f.record, f.err
}

type fakeAssistant struct {
	answer template.HTML
	err    error
}

func (f *fakeAssistant) Ask(ctx context.Context, question string) (template.HTML, error) {
	if strings.TrimSpace(question) == "" {
		return "", services.ErrEmptyQuestion
	}
	return f.answer, f.err
}

func aliceRecord() *stats.Record {
	rank := 4321
	return &stats.Record{
		Username:             "alice",
		Rank:                 &rank,
		ProblemsByDifficulty: map[string]int{"Easy": 80, "Medium": 60, "Hard": 10},
		TotalSolved:          150,
		TopLanguages:         []stats.LanguageStat{{Language: "Python", Solved: 100}, {Language: "Java", Solved: 50}},
		Badges:               []string{"100 Days"},
	}
}

func newPage(lookup StatsLookup, assistant Assistant) *PageHandler {
	h := NewPageHandler(lookup, assistant, zerolog.Nop())
	h.now = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC) }
	return h
}

func postForm(h http.HandlerFunc, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestHome_Get(t *testing.T) {
	h := newPage(&fakeLookup{}, &fakeAssistant{})
	rr := httptest.NewRecorder()

	h.Home(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "03:04 PM")
	assert.NotContains(t, rr.Body.String(), `class="error"`)
}

func TestHome_LookupRendersStats(t *testing.T) {
	lookup := &fakeLookup{record: aliceRecord()}
	h := newPage(lookup, &fakeAssistant{})

	rr := postForm(h.Home, url.Values{"username": {" alice "}})

	body := rr.Body.String()
	assert.Equal(t, "alice", lookup.got)
	assert.Contains(t, body, "Rank: <strong>4321</strong>")
	assert.Contains(t, body, "Total solved: <strong>150</strong>")
	assert.Contains(t, body, "Easy: 80 (53%)")
	assert.Contains(t, body, "Medium: 60 (40%)")
	assert.Contains(t, body, "Hard: 10 (6%)")
	assert.Contains(t, body, "width: 53%")
	assert.Contains(t, body, "Python: 100")
	assert.Contains(t, body, `<span class="badge">100 Days</span>`)
	assert.Less(t, strings.Index(body, "Easy:"), strings.Index(body, "Hard:"))
}

func TestHome_LookupErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		err   error
		want  string
	}{
		{name: "empty", input: "  ", want: "Username cannot be empty"},
		{name: "not found", input: "ghost", err: &services.NormalizeError{Message: "User not found or profile is private"}, want: "User not found or profile is private"},
		{name: "network", input: "bob", err: &services.FetchError{Kind: services.FetchNetwork, Detail: "timeout"}, want: "Network error: timeout"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newPage(&fakeLookup{err: c.err}, &fakeAssistant{})

			rr := postForm(h.Home, url.Values{"username": {c.input}})

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `<div class="error">`+c.want+`</div>`)
			assert.NotContains(t, rr.Body.String(), "Total solved")
		})
	}
}

func TestHome_Assistant(t *testing.T) {
	h := newPage(&fakeLookup{}, &fakeAssistant{answer: "<p>A <strong>heap</strong></p>"})

	rr := postForm(h.Home, url.Values{"username": {"What is a heap?"}, "gemini_mode": {"true"}})

	body := rr.Body.String()
	assert.Contains(t, body, `<div class="answer"><p>A <strong>heap</strong></p></div>`)
	assert.Contains(t, body, "checked")
}

func TestHome_AssistantErrors(t *testing.T) {
	h := newPage(&fakeLookup{}, &fakeAssistant{})
	rr := postForm(h.Home, url.Values{"username": {""}, "gemini_mode": {"true"}})
	assert.Contains(t, rr.Body.String(), "Question cannot be empty")

	h = newPage(&fakeLookup{}, &fakeAssistant{err: errors.New("quota")})
	rr = postForm(h.Home, url.Values{"username": {"What is a heap?"}, "gemini_mode": {"true"}})
	assert.Contains(t, rr.Body.String(), "Gemini error: quota")
}

func apiRouter(h *APIHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/stats/{username}", h.GetStats).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/ask", h.Ask).Methods(http.MethodPost)
	return r
}

func TestAPI_GetStats(t *testing.T) {
	r := apiRouter(NewAPIHandler(&fakeLookup{record: aliceRecord()}, &fakeAssistant{}))
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stats/alice", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got stats.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, *aliceRecord(), got)
}

func TestAPI_GetStatsErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{&services.NormalizeError{Message: "user does not exist"}, http.StatusNotFound, "user does not exist"},
		{&services.FetchError{Kind: services.FetchAPIError, Detail: "bad query"}, http.StatusBadGateway, "bad query"},
		{&services.FetchError{Kind: services.FetchExhausted, Detail: "API request failed after multiple attempts"}, http.StatusServiceUnavailable, "API request failed after multiple attempts"},
		{errors.New("boom"), http.StatusInternalServerError, "boom"},
	}
	for _, c := range cases {
		r := apiRouter(NewAPIHandler(&fakeLookup{err: c.err}, &fakeAssistant{}))
		rr := httptest.NewRecorder()

		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stats/bob", nil))

		assert.Equal(t, c.code, rr.Code)
		assert.JSONEq(t, `{"error":"`+c.msg+`"}`, rr.Body.String())
	}
}

func TestAPI_Ask(t *testing.T) {
	r := apiRouter(NewAPIHandler(&fakeLookup{}, &fakeAssistant{answer: "<p>hi</p>"}))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":"What is a trie?"}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"html":"<p>hi</p>"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":""}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	disabled := apiRouter(NewAPIHandler(&fakeLookup{}, &fakeAssistant{err: services.ErrAssistantDisabled}))
	rr = httptest.NewRecorder()
	disabled.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":"What is a trie?"}`)))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"leetstats"}`, rr.Body.String())
}

func TestHome_EndToEndAgainstUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"matchedUser":{"username":"alice","profile":{"ranking":4321},
			"languageProblemCount":[{"languageName":"Python","problemsSolved":100},{"languageName":"Java","problemsSolved":50},{"languageName":"C++","problemsSolved":0}],
			"submitStats":{"acSubmissionNum":[{"difficulty":"All","count":150},{"difficulty":"Easy","count":80},{"difficulty":"Medium","count":60},{"difficulty":"Hard","count":10}]},
			"badges":[{"name":"100 Days"}]}}}`))
	}))
	defer upstream.Close()

	fetcher := services.NewLeetCodeFetcher(services.FetcherConfig{
		Endpoint:    upstream.URL,
		Timeout:     2 * time.Second,
		MaxAttempts: 3,
	}, zerolog.Nop())
	h := newPage(services.NewProfileService(fetcher, zerolog.Nop()), &fakeAssistant{})

	rr := postForm(h.Home, url.Values{"username": {"alice"}})

	body := rr.Body.String()
	assert.Contains(t, body, "Total solved: <strong>150</strong>")
	assert.Contains(t, body, "Java: 50")
	assert.NotContains(t, body, "C++")
}
