package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/learnquest/learnquest/internal/history"
	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/town"
)

type stateResponse struct {
	State         progress.State `json:"state"`
	LevelProgress float64        `json:"levelProgress"`
	Streak        int            `json:"streak"`
	TotalSteps    int            `json:"totalSteps"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.tracker.Snapshot(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{
		State:         st,
		LevelProgress: progress.LevelProgress(st.XP),
		Streak:        history.CurrentStreak(st.History, s.tracker.Now()),
		TotalSteps:    progress.TotalSteps,
	})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.IncrementStep(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.Reset(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	b, err := s.tracker.Board(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quests": b})
}

func (s *Server) handleGenerateQuests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.aiContext(r)
	defer cancel()
	res, err := s.tracker.RegenerateQuests(ctx)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.CompleteQuest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.aiContext(r)
	defer cancel()
	sess, err := s.tracker.StartQuiz(ctx)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type quizSubmission struct {
	ID      string   `json:"id"`
	Answers []string `json:"answers"`
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON: "+err.Error())
		return
	}
	res, err := s.tracker.SubmitQuiz(r.Context(), req.ID, req.Answers)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStartChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.aiContext(r)
	defer cancel()
	sess, err := s.tracker.StartChallenge(ctx)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type challengeSubmission struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

func (s *Server) handleSubmitChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON: "+err.Error())
		return
	}
	ctx, cancel := s.aiContext(r)
	defer cancel()
	res, err := s.tracker.SubmitChallenge(ctx, req.ID, req.Prompt)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	st, err := s.tracker.Snapshot(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"buildPoints": st.BuildPoints,
		"skillPoints": st.SkillPoints,
		"trees":       s.catalog.View(st),
	})
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.aiContext(r)
	defer cancel()
	a, err := s.tracker.Advice(ctx)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.Unlock(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTown(w http.ResponseWriter, r *http.Request) {
	st, err := s.tracker.Snapshot(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"buildings": town.View(st.Stats)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	p, err := history.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	st, err := s.tracker.Snapshot(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history.Summarize(st.History, p, s.tracker.Now()))
}
