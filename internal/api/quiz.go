package api

import (
	"net/http"

	"vocabquiz/internal/middleware"
	"vocabquiz/internal/quiz"

	"github.com/gin-gonic/gin"
)

type answerRequest struct {
	Choice string `json:"choice" binding:"required"`
}

// questionView is what a client sees of a question. Answer and Correct stay
// empty until the question has been answered.
type questionView struct {
	Number        int            `json:"number"`
	Direction     quiz.Direction `json:"direction"`
	Prompt        string         `json:"prompt"`
	Pronunciation string         `json:"pronunciation,omitempty"`
	Choices       []string       `json:"choices"`
	Selected      string         `json:"selected,omitempty"`
	Correct       *bool          `json:"correct,omitempty"`
	Answer        string         `json:"answer,omitempty"`
}

type sessionView struct {
	ID       string        `json:"id"`
	State    quiz.State    `json:"state"`
	Score    int           `json:"score"`
	Total    int           `json:"total"`
	Question *questionView `json:"question,omitempty"`
}

func newSessionView(s *quiz.Session) sessionView {
	view := sessionView{
		ID:    s.ID,
		State: s.State(),
		Score: s.Score,
		Total: s.Total(),
	}

	q, ok := s.Current()
	if !ok {
		return view
	}

	qv := &questionView{
		Number:    s.Index + 1,
		Direction: q.Direction,
		Prompt:    q.Prompt,
		Choices:   q.Choices,
	}
	if q.Direction == quiz.NameToMeaning {
		qv.Pronunciation = q.Word.Pronunciation
	}
	if s.Answered {
		correct := s.LastCorrect
		qv.Selected = s.Selected
		qv.Correct = &correct
		qv.Answer = q.Answer
	}
	view.Question = qv

	return view
}

func (s *Server) handleStartQuiz(c *gin.Context) {
	session, err := s.quizService.Start(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSessionView(session))
}

func (s *Server) handleGetQuiz(c *gin.Context) {
	session, err := s.quizService.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionView(session))
}

func (s *Server) handleAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "choice is required")
		return
	}

	session, _, err := s.quizService.Answer(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Choice)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionView(session))
}

func (s *Server) handleNext(c *gin.Context) {
	session, err := s.quizService.Next(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionView(session))
}

func (s *Server) handleRestart(c *gin.Context) {
	session, err := s.quizService.Restart(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionView(session))
}

func (s *Server) handleExitQuiz(c *gin.Context) {
	if err := s.quizService.Exit(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
