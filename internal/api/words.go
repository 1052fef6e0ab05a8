package api

import (
	"net/http"
	"strconv"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/middleware"

	"github.com/gin-gonic/gin"
)

type wordRequest struct {
	Name          string `json:"name"`
	Meaning       string `json:"meaning"`
	Pronunciation string `json:"pronunciation"`
}

func (r wordRequest) input() domain.WordInput {
	return domain.WordInput{
		Name:          r.Name,
		Meaning:       r.Meaning,
		Pronunciation: r.Pronunciation,
	}
}

func (s *Server) handleListWords(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		badRequest(c, "page must be a number")
		return
	}

	result, err := s.wordService.ListWords(c.Request.Context(), middleware.UserID(c), page, c.Query("q"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCreateWord(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	word, err := s.wordService.AddWord(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, word)
}

func (s *Server) handleImportWords(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		s.respondError(c, err)
		return
	}
	defer file.Close()

	count, err := s.wordService.ImportWords(c.Request.Context(), middleware.UserID(c), header.Filename, file)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imported": count})
}

func (s *Server) handleGetWord(c *gin.Context) {
	wordID, ok := wordIDParam(c)
	if !ok {
		return
	}

	word, err := s.wordService.GetWord(c.Request.Context(), middleware.UserID(c), wordID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, word)
}

func (s *Server) handleUpdateWord(c *gin.Context) {
	wordID, ok := wordIDParam(c)
	if !ok {
		return
	}

	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	word, err := s.wordService.UpdateWord(c.Request.Context(), middleware.UserID(c), wordID, req.input())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, word)
}

func (s *Server) handleDeleteWord(c *gin.Context) {
	wordID, ok := wordIDParam(c)
	if !ok {
		return
	}

	if err := s.wordService.DeleteWord(c.Request.Context(), middleware.UserID(c), wordID); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func wordIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		badRequest(c, "invalid word id")
		return 0, false
	}
	return id, true
}
