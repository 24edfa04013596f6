package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crimson-sun/aurora/internal/engine"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "online",
		"service":  ServiceName,
		"endpoint": "/ask?question=your-question",
	})
}

// handleAsk validates the question, runs the pipeline, and maps errors
// to client responses. Fatal pipeline errors become a generic 500 body;
// the underlying cause is only logged.
func (s *Server) handleAsk(c *gin.Context) {
	question := c.Query("question")
	if strings.TrimSpace(question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question parameter required"})
		return
	}

	res, err := s.engine.Answer(c.Request.Context(), question)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question parameter required"})
			return
		}
		s.log.WithError(err).WithField("request_id", requestID(c)).Error("ask pipeline failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": res.Answer})
}
