package fakeapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) voiceToText(c echo.Context) error {
	return s.voice(c, "Voice input received")
}

func (s *Server) textToSpeech(c echo.Context) error {
	return s.voice(c, "Text-to-speech ready")
}

func (s *Server) voice(c echo.Context, message string) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil || req.Text == "" {
		return jsonError(c, http.StatusBadRequest, "Text is required")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": message,
		"text":    req.Text,
		"status":  "success",
	})
}

func (s *Server) voiceStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"voice_recognition": true,
		"text_to_speech":    true,
		"environment":       "test",
		"note":              "Speech is handled on the device",
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"ai_provider": "fake",
		"services": map[string]string{
			"database":    "connected",
			"google_maps": "available",
		},
	})
}

func (s *Server) sendFeedback(c echo.Context) error {
	var req struct {
		Message string `json:"message"`
		Rating  int    `json:"rating"`
	}
	if err := c.Bind(&req); err != nil || req.Message == "" {
		return jsonError(c, http.StatusBadRequest, "Feedback message is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, req.Message)
	return c.JSON(http.StatusOK, map[string]any{"message": "Thank you for your feedback"})
}
