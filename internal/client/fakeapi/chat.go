package fakeapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) chat(c echo.Context) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil || req.Message == "" {
		return jsonError(c, http.StatusBadRequest, "Message is required")
	}

	id := s.userID(c)
	now := time.Now().UTC()
	reply := "Thanks for your question. Based on what you describe, rest and hydration usually help; see a doctor if it persists."

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[id] = append(s.chats[id], chat{
		ID:        s.id(),
		Message:   req.Message,
		Response:  reply,
		CreatedAt: now,
	})
	return c.JSON(http.StatusOK, map[string]any{
		"message":   req.Message,
		"response":  reply,
		"timestamp": now.Format(time.RFC3339),
	})
}

func (s *Server) chatHistory(c echo.Context) error {
	page, perPage := pagination(c, 20)
	id := s.userID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.chats[id]
	items := []map[string]any{}
	for i := len(all) - 1; i >= 0; i-- {
		ch := all[i]
		items = append(items, map[string]any{
			"id":         ch.ID,
			"message":    ch.Message,
			"response":   ch.Response,
			"created_at": ch.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, paginate("chats", items, page, perPage))
}
