package fakeapi

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

func (s *Server) profile(c echo.Context) error {
	u, _ := s.currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{"user": userJSON(u)})
}

func (s *Server) updateProfile(c echo.Context) error {
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	u, _ := s.currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if name == "" {
			return jsonError(c, http.StatusBadRequest, "Username cannot be empty")
		}
		if other := s.findByUsername(name); other != nil && other.ID != u.ID {
			return jsonError(c, http.StatusConflict, "Username already exists")
		}
		u.Username = name
	}
	if req.Email != nil {
		if other := s.findByEmail(*req.Email); other != nil && other.ID != u.ID {
			return jsonError(c, http.StatusConflict, "Email already exists")
		}
		u.Email = *req.Email
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Profile updated",
		"user":    userJSON(u),
	})
}

func (s *Server) uploadPicture(c echo.Context) error {
	file, err := c.FormFile("picture")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "No picture provided")
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		return jsonError(c, http.StatusBadRequest, "Invalid file type")
	}

	u, _ := s.currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	url := fmt.Sprintf("/static/profile/%d_%s", u.ID, filepath.Base(file.Filename))
	u.ProfilePicture = &url
	return c.JSON(http.StatusOK, map[string]any{
		"message":         "Profile picture updated",
		"profile_picture": url,
	})
}

func (s *Server) deletePicture(c echo.Context) error {
	u, _ := s.currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ProfilePicture = nil
	return c.JSON(http.StatusOK, map[string]any{"message": "Profile picture removed"})
}

func (s *Server) deleteChatHistory(c echo.Context) error {
	id := s.userID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.chats[id])
	delete(s.chats, id)
	return c.JSON(http.StatusOK, map[string]any{"message": "Chat history deleted", "deleted": n})
}

func (s *Server) deleteDiagnosisHistory(c echo.Context) error {
	id := s.userID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.diagnoses[id])
	delete(s.diagnoses, id)
	return c.JSON(http.StatusOK, map[string]any{"message": "Diagnosis history deleted", "deleted": n})
}

func (s *Server) requestAccountDeletion(c echo.Context) error {
	id := s.userID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletionCodes[id] = fmt.Sprintf("%06d", rand.IntN(1000000))
	return c.JSON(http.StatusOK, map[string]any{
		"message": "A confirmation code has been sent to your email",
	})
}

func (s *Server) confirmAccountDeletion(c echo.Context) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&req); err != nil || req.Code == "" {
		return jsonError(c, http.StatusBadRequest, "Confirmation code is required")
	}

	id := s.userID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.deletionCodes[id]
	if !ok || want != req.Code {
		return jsonError(c, http.StatusBadRequest, "Invalid or expired confirmation code")
	}

	delete(s.users, id)
	delete(s.chats, id)
	delete(s.diagnoses, id)
	delete(s.deletionCodes, id)
	for token, owner := range s.sessions {
		if owner == id {
			delete(s.sessions, token)
		}
	}
	s.endSession(c)
	return c.JSON(http.StatusOK, map[string]any{"message": "Account deleted"})
}
