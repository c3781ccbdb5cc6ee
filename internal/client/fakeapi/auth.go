package fakeapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type credentialsBody struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func userJSON(u *user) map[string]any {
	return map[string]any{
		"id":              u.ID,
		"username":        u.Username,
		"email":           u.Email,
		"profile_picture": u.ProfilePicture,
		"credits":         u.Credits,
		"created_at":      u.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) register(c echo.Context) error {
	var req credentialsBody
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "All fields are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findByUsername(req.Username) != nil {
		return jsonError(c, http.StatusBadRequest, "Username already exists")
	}
	if s.findByEmail(req.Email) != nil {
		return jsonError(c, http.StatusBadRequest, "Email already exists")
	}

	u := &user{
		ID:        s.id(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Credits:   DefaultCredits,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.startSession(c, u.ID)

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"user":    userJSON(u),
	})
}

func (s *Server) login(c echo.Context) error {
	var req credentialsBody
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "Username and password required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findByUsername(req.Username)
	if u == nil || u.Password != req.Password {
		return jsonError(c, http.StatusUnauthorized, "Invalid username or password")
	}
	s.startSession(c, u.ID)

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    userJSON(u),
	})
}

func (s *Server) logout(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endSession(c)
	return c.JSON(http.StatusOK, map[string]any{"message": "Logout successful"})
}

func (s *Server) checkAuth(c echo.Context) error {
	u, ok := s.currentUser(c)
	if !ok {
		return c.JSON(http.StatusOK, map[string]any{"authenticated": false})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          userJSON(u),
	})
}

func (s *Server) forgotPassword(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return jsonError(c, http.StatusBadRequest, "Email is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The reply is the same whether or not the address is known.
	if u := s.findByEmail(req.Email); u != nil {
		s.resetTokens[uuid.NewString()] = u.ID
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "If that email is registered, a reset link has been sent",
	})
}

func (s *Server) resetPassword(c echo.Context) error {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "Token and password are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.resetTokens[req.Token]
	u := s.users[id]
	if !ok || u == nil {
		return jsonError(c, http.StatusBadRequest, "Invalid or expired reset token")
	}
	u.Password = req.Password
	delete(s.resetTokens, req.Token)
	return c.JSON(http.StatusOK, map[string]any{"message": "Password has been reset"})
}

func (s *Server) verifyResetToken(c echo.Context) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.resetTokens[req.Token]
	return c.JSON(http.StatusOK, map[string]any{"valid": ok})
}
