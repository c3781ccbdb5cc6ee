package fakeapi

import (
	"time"
)

// AddUser creates an account directly and returns its id.
func (s *Server) AddUser(username, email, password string, credits int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &user{
		ID:        s.id(),
		Username:  username,
		Email:     email,
		Password:  password,
		Credits:   credits,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	return u.ID
}

// SetPassword changes a user's password behind the client's back.
func (s *Server) SetPassword(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.findByUsername(username); u != nil {
		u.Password = password
	}
}

// Credits returns the balance of username, or -1 when unknown.
func (s *Server) Credits(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.findByUsername(username); u != nil {
		return u.Credits
	}
	return -1
}

// SetCredits overwrites the balance of username.
func (s *Server) SetCredits(username string, credits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.findByUsername(username); u != nil {
		u.Credits = credits
	}
}

// UserExists reports whether username still has an account.
func (s *Server) UserExists(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByUsername(username) != nil
}

// DeletionCode returns the code that would have been emailed to username.
func (s *Server) DeletionCode(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.findByUsername(username); u != nil {
		return s.deletionCodes[u.ID]
	}
	return ""
}

// ResetToken returns the password reset token issued for email.
func (s *Server) ResetToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, id := range s.resetTokens {
		if u, ok := s.users[id]; ok && u.Email == email {
			return token
		}
	}
	return ""
}

// DropSessions forgets every server-side session, as a backend restart would.
func (s *Server) DropSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]int64)
}

// Feedback returns the feedback messages received so far.
func (s *Server) Feedback() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.feedback...)
}

// Calls returns how many requests reached path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// SetDelay holds every request to path for d before handling it.
func (s *Server) SetDelay(path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d <= 0 {
		delete(s.delays, path)
		return
	}
	s.delays[path] = d
}

// Fail makes every request to path answer status with an {"error": message}
// body until ClearFailure is called.
func (s *Server) Fail(path string, status int, message string) {
	s.setFailure(path, status, map[string]any{"error": message}, -1)
}

// FailOnce makes only the next request to path fail.
func (s *Server) FailOnce(path string, status int, message string) {
	s.setFailure(path, status, map[string]any{"error": message}, 1)
}

// FailWithBody is Fail with an arbitrary body, e.g. one without "error".
func (s *Server) FailWithBody(path string, status int, body map[string]any) {
	s.setFailure(path, status, body, -1)
}

func (s *Server) ClearFailure(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

func (s *Server) setFailure(path string, status int, body map[string]any, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = &failure{Status: status, Body: body, Remaining: remaining}
}

func (s *Server) findByUsername(username string) *user {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (s *Server) findByEmail(email string) *user {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}
