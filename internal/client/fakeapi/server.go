// Package fakeapi is an in-process stand-in for the MedMate backend. It keeps
// everything in memory, speaks the same JSON shapes as the real service and
// lets tests inject latency and failures per path.
package fakeapi

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	sessionCookieName = "session"
	// DiagnosisCost is what one text or image diagnosis charges.
	DiagnosisCost = 1
	// DefaultCredits is what a fresh registration starts with.
	DefaultCredits = 3
	// KeyID is reported on every payment order.
	KeyID = "rzp_test_medmate"
)

type user struct {
	ID             int64
	Username       string
	Email          string
	Password       string
	ProfilePicture *string
	Credits        int
	CreatedAt      time.Time
}

type diagnosis struct {
	ID        int64
	Symptoms  string
	Result    any
	ImageURL  *string
	CreatedAt time.Time
}

type chat struct {
	ID        int64
	Message   string
	Response  string
	CreatedAt time.Time
}

type order struct {
	ID        string
	UserID    int64
	PackageID string
	Amount    int64
	Currency  string
	Paid      bool
}

type failure struct {
	Status int
	Body   map[string]any
	// Remaining is how many more requests fail; negative means forever.
	Remaining int
}

// Server holds the fake backend state. All methods are safe for concurrent
// use.
type Server struct {
	mu sync.Mutex

	echo   *echo.Echo
	secret []byte

	nextID        int64
	users         map[int64]*user
	sessions      map[string]int64
	diagnoses     map[int64][]diagnosis
	chats         map[int64][]chat
	orders        map[string]*order
	deletionCodes map[int64]string
	resetTokens   map[string]int64
	feedback      []string

	delays   map[string]time.Duration
	failures map[string]*failure
	calls    map[string]int
}

type Option func(*Server)

// WithRequestLog adds echo's request logger.
func WithRequestLog() Option {
	return func(s *Server) { s.echo.Use(middleware.Logger()) }
}

func New(opts ...Option) *Server {
	s := &Server{
		echo:          echo.New(),
		secret:        []byte(uuid.NewString()),
		users:         make(map[int64]*user),
		sessions:      make(map[string]int64),
		diagnoses:     make(map[int64][]diagnosis),
		chats:         make(map[int64][]chat),
		orders:        make(map[string]*order),
		deletionCodes: make(map[int64]string),
		resetTokens:   make(map[string]int64),
		delays:        make(map[string]time.Duration),
		failures:      make(map[string]*failure),
		calls:         make(map[string]int),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.instrument)
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler to mount, e.g. under httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until the server is shut down. It returns
// http.ErrServerClosed after Shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.POST("/api/register", s.register)
	e.POST("/api/login", s.login)
	e.POST("/api/logout", s.logout)
	e.GET("/api/check-auth", s.checkAuth)
	e.POST("/api/forgot-password", s.forgotPassword)
	e.POST("/api/reset-password", s.resetPassword)
	e.POST("/api/verify-reset-token", s.verifyResetToken)

	e.POST("/api/diagnose", s.diagnose, s.requireAuth)
	e.POST("/api/diagnose-image", s.diagnoseImage, s.requireAuth)
	e.GET("/api/diagnosis-history", s.diagnosisHistory, s.requireAuth)
	e.POST("/api/chat", s.chat, s.requireAuth)
	e.GET("/api/chat-history", s.chatHistory, s.requireAuth)

	e.POST("/api/geocode-city", s.geocodeCity)
	e.POST("/api/nearby-hospitals", s.nearbyHospitals)
	e.GET("/api/hospital-details/:place_id", s.hospitalDetails)

	e.POST("/api/voice-to-text", s.voiceToText, s.requireAuth)
	e.POST("/api/text-to-speech", s.textToSpeech, s.requireAuth)
	e.GET("/api/voice/status", s.voiceStatus)
	e.GET("/api/health", s.health)

	e.GET("/api/profile", s.profile, s.requireAuth)
	e.PUT("/api/profile", s.updateProfile, s.requireAuth)
	e.POST("/api/profile/picture", s.uploadPicture, s.requireAuth)
	e.DELETE("/api/profile/picture", s.deletePicture, s.requireAuth)
	e.DELETE("/api/settings/delete-chat-history", s.deleteChatHistory, s.requireAuth)
	e.DELETE("/api/settings/delete-diagnosis-history", s.deleteDiagnosisHistory, s.requireAuth)
	e.POST("/api/settings/request-account-deletion", s.requestAccountDeletion, s.requireAuth)
	e.POST("/api/settings/confirm-account-deletion", s.confirmAccountDeletion, s.requireAuth)
	e.POST("/api/feedback", s.sendFeedback, s.requireAuth)

	e.GET("/api/credits/packages", s.creditsPackages)
	e.POST("/api/payment/create-order", s.createOrder, s.requireAuth)
	e.POST("/api/payment/verify", s.verifyPayment, s.requireAuth)
}

// instrument counts calls and applies injected delays and failures.
func (s *Server) instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path

		s.mu.Lock()
		s.calls[path]++
		delay := s.delays[path]
		var injected *failure
		if f, ok := s.failures[path]; ok {
			copied := *f
			injected = &copied
			if f.Remaining > 0 {
				f.Remaining--
				if f.Remaining == 0 {
					delete(s.failures, path)
				}
			}
		}
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-c.Request().Context().Done():
				return nil
			}
		}
		if injected != nil {
			return c.JSON(injected.Status, injected.Body)
		}
		return next(c)
	}
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := s.currentUser(c); !ok {
			return jsonError(c, http.StatusUnauthorized, "Authentication required")
		}
		return next(c)
	}
}

// currentUser resolves the session cookie. The returned pointer must only be
// used with s.mu held.
func (s *Server) currentUser(c echo.Context) (*user, bool) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[cookie.Value]
	if !ok {
		return nil, false
	}
	u, ok := s.users[id]
	return u, ok
}

func (s *Server) userID(c echo.Context) int64 {
	u, _ := s.currentUser(c)
	if u == nil {
		return 0
	}
	return u.ID
}

func (s *Server) startSession(c echo.Context, userID int64) {
	token := uuid.NewString()
	s.sessions[token] = userID
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

func (s *Server) endSession(c echo.Context) {
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		delete(s.sessions, cookie.Value)
	}
	c.SetCookie(&http.Cookie{Name: sessionCookieName, Value: "", Path: "/", MaxAge: -1})
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// Sign returns the checkout signature for an order and payment, the value a
// real payment widget hands back after a successful charge.
func (s *Server) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Server) validSignature(orderID, paymentID, signature string) bool {
	want, err := hex.DecodeString(s.Sign(orderID, paymentID))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(want, got)
}

func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{"error": message})
}
