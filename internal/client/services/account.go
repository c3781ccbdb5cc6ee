package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/medmate/internal/client/client"
	"github.com/dmitrijs2005/medmate/internal/client/session"
	"github.com/dmitrijs2005/medmate/internal/logging"
)

type AccountAPI interface {
	Profile(ctx context.Context) (*client.User, error)
	UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*client.User, error)
	UploadProfilePicture(ctx context.Context, picture io.Reader, fileName string) (*client.ProfilePicture, error)
	DeleteProfilePicture(ctx context.Context) (*client.MessageResponse, error)
	DeleteChatHistory(ctx context.Context) (*client.DeletionResult, error)
	DeleteDiagnosisHistory(ctx context.Context) (*client.DeletionResult, error)
	RequestAccountDeletionCode(ctx context.Context) (*client.MessageResponse, error)
	ConfirmAccountDeletion(ctx context.Context, code string) (*client.MessageResponse, error)
}

// AccountSession is what account changes need from the session coordinator.
type AccountSession interface {
	Refresh(ctx context.Context) (session.Snapshot, error)
	ClearLocal(ctx context.Context) error
}

// AccountService wraps profile and settings calls and keeps the session
// snapshot in step with them.
type AccountService interface {
	Profile(ctx context.Context) (*client.User, error)
	UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*client.User, error)
	UploadPicture(ctx context.Context, path string) (*client.ProfilePicture, error)
	RemovePicture(ctx context.Context) error
	DeleteChatHistory(ctx context.Context) (int, error)
	DeleteDiagnosisHistory(ctx context.Context) (int, error)
	RequestAccountDeletion(ctx context.Context) (string, error)
	ConfirmAccountDeletion(ctx context.Context, code string) error
}

type accountService struct {
	api     AccountAPI
	session AccountSession
	logger  logging.Logger
}

func NewAccountService(api AccountAPI, session AccountSession, logger logging.Logger) AccountService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &accountService{api: api, session: session, logger: logger}
}

func (s *accountService) Profile(ctx context.Context) (*client.User, error) {
	return s.api.Profile(ctx)
}

func (s *accountService) UpdateProfile(ctx context.Context, update client.ProfileUpdate) (*client.User, error) {
	u, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return u, nil
}

func (s *accountService) UploadPicture(ctx context.Context, path string) (*client.ProfilePicture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open picture: %w", err)
	}
	defer f.Close()

	res, err := s.api.UploadProfilePicture(ctx, f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return res, nil
}

func (s *accountService) RemovePicture(ctx context.Context) error {
	if _, err := s.api.DeleteProfilePicture(ctx); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

func (s *accountService) DeleteChatHistory(ctx context.Context) (int, error) {
	res, err := s.api.DeleteChatHistory(ctx)
	if err != nil {
		return 0, err
	}
	return res.Deleted, nil
}

func (s *accountService) DeleteDiagnosisHistory(ctx context.Context) (int, error) {
	res, err := s.api.DeleteDiagnosisHistory(ctx)
	if err != nil {
		return 0, err
	}
	return res.Deleted, nil
}

// RequestAccountDeletion has the backend email a one-time code and returns
// the server's message.
func (s *accountService) RequestAccountDeletion(ctx context.Context) (string, error) {
	res, err := s.api.RequestAccountDeletionCode(ctx)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// ConfirmAccountDeletion deletes the account and then forgets it locally,
// stored credentials included.
func (s *accountService) ConfirmAccountDeletion(ctx context.Context, code string) error {
	if _, err := s.api.ConfirmAccountDeletion(ctx, code); err != nil {
		return err
	}
	if err := s.session.ClearLocal(ctx); err != nil {
		return fmt.Errorf("account deleted but local data remains: %w", err)
	}
	return nil
}

func (s *accountService) refresh(ctx context.Context) {
	if _, err := s.session.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "session refresh failed", "error", err)
	}
}
