package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
)

func (g *Gateway) Profile(ctx context.Context) (*User, error) {
	var resp profileResponse
	if err := g.get(ctx, "/api/profile", g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (g *Gateway) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	if update.Username == nil && update.Email == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}
	if update.Username != nil && strings.TrimSpace(*update.Username) == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrInvalidArgument)
	}
	var resp profileResponse
	req := Request{Method: http.MethodPut, Path: "/api/profile", Body: update, Timeout: g.timeouts.Default}
	if err := g.exec.Do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// UploadProfilePicture sends picture as the multipart field "picture".
func (g *Gateway) UploadProfilePicture(ctx context.Context, picture io.Reader, fileName string) (*ProfilePicture, error) {
	if picture == nil || fileName == "" {
		return nil, fmt.Errorf("%w: picture is required", ErrInvalidArgument)
	}
	if !IsSupportedImage(fileName) {
		return nil, fmt.Errorf("%w: unsupported image type %q", ErrInvalidArgument, path.Ext(fileName))
	}
	req := Request{
		Method:  http.MethodPost,
		Path:    "/api/profile/picture",
		Form:    &Form{Files: []FormFile{{Field: "picture", FileName: fileName, Content: picture}}},
		Timeout: g.timeouts.Upload,
	}
	var resp ProfilePicture
	if err := g.exec.Do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) DeleteProfilePicture(ctx context.Context) (*MessageResponse, error) {
	return g.delete(ctx, "/api/profile/picture")
}

func (g *Gateway) DeleteChatHistory(ctx context.Context) (*DeletionResult, error) {
	var resp DeletionResult
	if err := g.exec.Do(ctx, Request{Method: http.MethodDelete, Path: "/api/settings/delete-chat-history", Timeout: g.timeouts.Default}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) DeleteDiagnosisHistory(ctx context.Context) (*DeletionResult, error) {
	var resp DeletionResult
	if err := g.exec.Do(ctx, Request{Method: http.MethodDelete, Path: "/api/settings/delete-diagnosis-history", Timeout: g.timeouts.Default}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RequestAccountDeletionCode asks the backend to email a one-time code that
// ConfirmAccountDeletion then consumes.
func (g *Gateway) RequestAccountDeletionCode(ctx context.Context) (*MessageResponse, error) {
	var resp MessageResponse
	if err := g.post(ctx, "/api/settings/request-account-deletion", nil, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) ConfirmAccountDeletion(ctx context.Context, code string) (*MessageResponse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: confirmation code is required", ErrInvalidArgument)
	}
	var resp MessageResponse
	if err := g.post(ctx, "/api/settings/confirm-account-deletion", map[string]string{"code": code}, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) delete(ctx context.Context, path string) (*MessageResponse, error) {
	var resp MessageResponse
	if err := g.exec.Do(ctx, Request{Method: http.MethodDelete, Path: path, Timeout: g.timeouts.Default}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
