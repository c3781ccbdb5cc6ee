package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/medmate/internal/client/client"
	"github.com/dmitrijs2005/medmate/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_UpdateProfileRefreshesSession(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 0)
	svc := NewAccountService(e.gateway, e.session, nil)

	email := "new@example.com"
	u, err := svc.UpdateProfile(ctx, client.ProfileUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, u.Email)
	assert.Equal(t, email, e.session.Snapshot().User.Email)
}

func TestAccount_Picture(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 0)
	svc := NewAccountService(e.gateway, e.session, nil)

	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	res, err := svc.UploadPicture(ctx, path)
	require.NoError(t, err)
	assert.Contains(t, res.ProfilePicture, "me.png")
	require.NotNil(t, e.session.Snapshot().User.ProfilePicture)

	require.NoError(t, svc.RemovePicture(ctx))
	assert.Nil(t, e.session.Snapshot().User.ProfilePicture)

	_, err = svc.UploadPicture(ctx, filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestAccount_DeleteHistories(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 2)
	svc := NewAccountService(e.gateway, e.session, nil)

	_, err := e.gateway.Diagnose(ctx, "fever")
	require.NoError(t, err)
	_, err = e.gateway.SendChatMessage(ctx, "hello")
	require.NoError(t, err)
	_, err = e.gateway.SendChatMessage(ctx, "again")
	require.NoError(t, err)

	n, err := svc.DeleteChatHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.DeleteDiagnosisHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAccount_DeletionNeedsEmailedCode(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 0)
	svc := NewAccountService(e.gateway, e.session, nil)

	msg, err := svc.RequestAccountDeletion(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, msg)

	err = svc.ConfirmAccountDeletion(ctx, "000000x")
	require.Error(t, err)
	assert.Equal(t, session.StateAuthenticated, e.session.Snapshot().State)

	require.NoError(t, svc.ConfirmAccountDeletion(ctx, e.fake.DeletionCode("alice")))
	assert.Equal(t, session.StateAnonymous, e.session.Snapshot().State)
	assert.False(t, e.fake.UserExists("alice"))
}
