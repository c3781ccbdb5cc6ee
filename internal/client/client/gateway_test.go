package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/medmate/internal/client/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, timeouts Timeouts) (*Gateway, *fakeapi.Server) {
	t.Helper()
	fake := fakeapi.New()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	exec, err := NewExecutor(srv.URL)
	require.NoError(t, err)
	return NewGateway(exec, timeouts), fake
}

func loggedIn(t *testing.T, timeouts Timeouts, credits int) (*Gateway, *fakeapi.Server) {
	t.Helper()
	g, fake := newTestGateway(t, timeouts)
	fake.AddUser("alice", "alice@example.com", "pw", credits)
	_, err := g.Login(context.Background(), "alice", "pw", false)
	require.NoError(t, err)
	return g, fake
}

func TestGateway_AuthLifecycle(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGateway(t, Timeouts{})

	status, err := g.CheckAuth(ctx)
	require.NoError(t, err)
	assert.False(t, status.Authenticated)

	u, err := g.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	status, err = g.CheckAuth(ctx)
	require.NoError(t, err)
	require.True(t, status.Authenticated)
	assert.Equal(t, u.ID, status.User.ID)

	require.NoError(t, g.Logout(ctx))

	status, err = g.CheckAuth(ctx)
	require.NoError(t, err)
	assert.False(t, status.Authenticated)

	u, err = g.Login(ctx, "alice", "pw", true)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestGateway_CheckAuthIsIdempotent(t *testing.T) {
	ctx := context.Background()
	g, fake := loggedIn(t, Timeouts{}, 3)

	first, err := g.CheckAuth(ctx)
	require.NoError(t, err)
	second, err := g.CheckAuth(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, fake.Calls("/api/check-auth"))
	assert.Equal(t, 3, fake.Credits("alice"))
}

func TestGateway_LoginErrors(t *testing.T) {
	ctx := context.Background()
	g, fake := newTestGateway(t, Timeouts{})
	fake.AddUser("alice", "alice@example.com", "pw", 0)

	_, err := g.Login(ctx, "alice", "wrong", false)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid username or password", err.Error())

	_, err = g.Register(ctx, "alice", "other@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "Username already exists", err.Error())
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))

	_, err = g.Login(ctx, "", "pw", false)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, fake.Calls("/api/login"))
}

func TestGateway_PasswordReset(t *testing.T) {
	ctx := context.Background()
	g, fake := newTestGateway(t, Timeouts{})
	fake.AddUser("alice", "alice@example.com", "old", 0)

	_, err := g.ForgotPassword(ctx, "alice@example.com")
	require.NoError(t, err)
	token := fake.ResetToken("alice@example.com")
	require.NotEmpty(t, token)

	v, err := g.VerifyResetToken(ctx, token)
	require.NoError(t, err)
	assert.True(t, v.Valid)

	_, err = g.ResetPassword(ctx, token, "new")
	require.NoError(t, err)

	v, err = g.VerifyResetToken(ctx, token)
	require.NoError(t, err)
	assert.False(t, v.Valid)

	_, err = g.Login(ctx, "alice", "new", false)
	require.NoError(t, err)
}

func TestGateway_DiagnoseRequiresSession(t *testing.T) {
	g, _ := newTestGateway(t, Timeouts{})

	res, err := g.Diagnose(context.Background(), "fever")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Authentication required", err.Error())
	assert.Nil(t, res)
}

func TestGateway_Diagnose(t *testing.T) {
	ctx := context.Background()
	g, fake := loggedIn(t, Timeouts{}, 2)

	res, err := g.Diagnose(ctx, "fever and cough for two days")
	require.NoError(t, err)
	require.NotEmpty(t, res.Result.Diseases)
	for _, d := range res.Result.Diseases {
		assert.NotEmpty(t, d.Name)
		assert.GreaterOrEqual(t, d.Confidence, 0.0)
		assert.LessOrEqual(t, d.Confidence, 100.0)
	}
	assert.NotZero(t, res.DiagnosisID)
	assert.Equal(t, 1, fake.Credits("alice"))

	_, err = g.Diagnose(ctx, "   ")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGateway_DiagnoseOutOfCredits(t *testing.T) {
	g, fake := loggedIn(t, Timeouts{}, 0)

	_, err := g.Diagnose(context.Background(), "headache")
	require.Error(t, err)
	assert.True(t, IsInsufficientCredits(err))
	assert.Equal(t, http.StatusPaymentRequired, StatusCode(err))
	assert.Equal(t, 0, fake.Credits("alice"))
}

func TestGateway_DiagnoseImage(t *testing.T) {
	ctx := context.Background()
	g, _ := loggedIn(t, Timeouts{}, 1)

	res, err := g.DiagnoseImage(ctx, strings.NewReader("fake image"), "arm.jpg", "itchy")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Result.Conditions)
	assert.NotEmpty(t, res.ImageURL)

	history, err := g.DiagnosisHistory(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, history.Diagnoses, 1)
	img, err := history.Diagnoses[0].Image()
	require.NoError(t, err)
	assert.Equal(t, res.Result.Observation, img.Observation)
}

func TestGateway_DiagnoseImageStallTimesOut(t *testing.T) {
	g, fake := loggedIn(t, Timeouts{DiagnoseImage: 100 * time.Millisecond}, 1)
	fake.SetDelay("/api/diagnose-image", 3*time.Second)

	res, err := g.DiagnoseImage(context.Background(), strings.NewReader("x"), "arm.png", "")
	require.ErrorIs(t, err, ErrTimeout)
	assert.Nil(t, res)
}

func TestGateway_DiagnoseImageRejectsUnsupportedType(t *testing.T) {
	g, fake := loggedIn(t, Timeouts{}, 1)

	_, err := g.DiagnoseImage(context.Background(), strings.NewReader("x"), "notes.pdf", "")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, fake.Calls("/api/diagnose-image"))
}

func TestGateway_DiagnosisHistoryPaging(t *testing.T) {
	ctx := context.Background()
	g, _ := loggedIn(t, Timeouts{}, 12)
	for i := 0; i < 12; i++ {
		_, err := g.Diagnose(ctx, "headache")
		require.NoError(t, err)
	}

	first, err := g.DiagnosisHistory(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, first.Diagnoses, 10)
	assert.Equal(t, 12, first.Total)
	assert.Equal(t, 2, first.Pages)
	assert.Equal(t, 1, first.CurrentPage)

	second, err := g.DiagnosisHistory(ctx, 2, 10)
	require.NoError(t, err)
	assert.Len(t, second.Diagnoses, 2)

	sym, err := second.Diagnoses[0].Symptom()
	require.NoError(t, err)
	assert.NotEmpty(t, sym.Diseases)
}

func TestGateway_Chat(t *testing.T) {
	ctx := context.Background()
	g, _ := loggedIn(t, Timeouts{}, 0)

	reply, err := g.SendChatMessage(ctx, "Is ibuprofen ok for a headache?")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Response)

	history, err := g.ChatHistory(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, history.Chats, 1)
	assert.Equal(t, "Is ibuprofen ok for a headache?", history.Chats[0].Message)

	_, err = g.SendChatMessage(ctx, "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGateway_Hospitals(t *testing.T) {
	ctx := context.Background()
	g, fake := newTestGateway(t, Timeouts{})

	loc, err := g.GeocodeCity(ctx, "Gurugram")
	require.NoError(t, err)
	assert.InDelta(t, 28.4595, loc.Latitude, 0.0001)

	_, err = g.GeocodeCity(ctx, "Atlantis")
	require.Error(t, err)
	assert.Equal(t, "City not found", err.Error())
	assert.Equal(t, http.StatusNotFound, StatusCode(err))

	list, err := g.FindNearbyHospitals(ctx, loc.Latitude, loc.Longitude, 0)
	require.NoError(t, err)
	require.Equal(t, len(list.Hospitals), list.Count)
	require.NotEmpty(t, list.Hospitals)
	require.NotNil(t, list.Hospitals[0].PlaceID)

	details, err := g.HospitalDetails(ctx, *list.Hospitals[0].PlaceID)
	require.NoError(t, err)
	assert.Equal(t, list.Hospitals[0].Name, details.Name)

	unknown, err := g.HospitalDetails(ctx, "no/such place")
	require.NoError(t, err)
	assert.Empty(t, unknown.Name)

	_, err = g.FindNearbyHospitals(ctx, 91, 0, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, fake.Calls("/api/nearby-hospitals"))
}

func TestGateway_VoiceAndHealth(t *testing.T) {
	ctx := context.Background()
	g, _ := loggedIn(t, Timeouts{}, 0)

	text, err := g.VoiceToText(ctx, "I have a headache")
	require.NoError(t, err)
	assert.Equal(t, "I have a headache", text.Text)

	speech, err := g.TextToSpeech(ctx, "Drink water")
	require.NoError(t, err)
	assert.Equal(t, "success", speech.Status)

	status, err := g.VoiceStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.TextToSpeech)

	health, err := g.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
}

func TestGateway_Profile(t *testing.T) {
	ctx := context.Background()
	g, _ := loggedIn(t, Timeouts{}, 0)

	u, err := g.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	name := "alice2"
	u, err = g.UpdateProfile(ctx, ProfileUpdate{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "alice2", u.Username)

	_, err = g.UpdateProfile(ctx, ProfileUpdate{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	pic, err := g.UploadProfilePicture(ctx, strings.NewReader("img"), "me.png")
	require.NoError(t, err)
	assert.NotEmpty(t, pic.ProfilePicture)

	u, err = g.Profile(ctx)
	require.NoError(t, err)
	require.NotNil(t, u.ProfilePicture)

	_, err = g.DeleteProfilePicture(ctx)
	require.NoError(t, err)
	u, err = g.Profile(ctx)
	require.NoError(t, err)
	assert.Nil(t, u.ProfilePicture)
}

func TestGateway_HistoryDeletion(t *testing.T) {
	ctx := context.Background()
	g, _ := loggedIn(t, Timeouts{}, 1)

	_, err := g.SendChatMessage(ctx, "hi")
	require.NoError(t, err)
	_, err = g.Diagnose(ctx, "fever")
	require.NoError(t, err)

	res, err := g.DeleteChatHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)

	res, err = g.DeleteDiagnosisHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)

	chats, err := g.ChatHistory(ctx, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, chats.Chats)
}

func TestGateway_AccountDeletion(t *testing.T) {
	ctx := context.Background()
	g, fake := loggedIn(t, Timeouts{}, 0)

	_, err := g.RequestAccountDeletionCode(ctx)
	require.NoError(t, err)

	_, err = g.ConfirmAccountDeletion(ctx, "not-the-code")
	require.Error(t, err)
	assert.True(t, fake.UserExists("alice"))

	_, err = g.ConfirmAccountDeletion(ctx, fake.DeletionCode("alice"))
	require.NoError(t, err)
	assert.False(t, fake.UserExists("alice"))

	status, err := g.CheckAuth(ctx)
	require.NoError(t, err)
	assert.False(t, status.Authenticated)
}

func TestGateway_Feedback(t *testing.T) {
	ctx := context.Background()
	g, fake := loggedIn(t, Timeouts{}, 0)

	_, err := g.SendFeedback(ctx, "Very helpful", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Very helpful"}, fake.Feedback())

	_, err = g.SendFeedback(ctx, "No rating", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Very helpful", "No rating"}, fake.Feedback())

	for _, rating := range []int{-1, 9} {
		_, err = g.SendFeedback(ctx, "x", rating)
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "between 1 and 5, or 0 to skip")
	}
	assert.Len(t, fake.Feedback(), 2)
}

func TestGateway_Payments(t *testing.T) {
	ctx := context.Background()
	g, fake := loggedIn(t, Timeouts{}, 0)

	packages, err := g.CreditsPackages(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, packages)

	order, err := g.CreatePaymentOrder(ctx, packages[0].ID)
	require.NoError(t, err)
	assert.Equal(t, packages[0].Price, order.Amount)
	assert.Equal(t, fakeapi.KeyID, order.KeyID)

	tampered, err := g.VerifyPayment(ctx, PaymentVerification{
		OrderID:   order.OrderID,
		PaymentID: "pay_1",
		Signature: fake.Sign(order.OrderID, "pay_2"),
	})
	require.NoError(t, err)
	assert.False(t, tampered.Success)
	assert.Zero(t, tampered.CreditsAdded)
	assert.Equal(t, 0, fake.Credits("alice"))

	ok, err := g.VerifyPayment(ctx, PaymentVerification{
		OrderID:   order.OrderID,
		PaymentID: "pay_1",
		Signature: fake.Sign(order.OrderID, "pay_1"),
	})
	require.NoError(t, err)
	assert.True(t, ok.Success)
	assert.Equal(t, packages[0].Credits, ok.CreditsAdded)
	assert.Equal(t, packages[0].Credits, fake.Credits("alice"))

	_, err = g.CreatePaymentOrder(ctx, "nope")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestGateway_PropagatesExecutorErrorsUnchanged(t *testing.T) {
	g, fake := loggedIn(t, Timeouts{}, 1)
	fake.Fail("/api/chat", http.StatusInternalServerError, "AI provider unavailable")

	_, err := g.SendChatMessage(context.Background(), "hi")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, &APIError{Status: http.StatusInternalServerError, Message: "AI provider unavailable"}, apiErr)
}
