package client

import (
	"context"
	"io"
)

// Client is the full set of backend capabilities. Gateway is the HTTP
// implementation; callers that only need a slice of it declare their own
// narrower interface.
type Client interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, username, password string, remember bool) (*User, error)
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) (*CheckAuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (*MessageResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*MessageResponse, error)
	VerifyResetToken(ctx context.Context, token string) (*VerifyResetTokenResponse, error)

	Diagnose(ctx context.Context, symptoms string) (*DiagnosisResponse, error)
	DiagnoseImage(ctx context.Context, image io.Reader, fileName, symptoms string) (*ImageDiagnosisResponse, error)
	DiagnosisHistory(ctx context.Context, page, perPage int) (*DiagnosisHistoryPage, error)

	SendChatMessage(ctx context.Context, text string) (*ChatReply, error)
	ChatHistory(ctx context.Context, page, perPage int) (*ChatHistoryPage, error)

	GeocodeCity(ctx context.Context, city string) (*Coordinates, error)
	FindNearbyHospitals(ctx context.Context, lat, lng float64, radius int) (*HospitalList, error)
	HospitalDetails(ctx context.Context, placeID string) (*HospitalDetails, error)

	VoiceToText(ctx context.Context, text string) (*VoiceText, error)
	TextToSpeech(ctx context.Context, text string) (*VoiceText, error)
	VoiceStatus(ctx context.Context) (*VoiceStatus, error)
	Health(ctx context.Context) (*HealthStatus, error)

	Profile(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error)
	UploadProfilePicture(ctx context.Context, picture io.Reader, fileName string) (*ProfilePicture, error)
	DeleteProfilePicture(ctx context.Context) (*MessageResponse, error)
	DeleteChatHistory(ctx context.Context) (*DeletionResult, error)
	DeleteDiagnosisHistory(ctx context.Context) (*DeletionResult, error)
	RequestAccountDeletionCode(ctx context.Context) (*MessageResponse, error)
	ConfirmAccountDeletion(ctx context.Context, code string) (*MessageResponse, error)

	SendFeedback(ctx context.Context, message string, rating int) (*MessageResponse, error)

	CreditsPackages(ctx context.Context) ([]CreditsPackage, error)
	CreatePaymentOrder(ctx context.Context, packageID string) (*PaymentOrder, error)
	VerifyPayment(ctx context.Context, v PaymentVerification) (*PaymentResult, error)
}

var _ Client = (*Gateway)(nil)
