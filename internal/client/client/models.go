package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// User is the account as the backend reports it.
type User struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Credits        *int    `json:"credits,omitempty"`
	CreatedAt      *string `json:"created_at,omitempty"`
}

func (u *User) Validate() error {
	if u == nil {
		return errors.New("user is missing")
	}
	if u.ID == 0 || u.Username == "" {
		return errors.New("user id and username are required")
	}
	return nil
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

type authResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

func (r *authResponse) Validate() error {
	return r.User.Validate()
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me,omitempty"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CheckAuthResponse reports the server-side session.
type CheckAuthResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

func (r *CheckAuthResponse) Validate() error {
	if !r.Authenticated {
		return nil
	}
	return r.User.Validate()
}

type VerifyResetTokenResponse struct {
	Valid bool `json:"valid"`
}

// Disease is one candidate condition from a symptom diagnosis.
type Disease struct {
	Name        string   `json:"name"`
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation"`
	Solutions   []string `json:"solutions"`
	Urgency     string   `json:"urgency"`
}

type SymptomDiagnosis struct {
	Diseases      []Disease `json:"diseases"`
	GeneralAdvice string    `json:"general_advice"`
	Disclaimer    string    `json:"disclaimer"`
}

func (d *SymptomDiagnosis) Validate() error {
	if d.Diseases == nil {
		return errors.New("diseases are missing")
	}
	for i, disease := range d.Diseases {
		if disease.Name == "" {
			return fmt.Errorf("disease %d has no name", i)
		}
		if err := validateConfidence(disease.Confidence); err != nil {
			return fmt.Errorf("disease %q: %w", disease.Name, err)
		}
	}
	return nil
}

type DiagnosisResponse struct {
	Message     string           `json:"message"`
	DiagnosisID int64            `json:"diagnosis_id"`
	Result      SymptomDiagnosis `json:"result"`
}

func (r *DiagnosisResponse) Validate() error {
	return r.Result.Validate()
}

// Condition is one finding from an image diagnosis.
type Condition struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Note       string  `json:"note,omitempty"`
}

type ImageDiagnosis struct {
	Observation            string      `json:"observation"`
	Conditions             []Condition `json:"conditions"`
	Recommendation         string      `json:"recommendation"`
	ProfessionalEvaluation string      `json:"professional_evaluation"`
	Disclaimer             string      `json:"disclaimer,omitempty"`
}

func (d *ImageDiagnosis) Validate() error {
	if d.Conditions == nil {
		return errors.New("conditions are missing")
	}
	for _, c := range d.Conditions {
		if err := validateConfidence(c.Confidence); err != nil {
			return fmt.Errorf("condition %q: %w", c.Name, err)
		}
	}
	return nil
}

type ImageDiagnosisResponse struct {
	Message     string         `json:"message"`
	DiagnosisID int64          `json:"diagnosis_id"`
	Result      ImageDiagnosis `json:"result"`
	ImageURL    string         `json:"image_url,omitempty"`
}

func (r *ImageDiagnosisResponse) Validate() error {
	return r.Result.Validate()
}

// DiagnosisRecord is a stored diagnosis. Result keeps the raw JSON since text
// and image diagnoses have different shapes; see Symptom and Image.
type DiagnosisRecord struct {
	ID        int64           `json:"id"`
	Symptoms  string          `json:"symptoms"`
	Result    json.RawMessage `json:"result"`
	ImageURL  *string         `json:"image_url"`
	CreatedAt string          `json:"created_at"`
}

// Symptom decodes Result as a text diagnosis.
func (r DiagnosisRecord) Symptom() (*SymptomDiagnosis, error) {
	var d SymptomDiagnosis
	if err := json.Unmarshal(r.Result, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Image decodes Result as an image diagnosis.
func (r DiagnosisRecord) Image() (*ImageDiagnosis, error) {
	var d ImageDiagnosis
	if err := json.Unmarshal(r.Result, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Page is the pagination envelope shared by history listings.
type Page struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
}

type DiagnosisHistoryPage struct {
	Diagnoses []DiagnosisRecord `json:"diagnoses"`
	Page
}

func (p *DiagnosisHistoryPage) Validate() error {
	if p.Diagnoses == nil {
		return errors.New("diagnoses are missing")
	}
	return nil
}

type ChatReply struct {
	Message   string `json:"message"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

func (r *ChatReply) Validate() error {
	if r.Response == "" {
		return errors.New("chat response is empty")
	}
	return nil
}

type ChatRecord struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Response  string `json:"response"`
	CreatedAt string `json:"created_at"`
}

type ChatHistoryPage struct {
	Chats []ChatRecord `json:"chats"`
	Page
}

func (p *ChatHistoryPage) Validate() error {
	if p.Chats == nil {
		return errors.New("chats are missing")
	}
	return nil
}

type Coordinates struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
}

func (c *Coordinates) Validate() error {
	return validateCoordinates(c.Latitude, c.Longitude)
}

type Hospital struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Rating    float64 `json:"rating"`
	OpenNow   *bool   `json:"open_now"`
	PlaceID   *string `json:"place_id"`
}

type HospitalList struct {
	Hospitals []Hospital `json:"hospitals"`
	Count     int        `json:"count"`
}

func (l *HospitalList) Validate() error {
	if l.Hospitals == nil {
		return errors.New("hospitals are missing")
	}
	return nil
}

type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// HospitalDetails is the place-details record. The backend returns an empty
// object when the place is unknown.
type HospitalDetails struct {
	Name                 string        `json:"name"`
	FormattedAddress     string        `json:"formatted_address"`
	FormattedPhoneNumber string        `json:"formatted_phone_number"`
	Rating               float64       `json:"rating"`
	Website              string        `json:"website"`
	OpeningHours         *OpeningHours `json:"opening_hours,omitempty"`
}

type VoiceText struct {
	Message string `json:"message"`
	Text    string `json:"text"`
	Status  string `json:"status"`
}

type VoiceStatus struct {
	VoiceRecognition bool   `json:"voice_recognition"`
	TextToSpeech     bool   `json:"text_to_speech"`
	Environment      string `json:"environment"`
	Note             string `json:"note"`
}

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	AIProvider string            `json:"ai_provider"`
	Services   map[string]string `json:"services"`
}

func (h *HealthStatus) Validate() error {
	if h.Status == "" {
		return errors.New("health status is empty")
	}
	return nil
}

type profileResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

func (r *profileResponse) Validate() error {
	return r.User.Validate()
}

// ProfileUpdate carries only the fields to change.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type ProfilePicture struct {
	Message        string `json:"message"`
	ProfilePicture string `json:"profile_picture"`
}

type DeletionResult struct {
	Message string `json:"message"`
	Deleted int    `json:"deleted"`
}

type feedbackRequest struct {
	Message string `json:"message"`
	Rating  int    `json:"rating,omitempty"`
}

// CreditsPackage is a purchasable bundle. Price is in the currency's minor
// unit (paise for INR).
type CreditsPackage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
}

type creditsPackagesResponse struct {
	Packages []CreditsPackage `json:"packages"`
}

func (r *creditsPackagesResponse) Validate() error {
	if r.Packages == nil {
		return errors.New("packages are missing")
	}
	for _, p := range r.Packages {
		if p.ID == "" || p.Credits <= 0 || p.Price < 0 || p.Currency == "" {
			return fmt.Errorf("package %q is malformed", p.ID)
		}
	}
	return nil
}

// PaymentOrder is what the checkout widget needs to take a payment.
type PaymentOrder struct {
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	KeyID     string `json:"key_id"`
	PackageID string `json:"package_id"`
}

func (o *PaymentOrder) Validate() error {
	if o.OrderID == "" || o.Amount <= 0 || o.Currency == "" {
		return errors.New("payment order is incomplete")
	}
	return nil
}

// PaymentVerification is the triple the checkout widget hands back.
type PaymentVerification struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type PaymentResult struct {
	Success      bool   `json:"success"`
	CreditsAdded int    `json:"credits_added"`
	Credits      *int   `json:"credits,omitempty"`
	Message      string `json:"message,omitempty"`
}

func (r *PaymentResult) Validate() error {
	if !r.Success && r.CreditsAdded != 0 {
		return errors.New("unverified payment reports credits")
	}
	return nil
}

func validateConfidence(c float64) error {
	if c < 0 || c > 100 {
		return fmt.Errorf("confidence %v out of range 0..100", c)
	}
	return nil
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("coordinates %v,%v out of range", lat, lng)
	}
	return nil
}
