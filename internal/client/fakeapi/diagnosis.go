package fakeapi

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const codeInsufficientCredits = "INSUFFICIENT_CREDITS"

var allowedImageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".webp": true,
}

func symptomResult(symptoms string) map[string]any {
	lower := strings.ToLower(symptoms)
	diseases := []map[string]any{}
	switch {
	case strings.Contains(lower, "fever") || strings.Contains(lower, "cough"):
		diseases = append(diseases,
			map[string]any{
				"name":        "Common Cold",
				"confidence":  70,
				"explanation": "Fever and cough are typical of a viral upper respiratory infection.",
				"solutions":   []string{"Rest", "Stay hydrated"},
				"urgency":     "low",
			},
			map[string]any{
				"name":        "Influenza",
				"confidence":  45,
				"explanation": "Influenza presents with fever, cough and body aches.",
				"solutions":   []string{"Rest", "See a doctor if symptoms worsen"},
				"urgency":     "medium",
			})
	case strings.Contains(lower, "headache"):
		diseases = append(diseases, map[string]any{
			"name":        "Tension Headache",
			"confidence":  60,
			"explanation": "Headaches without other symptoms are often tension related.",
			"solutions":   []string{"Rest", "Reduce screen time"},
			"urgency":     "low",
		})
	}
	return map[string]any{
		"diseases":       diseases,
		"general_advice": "Monitor your symptoms and consult a healthcare professional.",
		"disclaimer":     "This is not a medical diagnosis.",
	}
}

// charge takes DiagnosisCost from u and reports whether the balance covered
// it. Callers hold s.mu.
func charge(u *user) bool {
	if u.Credits < DiagnosisCost {
		return false
	}
	u.Credits -= DiagnosisCost
	return true
}

func insufficientCredits(c echo.Context) error {
	return c.JSON(http.StatusPaymentRequired, map[string]any{
		"error": "Insufficient credits. Please purchase more credits to continue.",
		"code":  codeInsufficientCredits,
	})
}

func (s *Server) diagnose(c echo.Context) error {
	var req struct {
		Symptoms string `json:"symptoms"`
	}
	if err := c.Bind(&req); err != nil || req.Symptoms == "" {
		return jsonError(c, http.StatusBadRequest, "Symptoms are required")
	}

	u, _ := s.currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !charge(u) {
		return insufficientCredits(c)
	}

	d := diagnosis{
		ID:        s.id(),
		Symptoms:  req.Symptoms,
		Result:    symptomResult(req.Symptoms),
		CreatedAt: time.Now().UTC(),
	}
	s.diagnoses[u.ID] = append(s.diagnoses[u.ID], d)

	return c.JSON(http.StatusOK, map[string]any{
		"message":      "Diagnosis completed",
		"diagnosis_id": d.ID,
		"result":       d.Result,
	})
}

func (s *Server) diagnoseImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "No image provided")
	}
	if file.Filename == "" {
		return jsonError(c, http.StatusBadRequest, "No file selected")
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		return jsonError(c, http.StatusBadRequest, "Invalid file type")
	}
	symptoms := c.FormValue("symptoms")
	if symptoms == "" {
		symptoms = "Image analysis"
	}

	u, _ := s.currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !charge(u) {
		return insufficientCredits(c)
	}

	imageURL := "/static/uploads/" + strconv.FormatInt(u.ID, 10) + "_" + filepath.Base(file.Filename)
	d := diagnosis{
		ID:       s.id(),
		Symptoms: symptoms,
		Result: map[string]any{
			"observation": "A localized area of redness is visible.",
			"conditions": []map[string]any{
				{"name": "Contact Dermatitis", "confidence": 55, "note": "Common reaction to an irritant."},
			},
			"recommendation":          "Keep the area clean and avoid scratching.",
			"professional_evaluation": "Recommended if it spreads or persists beyond a week.",
			"disclaimer":              "This is not a medical diagnosis.",
		},
		ImageURL:  &imageURL,
		CreatedAt: time.Now().UTC(),
	}
	s.diagnoses[u.ID] = append(s.diagnoses[u.ID], d)

	return c.JSON(http.StatusOK, map[string]any{
		"message":      "Image analysis completed",
		"diagnosis_id": d.ID,
		"result":       d.Result,
		"image_url":    imageURL,
	})
}

func (s *Server) diagnosisHistory(c echo.Context) error {
	page, perPage := pagination(c, 10)
	id := s.userID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.diagnoses[id]
	items := []map[string]any{}
	for i := len(all) - 1; i >= 0; i-- {
		d := all[i]
		items = append(items, map[string]any{
			"id":         d.ID,
			"symptoms":   d.Symptoms,
			"result":     d.Result,
			"image_url":  d.ImageURL,
			"created_at": d.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, paginate("diagnoses", items, page, perPage))
}

func pagination(c echo.Context, defaultPerPage int) (int, int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.QueryParam("per_page"))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	return page, perPage
}

func paginate(key string, items []map[string]any, page, perPage int) map[string]any {
	total := len(items)
	pages := (total + perPage - 1) / perPage
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return map[string]any{
		key:            items[start:end],
		"total":        total,
		"pages":        pages,
		"current_page": page,
	}
}
