package fakeapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type creditsPackage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
}

// Packages is the fixed catalogue. Prices are in paise.
var Packages = []creditsPackage{
	{ID: "basic", Name: "Basic", Credits: 10, Price: 9900, Currency: "INR"},
	{ID: "standard", Name: "Standard", Credits: 25, Price: 19900, Currency: "INR"},
	{ID: "premium", Name: "Premium", Credits: 60, Price: 39900, Currency: "INR"},
}

func findPackage(id string) (creditsPackage, bool) {
	for _, p := range Packages {
		if p.ID == id {
			return p, true
		}
	}
	return creditsPackage{}, false
}

func (s *Server) creditsPackages(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"packages": Packages})
}

func (s *Server) createOrder(c echo.Context) error {
	var req struct {
		PackageID string `json:"package_id"`
	}
	if err := c.Bind(&req); err != nil || req.PackageID == "" {
		return jsonError(c, http.StatusBadRequest, "package_id is required")
	}
	pkg, ok := findPackage(req.PackageID)
	if !ok {
		return jsonError(c, http.StatusNotFound, "Unknown credits package")
	}

	id := s.userID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	o := &order{
		ID:        "order_" + uuid.NewString()[:8],
		UserID:    id,
		PackageID: pkg.ID,
		Amount:    pkg.Price,
		Currency:  pkg.Currency,
	}
	s.orders[o.ID] = o
	return c.JSON(http.StatusOK, map[string]any{
		"order_id":   o.ID,
		"amount":     o.Amount,
		"currency":   o.Currency,
		"key_id":     KeyID,
		"package_id": o.PackageID,
	})
}

// verifyPayment credits the package only when the signature matches an
// unpaid order of the caller.
func (s *Server) verifyPayment(c echo.Context) error {
	var req struct {
		OrderID   string `json:"order_id"`
		PaymentID string `json:"payment_id"`
		Signature string `json:"signature"`
	}
	if err := c.Bind(&req); err != nil || req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return jsonError(c, http.StatusBadRequest, "order_id, payment_id and signature are required")
	}

	u, _ := s.currentUser(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[req.OrderID]
	if !ok || o.UserID != u.ID {
		return jsonError(c, http.StatusNotFound, "Order not found")
	}
	if o.Paid || !s.validSignature(req.OrderID, req.PaymentID, req.Signature) {
		return c.JSON(http.StatusOK, map[string]any{
			"success":       false,
			"credits_added": 0,
			"message":       "Payment verification failed",
		})
	}

	pkg, _ := findPackage(o.PackageID)
	o.Paid = true
	u.Credits += pkg.Credits
	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"credits_added": pkg.Credits,
		"credits":       u.Credits,
		"message":       "Payment verified",
	})
}
