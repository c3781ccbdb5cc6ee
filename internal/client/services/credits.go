package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medmate/internal/client/capability"
	"github.com/dmitrijs2005/medmate/internal/client/client"
	"github.com/dmitrijs2005/medmate/internal/client/session"
	"github.com/dmitrijs2005/medmate/internal/logging"
)

// ErrPaymentNotVerified means the backend did not accept the checkout
// signature. No credits were added.
var ErrPaymentNotVerified = errors.New("payment could not be verified")

type PaymentsAPI interface {
	CreditsPackages(ctx context.Context) ([]client.CreditsPackage, error)
	CreatePaymentOrder(ctx context.Context, packageID string) (*client.PaymentOrder, error)
	VerifyPayment(ctx context.Context, v client.PaymentVerification) (*client.PaymentResult, error)
}

// SessionRefresher re-reads the server session after a state change.
type SessionRefresher interface {
	Refresh(ctx context.Context) (session.Snapshot, error)
}

type PurchaseResult struct {
	OrderID      string
	CreditsAdded int
	// Balance is the server-reported balance after the purchase, if known.
	Balance *int
}

// CreditsService runs the purchase flow: create order, take payment through
// the checkout widget, then let the backend verify the signature. Credits
// only ever come from the backend's verification.
type CreditsService interface {
	Packages(ctx context.Context) ([]client.CreditsPackage, error)
	Purchase(ctx context.Context, packageID string) (*PurchaseResult, error)
}

type creditsService struct {
	api      PaymentsAPI
	checkout capability.Checkout
	session  SessionRefresher
	logger   logging.Logger
}

func NewCreditsService(api PaymentsAPI, checkout capability.Checkout, session SessionRefresher, logger logging.Logger) CreditsService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &creditsService{api: api, checkout: checkout, session: session, logger: logger}
}

func (s *creditsService) Packages(ctx context.Context) ([]client.CreditsPackage, error) {
	return s.api.CreditsPackages(ctx)
}

func (s *creditsService) Purchase(ctx context.Context, packageID string) (*PurchaseResult, error) {
	order, err := s.api.CreatePaymentOrder(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	proof, err := s.checkout.Pay(ctx, *order)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	if proof.OrderID == "" {
		proof.OrderID = order.OrderID
	}

	result, err := s.api.VerifyPayment(ctx, proof)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if !result.Success {
		s.logger.Warn(ctx, "payment not verified", "order_id", order.OrderID, "message", result.Message)
		if result.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrPaymentNotVerified, result.Message)
		}
		return nil, ErrPaymentNotVerified
	}

	s.logger.Info(ctx, "credits purchased", "order_id", order.OrderID, "credits_added", result.CreditsAdded)

	balance := result.Credits
	if snap, err := s.session.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "session refresh after purchase failed", "error", err)
	} else if balance == nil && snap.User != nil {
		balance = snap.User.Credits
	}

	return &PurchaseResult{OrderID: order.OrderID, CreditsAdded: result.CreditsAdded, Balance: balance}, nil
}
