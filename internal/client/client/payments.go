package client

import (
	"context"
	"fmt"
)

func (g *Gateway) CreditsPackages(ctx context.Context) ([]CreditsPackage, error) {
	var resp creditsPackagesResponse
	if err := g.get(ctx, "/api/credits/packages", g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return resp.Packages, nil
}

// CreatePaymentOrder opens an order for the checkout widget. No credits move
// until VerifyPayment succeeds.
func (g *Gateway) CreatePaymentOrder(ctx context.Context, packageID string) (*PaymentOrder, error) {
	if packageID == "" {
		return nil, fmt.Errorf("%w: package id is required", ErrInvalidArgument)
	}
	var resp PaymentOrder
	if err := g.post(ctx, "/api/payment/create-order", map[string]string{"package_id": packageID}, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyPayment hands the checkout triple to the backend, which checks the
// signature. Only a result with Success set means credits were added.
func (g *Gateway) VerifyPayment(ctx context.Context, v PaymentVerification) (*PaymentResult, error) {
	if v.OrderID == "" || v.PaymentID == "" || v.Signature == "" {
		return nil, fmt.Errorf("%w: order id, payment id and signature are required", ErrInvalidArgument)
	}
	var resp PaymentResult
	if err := g.post(ctx, "/api/payment/verify", v, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
