package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/medmate/internal/client/capability"
	"github.com/dmitrijs2005/medmate/internal/client/client"
)

// TerminalCheckout stands in for the payment widget: the user pays with the
// provider out of band and pastes the payment id and signature it returns.
type TerminalCheckout struct {
	reader *bufio.Reader
	out    io.Writer
}

var _ capability.Checkout = (*TerminalCheckout)(nil)

func NewTerminalCheckout(reader *bufio.Reader, out io.Writer) *TerminalCheckout {
	return &TerminalCheckout{reader: reader, out: out}
}

// Pay returns capability.ErrCheckoutCancelled when either answer is left
// empty.
func (c *TerminalCheckout) Pay(ctx context.Context, order client.PaymentOrder) (client.PaymentVerification, error) {
	if err := ctx.Err(); err != nil {
		return client.PaymentVerification{}, err
	}

	fmt.Fprintf(c.out, "Order %s: %s\n", order.OrderID, formatPrice(order.Amount, order.Currency))
	fmt.Fprintf(c.out, "Pay with merchant key %s, then paste the details below (empty to cancel).\n", order.KeyID)

	paymentID, err := getSimpleText(c.reader, "Payment id", c.out)
	if err != nil || paymentID == "" {
		return client.PaymentVerification{}, capability.ErrCheckoutCancelled
	}
	signature, err := getSimpleText(c.reader, "Payment signature", c.out)
	if err != nil || signature == "" {
		return client.PaymentVerification{}, capability.ErrCheckoutCancelled
	}

	return client.PaymentVerification{
		OrderID:   order.OrderID,
		PaymentID: paymentID,
		Signature: signature,
	}, nil
}
