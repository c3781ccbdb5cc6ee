package cli

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/medmate/internal/client/capability"
	"github.com/dmitrijs2005/medmate/internal/client/client"
	"github.com/dmitrijs2005/medmate/internal/client/services"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatPrice renders an amount given in the currency's minor unit, e.g.
// 9900 INR as "₹ 99.00".
func formatPrice(amount int64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return printer.Sprintf("%d %s", amount, code)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return printer.Sprint(currency.Symbol(unit.Amount(float64(amount) / math.Pow10(scale))))
}

func (a *App) showCredits(ctx context.Context, _ []string) error {
	if u := a.session.Snapshot().User; u != nil && u.Credits != nil {
		fmt.Fprintln(a.out, printer.Sprintf("Balance: %d credits", *u.Credits))
	}
	pkgs, err := a.credits.Packages(ctx)
	if err != nil {
		return err
	}
	a.printPackages(pkgs)
	return nil
}

func (a *App) printPackages(pkgs []client.CreditsPackage) {
	if len(pkgs) == 0 {
		fmt.Fprintln(a.out, "No credit packages are on sale right now.")
		return
	}
	fmt.Fprintln(a.out, "Packages:")
	for _, p := range pkgs {
		fmt.Fprintln(a.out, printer.Sprintf("  %-10s %-10s %4d credits  %s", p.ID, p.Name, p.Credits, formatPrice(p.Price, p.Currency)))
	}
}

func (a *App) buy(ctx context.Context, args []string) error {
	var packageID string
	if len(args) > 0 {
		packageID = args[0]
	} else {
		pkgs, err := a.credits.Packages(ctx)
		if err != nil {
			return err
		}
		a.printPackages(pkgs)
		if len(pkgs) == 0 {
			return nil
		}
		packageID, err = getSimpleText(a.reader, "Package to buy (empty to cancel)", a.out)
		if err != nil {
			return err
		}
	}
	if packageID == "" {
		return errCancelled
	}

	res, err := a.credits.Purchase(ctx, packageID)
	switch {
	case errors.Is(err, capability.ErrCheckoutCancelled):
		fmt.Fprintln(a.out, "Payment cancelled. No credits were added.")
		return nil
	case errors.Is(err, capability.ErrNotSupported):
		fmt.Fprintln(a.out, "Payments are not available on this device.")
		return nil
	case errors.Is(err, services.ErrPaymentNotVerified):
		fmt.Fprintln(a.out, "Payment could not be verified. No credits were added.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(a.out, "Added %s.", creditsText(res.CreditsAdded))
	if res.Balance != nil {
		fmt.Fprintf(a.out, " Balance: %s.", creditsText(*res.Balance))
	}
	fmt.Fprintln(a.out)
	return nil
}
