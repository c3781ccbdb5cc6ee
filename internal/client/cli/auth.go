package cli

import (
	"context"
	"fmt"
)

func (a *App) register(ctx context.Context, _ []string) error {
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Choose a password", a.out)
	if err != nil {
		return err
	}
	repeat, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}
	if password != repeat {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	user, err := a.session.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!", user.Username)
	if user.Credits != nil {
		fmt.Fprintf(a.out, " You have %s.", creditsText(*user.Credits))
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	remember, err := Confirm(a.reader, "Remember me on this device?", a.out)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, username, password, remember)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", user.Username)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	u := a.session.Snapshot().User
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.Username, u.Email)
	if u.Credits != nil {
		fmt.Fprintf(a.out, "Balance: %s\n", creditsText(*u.Credits))
	}
	return nil
}

func (a *App) forgotPassword(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter the email of your account", a.out)
	if err != nil {
		return err
	}
	resp, err := a.api.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func (a *App) resetPassword(ctx context.Context, _ []string) error {
	token, err := getSimpleText(a.reader, "Paste the reset token from the email", a.out)
	if err != nil {
		return err
	}
	check, err := a.api.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}
	if !check.Valid {
		fmt.Fprintln(a.out, "This reset link is invalid or has expired.")
		return nil
	}

	password, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	repeat, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}
	if password != repeat {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	resp, err := a.api.ResetPassword(ctx, token, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}
