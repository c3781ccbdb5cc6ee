package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/medmate/internal/client/client"
)

func (a *App) profile(ctx context.Context, _ []string) error {
	u, err := a.account.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Username: %s\n", u.Username)
	fmt.Fprintf(a.out, "Email: %s\n", u.Email)
	if u.Credits != nil {
		fmt.Fprintf(a.out, "Credits: %d\n", *u.Credits)
	}
	if u.ProfilePicture != nil && *u.ProfilePicture != "" {
		fmt.Fprintf(a.out, "Picture: %s\n", *u.ProfilePicture)
	}
	if u.CreatedAt != nil {
		fmt.Fprintf(a.out, "Member since: %s\n", *u.CreatedAt)
	}
	return nil
}

func (a *App) editProfile(ctx context.Context, _ []string) error {
	username, err := getSimpleText(a.reader, "New username (empty to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var update client.ProfileUpdate
	if username != "" {
		update.Username = &username
	}
	if email != "" {
		update.Email = &email
	}
	if update.Username == nil && update.Email == nil {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	u, err := a.account.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", u.Username, u.Email)
	return nil
}

func (a *App) picture(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: picture <path>|remove")
		return nil
	}
	if args[0] == "remove" {
		if err := a.account.RemovePicture(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Profile picture removed.")
		return nil
	}

	if !client.IsSupportedImage(args[0]) {
		fmt.Fprintln(a.out, "Unsupported image type. Use png, jpg, jpeg, gif, bmp or webp.")
		return nil
	}
	res, err := a.account.UploadPicture(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, res.Message)
	return nil
}

func (a *App) deleteChatHistory(ctx context.Context, _ []string) error {
	ok, err := Confirm(a.reader, "Delete your whole chat history?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	n, err := a.account.DeleteChatHistory(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d chat messages.\n", n)
	return nil
}

func (a *App) deleteDiagnosisHistory(ctx context.Context, _ []string) error {
	ok, err := Confirm(a.reader, "Delete all your diagnoses?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	n, err := a.account.DeleteDiagnosisHistory(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d diagnoses.\n", n)
	return nil
}

// deleteAccount asks for consent, has the backend email a code, and deletes
// the account once the code is entered.
func (a *App) deleteAccount(ctx context.Context, _ []string) error {
	ok, err := Confirm(a.reader, "Permanently delete your account and all its data?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}

	msg, err := a.account.RequestAccountDeletion(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)

	code, err := getSimpleText(a.reader, "Enter the code from the email", a.out)
	if err != nil {
		return err
	}
	if code == "" {
		return errCancelled
	}
	if err := a.account.ConfirmAccountDeletion(ctx, code); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Your account has been deleted.")
	return nil
}
