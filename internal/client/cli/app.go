package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/medmate/internal/client/capability"
	"github.com/dmitrijs2005/medmate/internal/client/client"
	"github.com/dmitrijs2005/medmate/internal/client/services"
	"github.com/dmitrijs2005/medmate/internal/client/session"
	"github.com/dmitrijs2005/medmate/internal/logging"
)

// Session is the part of the session coordinator the CLI drives.
type Session interface {
	Snapshot() session.Snapshot
	Login(ctx context.Context, username, password string, remember bool) (*client.User, error)
	Register(ctx context.Context, username, email, password string) (*client.User, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (session.Snapshot, error)
	Expire(err error) bool
	Subscribe(fn session.Listener) func()
}

// Deps are the collaborators an App is built from. Locator and Speaker may be
// nil, in which case the unsupported variants are used.
type Deps struct {
	API     client.Client
	Session Session
	Credits services.CreditsService
	Account services.AccountService
	Locator capability.Locator
	Speaker capability.Speaker
	Logger  logging.Logger
	In      *bufio.Reader
	Out     io.Writer
}

type App struct {
	api     client.Client
	session Session
	credits services.CreditsService
	account services.AccountService
	locator capability.Locator
	speaker capability.Speaker
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(d Deps) *App {
	a := &App{
		api:     d.API,
		session: d.Session,
		credits: d.Credits,
		account: d.Account,
		locator: d.Locator,
		speaker: d.Speaker,
		logger:  d.Logger,
		reader:  d.In,
		out:     d.Out,
	}
	if a.locator == nil {
		a.locator = capability.UnsupportedLocator{}
	}
	if a.speaker == nil {
		a.speaker = capability.UnsupportedSpeaker{}
	}
	if a.logger == nil {
		a.logger = logging.NewNopLogger()
	}
	return a
}

// Run greets the user and blocks in the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to MedMate (type 'help' for commands)")
	if snap := a.session.Snapshot(); snap.User != nil {
		fmt.Fprintf(a.out, "Logged in as %s.\n", snap.User.Username)
	}
	unsubscribe := a.session.Subscribe(func(snap session.Snapshot) { a.logTransition(ctx, snap) })
	defer unsubscribe()

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) logTransition(ctx context.Context, snap session.Snapshot) {
	if snap.User == nil {
		a.logger.Info(ctx, "session changed", "state", snap.State.String())
		return
	}
	a.logger.Info(ctx, "session changed", "state", snap.State.String(), "username", snap.User.Username)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().State == session.StateAuthenticated
}

// status is shown inside the prompt, e.g. " (alice, 3 credits)".
func (a *App) status() string {
	snap := a.session.Snapshot()
	if snap.State != session.StateAuthenticated || snap.User == nil {
		return ""
	}
	if snap.User.Credits == nil {
		return fmt.Sprintf(" (%s)", snap.User.Username)
	}
	return fmt.Sprintf(" (%s, %s)", snap.User.Username, creditsText(*snap.User.Credits))
}

func (a *App) commands() []command {
	return []command{
		{name: "register", help: "create an account", run: a.register},
		{name: "login", help: "log in", run: a.login},
		{name: "forgot-password", help: "email a password reset link", run: a.forgotPassword},
		{name: "reset-password", help: "set a new password with a reset token", run: a.resetPassword},
		{name: "health", help: "check the backend status", run: a.health},
		{name: "hospitals", args: "[city]", help: "find hospitals near you or in a city", run: a.hospitals},
		{name: "hospital", args: "<place-id>", help: "show hospital details", run: a.hospital},
		{name: "whoami", help: "show the current user", auth: true, run: a.whoami},
		{name: "logout", help: "log out and forget this device", auth: true, run: a.logout},
		{name: "diagnose", args: "[symptoms]", help: "analyse symptoms (1 credit)", auth: true, run: a.diagnose},
		{name: "diagnose-image", args: "<path> [symptoms]", help: "analyse a photo (1 credit)", auth: true, run: a.diagnoseImage},
		{name: "history", args: "[page]", help: "list past diagnoses", auth: true, run: a.history},
		{name: "chat", args: "[message]", help: "talk to the health assistant", auth: true, run: a.chat},
		{name: "dictate", args: "<transcript>", help: "send a voice transcript to the assistant", auth: true, run: a.dictate},
		{name: "chat-history", args: "[page]", help: "list past chat messages", auth: true, run: a.chatHistory},
		{name: "voice", help: "show speech support", auth: true, run: a.voice},
		{name: "speak", args: "<text>", help: "read text aloud", auth: true, run: a.speak},
		{name: "profile", help: "show your profile", auth: true, run: a.profile},
		{name: "edit-profile", help: "change username or email", auth: true, run: a.editProfile},
		{name: "picture", args: "<path>|remove", help: "set or remove your profile picture", auth: true, run: a.picture},
		{name: "credits", help: "show balance and credit packages", auth: true, run: a.showCredits},
		{name: "buy", args: "[package]", help: "buy a credit package", auth: true, run: a.buy},
		{name: "feedback", help: "send feedback", auth: true, run: a.feedback},
		{name: "delete-chat-history", help: "delete all chat messages", auth: true, run: a.deleteChatHistory},
		{name: "delete-diagnosis-history", help: "delete all diagnoses", auth: true, run: a.deleteDiagnosisHistory},
		{name: "delete-account", help: "permanently delete your account", auth: true, run: a.deleteAccount},
	}
}

// report prints a command error in user terms. A 401 ends the local session
// and an insufficient-credits rejection leads to the purchase prompt.
func (a *App) report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	a.logger.Debug(ctx, "command failed", "error", err)

	switch {
	case errors.Is(err, errCancelled):
		fmt.Fprintln(a.out, "Cancelled.")
	case a.session.Expire(err):
		fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
	case client.IsInsufficientCredits(err):
		fmt.Fprintln(a.out, err.Error())
		a.offerPurchase(ctx)
	case errors.Is(err, client.ErrInvalidArgument):
		fmt.Fprintln(a.out, "Invalid input:", err.Error())
	default:
		fmt.Fprintln(a.out, "Error:", err.Error())
	}
}

func (a *App) offerPurchase(ctx context.Context) {
	ok, err := Confirm(a.reader, "Buy more credits now?", a.out)
	if err != nil || !ok {
		return
	}
	a.report(ctx, a.buy(ctx, nil))
}

// refresh re-reads the session after a call that changed the balance. The
// result only feeds the prompt, so failures are logged.
func (a *App) refresh(ctx context.Context) {
	if _, err := a.session.Refresh(ctx); err != nil {
		a.logger.Warn(ctx, "session refresh failed", "error", err)
	}
}

var errCancelled = errors.New("cancelled")

func creditsText(n int) string {
	if n == 1 {
		return "1 credit"
	}
	return fmt.Sprintf("%d credits", n)
}
