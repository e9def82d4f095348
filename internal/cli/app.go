// Package cli implements the interactive guest and host workflows.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/internal/service"
	"github.com/VB6Enjoyer/snakebnb/internal/session"
	"github.com/VB6Enjoyer/snakebnb/pkg/logger"
	"go.uber.org/zap"
)

// Mode selects the guest or host workflow
type Mode string

const (
	ModeGuest Mode = "guest"
	ModeHost  Mode = "host"
)

// ParseMode accepts guest, host, g or h. Empty means ask.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "g", "guest":
		return ModeGuest, nil
	case "h", "host":
		return ModeHost, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, s)
}

var (
	errChangeMode = errors.New("change mode")
	errExit       = errors.New("exit")
)

var exitCommands = []string{"x", "bye", "exit", "exit()"}

// Services are the operations the workflows drive
type Services struct {
	Accounts service.AccountService
	Snakes   service.SnakeService
	Cages    service.CageService
	Bookings service.BookingService
}

// App runs the mode loop against one session
type App struct {
	console *Console
	svc     Services
	session *session.Session
	log     *logger.Logger
}

// NewApp creates an app reading and writing through console
func NewApp(svc Services, console *Console, log *logger.Logger) *App {
	if log == nil {
		log = logger.Get()
	}
	return &App{
		console: console,
		svc:     svc,
		session: session.New(svc.Accounts),
		log:     log,
	}
}

// Session returns the app's session
func (a *App) Session() *session.Session {
	return a.session
}

// Run prints the banner and alternates between mode prompt and workflows
// until the user exits, input ends or ctx is cancelled. Those all return nil.
func (a *App) Run(ctx context.Context, mode Mode) error {
	a.printHeader()

	for {
		if mode == "" {
			m, err := a.askMode(ctx)
			if err != nil {
				return a.finish(err)
			}
			mode = m
		}

		var err error
		if mode == ModeHost {
			err = a.runHost(ctx)
		} else {
			err = a.runGuest(ctx)
		}
		if err != nil {
			return a.finish(err)
		}
		mode = ""
	}
}

func (a *App) finish(err error) error {
	switch {
	case errors.Is(err, errExit), errors.Is(err, io.EOF),
		errors.Is(err, context.Canceled):
		return nil
	}
	return err
}

const snakeArt = `
             ~8I?? OM
            M..I?Z 7O?M
            ?   ?8   ?I8
           MOM???I?ZO??IZ
          M:??O??????MII
          OIIII$NI7??I$
               IIID?IIZ
  +$       ,IM ,~7??I7$
I?        MM   ?:::?7$
??              7,::?778+=~+??8
??Z             ?,:,:I7$I??????+~~+
??D          N==7,::,I77??????????=~$
~???        I~~I?,::,77$Z?????????????
???+~M   $+~+???? :::II7$II777II??????N
OI??????????I$$M=,:+7??I$7I???????????
 N$$$ZDI      =++:$???????????II78
               =~~:~~7II777$$Z
                     ~ZMM~`

func (a *App) printHeader() {
	a.console.Println("****************  SNAKE BnB  ****************")
	a.console.Banner(snakeArt)
	a.console.Println("*********************************************")
	a.console.Println()
	a.console.Println("Welcome to Snake BnB!")
	a.console.Println("Why are you here?")
	a.console.Println()
}

func (a *App) askMode(ctx context.Context) (Mode, error) {
	a.console.Println("[g] Book a cage for your snake")
	a.console.Println("[h] Offer extra cage space")
	a.console.Println()

	choice, err := a.console.Ask(ctx, "Are you a [g]uest or [h]ost? ")
	if err != nil {
		return "", err
	}
	if strings.ToLower(choice) == "h" {
		return ModeHost, nil
	}
	return ModeGuest, nil
}

type handler func(ctx context.Context) error

type workflow struct {
	title    string
	commands map[string]handler
	help     func()
	// after runs once per command, including unknown ones
	after func(ctx context.Context)
}

func (a *App) loop(ctx context.Context, w workflow) error {
	a.console.Printf(" ****************** %s **************** \n", w.title)
	a.console.Println()
	w.help()

	for {
		action, err := a.console.Prompt(ctx, a.promptText())
		if err != nil {
			return err
		}
		action = strings.ToLower(action)

		switch h, ok := w.commands[action]; {
		case action == "":
		case !ok:
			a.console.Println("Sorry we didn't understand that command.")
		default:
			err = h(ctx)
		}

		if w.after != nil {
			w.after(ctx)
		}
		if action != "" {
			a.console.Println()
		}

		switch {
		case err == nil:
		case errors.Is(err, errChangeMode):
			return nil
		case errors.Is(err, errExit), errors.Is(err, io.EOF), ctx.Err() != nil:
			return err
		default:
			a.report(err)
		}
	}
}

func (a *App) promptText() string {
	if owner := a.session.Active(); owner != nil {
		return owner.Name + "> "
	}
	return "> "
}

func (a *App) addExit(commands map[string]handler) {
	for _, key := range exitCommands {
		commands[key] = a.exit
	}
}

func (a *App) exit(context.Context) error {
	a.console.Println()
	a.console.Println("bye")
	return errExit
}

func changeMode(context.Context) error {
	return errChangeMode
}

func (a *App) reload(ctx context.Context) {
	if err := a.session.Reload(ctx); err != nil {
		a.log.Warn("failed to reload account", zap.Error(err))
	}
}

// requireLogin prints msg and returns nil when nobody is logged in
func (a *App) requireLogin(msg string) *domain.Owner {
	owner, err := a.session.Require()
	if err != nil {
		a.console.Error(msg)
		return nil
	}
	return owner
}

// report prints a failed command without leaving the loop
func (a *App) report(err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidSelection):
		a.console.Error(capitalize(err.Error()))
	case errors.Is(err, domain.ErrNotAuthenticated):
		a.console.Error("You must login first.")
	case errors.Is(err, domain.ErrAvailabilityConflict):
		a.console.Error("Someone else just booked that cage. Please search again.")
	case errors.Is(err, domain.ErrNoAvailability):
		a.console.Error("Sorry, that cage is no longer available for those dates.")
	case domain.IsValidationError(err), domain.IsNotFoundError(err), domain.IsConflictError(err):
		a.console.Error(capitalize(err.Error()) + ".")
	default:
		a.log.Error("command failed", zap.Error(err))
		a.console.Error("ERROR: " + err.Error())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (a *App) createAccount(ctx context.Context) error {
	a.console.Println(" ****************** REGISTER **************** ")

	name, err := a.console.Ask(ctx, "What is your name? ")
	if err != nil {
		return err
	}
	email, err := a.console.Ask(ctx, "What is your email? ")
	if err != nil {
		return err
	}

	owner, err := a.svc.Accounts.CreateAccount(ctx, name, email)
	if errors.Is(err, domain.ErrEmailTaken) {
		a.console.Error(fmt.Sprintf("ERROR: Account with email %s already exists.", domain.NormalizeEmail(email)))
		return nil
	}
	if err != nil {
		return err
	}

	a.session.SetActive(owner)
	a.console.Success(fmt.Sprintf("Created new account with id %s.", owner.ID))
	return nil
}

func (a *App) login(ctx context.Context) error {
	a.console.Println(" ****************** LOGIN **************** ")

	email, err := a.console.Ask(ctx, "What is your email? ")
	if err != nil {
		return err
	}

	owner, err := a.svc.Accounts.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrOwnerNotFound) || errors.Is(err, domain.ErrInvalidEmail) {
		a.console.Error(fmt.Sprintf("Could not find account with email %s.", domain.NormalizeEmail(email)))
		return nil
	}
	if err != nil {
		return err
	}

	a.session.SetActive(owner)
	a.console.Success("Logged in successfully.")
	return nil
}
