package cli

import (
	"context"
	"fmt"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
)

func (a *App) runHost(ctx context.Context) error {
	commands := map[string]handler{
		"c": a.createAccount,
		"a": a.createAccount,
		"l": a.login,
		"y": a.listCages,
		"r": a.registerCage,
		"u": a.updateAvailability,
		"v": a.viewHostedBookings,
		"m": changeMode,
		"?": func(context.Context) error { a.hostHelp(); return nil },
	}
	a.addExit(commands)

	return a.loop(ctx, workflow{
		title:    "Welcome host",
		commands: commands,
		help:     a.hostHelp,
	})
}

func (a *App) hostHelp() {
	a.console.Println("What action would you like to take:")
	a.console.Println("[C]reate an [a]ccount")
	a.console.Println("[L]ogin to your account")
	a.console.Println("List [y]our cages")
	a.console.Println("[R]egister a cage")
	a.console.Println("[U]pdate cage availability")
	a.console.Println("[V]iew your bookings")
	a.console.Println("Change [M]ode (guest or host)")
	a.console.Println("e[X]it app")
	a.console.Println("[?] Help (this info)")
	a.console.Println()
}

func (a *App) registerCage(ctx context.Context) error {
	a.console.Println(" ****************** REGISTER CAGE **************** ")

	owner := a.requireLogin("You must login first to register a cage.")
	if owner == nil {
		return nil
	}

	text, err := a.console.Ask(ctx, "How many square meters is the cage? ")
	if err != nil {
		return err
	}
	if text == "" {
		a.console.Error("Cancelled")
		return nil
	}
	meters, err := parseFloat(text)
	if err != nil {
		return err
	}

	var spec domain.CageSpec
	spec.SquareMeters = meters
	for _, q := range []struct {
		label string
		dst   *bool
	}{
		{"Is it carpeted [y, n]? ", &spec.IsCarpeted},
		{"Have snake toys [y, n]? ", &spec.HasToys},
		{"Can you host venomous snakes [y, n]? ", &spec.AllowDangerousSnakes},
	} {
		answer, err := a.console.Ask(ctx, q.label)
		if err != nil {
			return err
		}
		*q.dst = parseYes(answer)
	}

	if spec.Name, err = a.console.Ask(ctx, "Give your cage a name: "); err != nil {
		return err
	}
	text, err = a.console.Ask(ctx, "How much are you charging? ")
	if err != nil {
		return err
	}
	if spec.Price, err = parseFloat(text); err != nil {
		return err
	}

	cage, err := a.svc.Cages.RegisterCage(ctx, owner.ID, spec)
	if err != nil {
		return err
	}
	a.reload(ctx)
	a.console.Success(fmt.Sprintf("Registered new cage with id %s.", cage.ID))
	return nil
}

func (a *App) listCages(ctx context.Context) error {
	a.console.Println(" ******************     Your cages     **************** ")
	_, err := a.printCages(ctx, "You must login first to list your cages.")
	return err
}

// printCages lists the host's cages with their windows and returns them
func (a *App) printCages(ctx context.Context, loginMsg string) ([]*domain.Cage, error) {
	owner := a.requireLogin(loginMsg)
	if owner == nil {
		return nil, nil
	}

	cages, err := a.svc.Cages.ListForOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	a.console.Printf("You have %d cages.\n", len(cages))
	for i, c := range cages {
		a.console.Printf(" %d. %s is %s meters.\n", i+1, c.Name, formatNumber(c.SquareMeters))
		for _, b := range c.Bookings {
			booked := "no"
			if b.IsBooked() {
				booked = "YES"
			}
			a.console.Printf("      * Booking: %s, %d days, booked? %s\n", formatDate(b.CheckIn), b.DurationInDays(), booked)
		}
	}
	return cages, nil
}

func (a *App) updateAvailability(ctx context.Context) error {
	a.console.Println(" ****************** Add available date **************** ")

	if a.requireLogin("You must login first to add availability.") == nil {
		return nil
	}

	cages, err := a.printCages(ctx, "")
	if err != nil {
		return err
	}

	text, err := a.console.Ask(ctx, "Enter cage number: ")
	if err != nil {
		return err
	}
	if text == "" {
		a.console.Error("Cancelled")
		return nil
	}
	idx, err := parseSelection(text, len(cages))
	if err != nil {
		return err
	}
	cage := cages[idx]
	a.console.Success(fmt.Sprintf("Selected cage %s", cage.Name))

	text, err = a.console.Ask(ctx, "Enter available date [yyyy-mm-dd]: ")
	if err != nil {
		return err
	}
	start, err := parseDate(text)
	if err != nil {
		return err
	}
	text, err = a.console.Ask(ctx, "How many days is this block of time? ")
	if err != nil {
		return err
	}
	days, err := parseInt(text)
	if err != nil {
		return err
	}

	if _, err := a.svc.Cages.AddAvailability(ctx, cage.ID, start, days); err != nil {
		return err
	}
	a.console.Success(fmt.Sprintf("Date added to cage %s.", cage.Name))
	return nil
}

func (a *App) viewHostedBookings(ctx context.Context) error {
	a.console.Println(" ****************** Your bookings **************** ")

	owner := a.requireLogin("You must login first to view your bookings.")
	if owner == nil {
		return nil
	}

	bookings, err := a.svc.Cages.HostedBookings(ctx, owner.ID)
	if err != nil {
		return err
	}

	a.console.Printf("You have %d bookings.\n", len(bookings))
	for _, cb := range bookings {
		a.console.Printf(" * Cage: %s, booked date: %s, from %s for %d days.\n",
			cb.Cage.Name,
			formatDate(*cb.Booking.BookedAt),
			formatDate(cb.Booking.CheckIn),
			cb.Booking.DurationInDays(),
		)
	}
	return nil
}
