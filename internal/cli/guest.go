package cli

import (
	"context"
	"fmt"

	"github.com/VB6Enjoyer/snakebnb/internal/service"
)

func (a *App) runGuest(ctx context.Context) error {
	commands := map[string]handler{
		"c": a.createAccount,
		"l": a.login,
		"a": a.addSnake,
		"y": a.viewSnakes,
		"b": a.bookCage,
		"v": a.viewGuestBookings,
		"m": changeMode,
		"?": func(context.Context) error { a.guestHelp(); return nil },
	}
	a.addExit(commands)

	return a.loop(ctx, workflow{
		title:    "Welcome guest",
		commands: commands,
		help:     a.guestHelp,
		after:    a.reload,
	})
}

func (a *App) guestHelp() {
	a.console.Println("What action would you like to take:")
	a.console.Println("[C]reate an account")
	a.console.Println("[L]ogin to your account")
	a.console.Println("[B]ook a cage")
	a.console.Println("[A]dd a snake")
	a.console.Println("View [y]our snakes")
	a.console.Println("[V]iew your bookings")
	a.console.Println("[M]ain menu")
	a.console.Println("e[X]it app")
	a.console.Println("[?] Help (this info)")
	a.console.Println()
}

func (a *App) addSnake(ctx context.Context) error {
	a.console.Println(" ****************** Add a snake **************** ")

	owner := a.requireLogin("You must log in first to add a snake")
	if owner == nil {
		return nil
	}

	name, err := a.console.Ask(ctx, "What is your snake's name? ")
	if err != nil {
		return err
	}
	if name == "" {
		a.console.Error("cancelled")
		return nil
	}

	text, err := a.console.Ask(ctx, "How long is your snake (in meters)? ")
	if err != nil {
		return err
	}
	length, err := parseFloat(text)
	if err != nil {
		return err
	}
	species, err := a.console.Ask(ctx, "Species? ")
	if err != nil {
		return err
	}
	venomous, err := a.console.Ask(ctx, "Is your snake venomous [y]es, [n]o? ")
	if err != nil {
		return err
	}

	snake, err := a.svc.Snakes.AddSnake(ctx, owner.ID, service.SnakeInput{
		Name:       name,
		Species:    species,
		Length:     length,
		IsVenomous: parseYes(venomous),
	})
	if err != nil {
		return err
	}
	a.reload(ctx)
	a.console.Success(fmt.Sprintf("Created %s with id %s", snake.Name, snake.ID))
	return nil
}

func (a *App) viewSnakes(ctx context.Context) error {
	a.console.Println(" ****************** Your snakes **************** ")

	owner := a.requireLogin("You must log in first to view your snakes")
	if owner == nil {
		return nil
	}

	snakes, err := a.svc.Snakes.ListForOwner(ctx, owner.ID)
	if err != nil {
		return err
	}

	a.console.Printf("You have %d snakes.\n", len(snakes))
	for _, s := range snakes {
		venom := "not "
		if s.IsVenomous {
			venom = ""
		}
		a.console.Printf(" * %s is a %s that is %sm long and is %svenomous.\n", s.Name, s.Species, formatNumber(s.Length), venom)
	}
	return nil
}

func (a *App) bookCage(ctx context.Context) error {
	a.console.Println(" ****************** Book a cage **************** ")

	owner := a.requireLogin("You must log in first to book a cage")
	if owner == nil {
		return nil
	}

	snakes, err := a.svc.Snakes.ListForOwner(ctx, owner.ID)
	if err != nil {
		return err
	}
	if len(snakes) == 0 {
		a.console.Error("You must first [a]dd a snake before you can book a cage.")
		return nil
	}

	a.console.Println("Let's start by finding available cages.")
	text, err := a.console.Ask(ctx, "Check-in date [yyyy-mm-dd]: ")
	if err != nil {
		return err
	}
	if text == "" {
		a.console.Error("cancelled")
		return nil
	}
	checkIn, err := parseDate(text)
	if err != nil {
		return err
	}
	text, err = a.console.Ask(ctx, "Check-out date [yyyy-mm-dd]: ")
	if err != nil {
		return err
	}
	checkOut, err := parseDate(text)
	if err != nil {
		return err
	}
	if !checkIn.Before(checkOut) {
		a.console.Error("Check in must be before check out")
		return nil
	}

	a.console.Println()
	for i, s := range snakes {
		a.console.Printf("%d. %s (length: %s, venomous: %s)\n", i+1, s.Name, formatNumber(s.Length), yesNo(s.IsVenomous))
	}
	text, err = a.console.Ask(ctx, "Which snake do you want to book (number)? ")
	if err != nil {
		return err
	}
	idx, err := parseSelection(text, len(snakes))
	if err != nil {
		return err
	}
	snake := snakes[idx]

	cages, err := a.svc.Bookings.FindAvailableCages(ctx, checkIn, checkOut, snake)
	if err != nil {
		return err
	}

	a.console.Printf("There are %d cages available in that time.\n", len(cages))
	for i, c := range cages {
		a.console.Printf(" %d. %s with %sm carpeted: %s, has toys: %s.\n",
			i+1, c.Name, formatNumber(c.SquareMeters), yesNo(c.IsCarpeted), yesNo(c.HasToys))
	}
	if len(cages) == 0 {
		a.console.Error("Sorry, no cages are available for that date.")
		return nil
	}

	text, err = a.console.Ask(ctx, "Which cage do you want to book (number)? ")
	if err != nil {
		return err
	}
	if idx, err = parseSelection(text, len(cages)); err != nil {
		return err
	}
	cage := cages[idx]

	if _, err := a.svc.Bookings.BookCage(ctx, service.BookCageRequest{
		OwnerID:  owner.ID,
		SnakeID:  snake.ID,
		CageID:   cage.ID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}); err != nil {
		return err
	}

	a.console.Success(fmt.Sprintf("Successfully booked %s for %s at $%s/night.", cage.Name, snake.Name, formatNumber(cage.Price)))
	return nil
}

func (a *App) viewGuestBookings(ctx context.Context) error {
	a.console.Println(" ****************** Your bookings **************** ")

	owner := a.requireLogin("You must log in first to view your bookings")
	if owner == nil {
		return nil
	}

	snakes, err := a.svc.Snakes.ListForOwner(ctx, owner.ID)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(snakes))
	for _, s := range snakes {
		names[s.ID] = s.Name
	}

	bookings, err := a.svc.Bookings.GuestBookings(ctx, owner.ID)
	if err != nil {
		return err
	}

	a.console.Printf("You have %d bookings.\n", len(bookings))
	for _, cb := range bookings {
		name, ok := names[cb.Booking.GuestSnakeID]
		if !ok {
			name = "(unknown snake)"
		}
		a.console.Printf(" * Snake: %s is booked at %s from %s for %d days.\n",
			name, cb.Cage.Name, formatDate(cb.Booking.CheckIn), cb.Booking.DurationInDays())
	}
	return nil
}
