package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/internal/repository"
	"github.com/VB6Enjoyer/snakebnb/internal/service"
	"github.com/VB6Enjoyer/snakebnb/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock() time.Time {
	return time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
}

func newServices() Services {
	store := repository.NewMemoryStore().Store()
	return Services{
		Accounts: service.NewAccountService(store.Owners, clock),
		Snakes:   service.NewSnakeService(store.Owners, store.Snakes, clock),
		Cages:    service.NewCageService(store.Owners, store.Cages, nil, clock),
		Bookings: service.NewBookingService(store.Owners, store.Snakes, store.Cages, &service.BookingServiceConfig{Clock: clock}),
	}
}

func runScript(t *testing.T, svc Services, mode Mode, lines ...string) (*App, string) {
	t.Helper()
	var out bytes.Buffer
	input := strings.Join(lines, "\n") + "\n"
	app := NewApp(svc, NewConsole(strings.NewReader(input), &out), logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Run(ctx, mode))
	return app, out.String()
}

// seedHost registers a host with one cage open for 2024-01-01 + 9 days
func seedHost(t *testing.T, svc Services) *domain.Cage {
	t.Helper()
	ctx := context.Background()
	host, err := svc.Accounts.CreateAccount(ctx, "Hank", "hank@example.com")
	require.NoError(t, err)
	cage, err := svc.Cages.RegisterCage(ctx, host.ID, domain.CageSpec{Name: "Palace", Price: 15, SquareMeters: 2, HasToys: true})
	require.NoError(t, err)
	cage, err = svc.Cages.AddAvailability(ctx, cage.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 9)
	require.NoError(t, err)
	return cage
}

func TestApp_HostFlow(t *testing.T) {
	svc := newServices()
	app, out := runScript(t, svc, ModeHost,
		"c", "Hank", "  HANK@example.com ",
		"r", "3", "y", "n", "yes", "Palace", "20",
		"u", "1", "2024-01-01", "9",
		"y",
		"v",
		"x",
	)

	assert.Contains(t, out, "Welcome host")
	assert.Contains(t, out, "Created new account with id")
	assert.Contains(t, out, "Registered new cage with id")
	assert.Contains(t, out, "Selected cage Palace")
	assert.Contains(t, out, "Date added to cage Palace.")
	assert.Contains(t, out, "You have 1 cages.")
	assert.Contains(t, out, " 1. Palace is 3 meters.")
	assert.Contains(t, out, "      * Booking: 2024-01-01, 9 days, booked? no")
	assert.Contains(t, out, "You have 0 bookings.")
	assert.Contains(t, out, "Hank>")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "bye"))

	owner := app.Session().Active()
	require.NotNil(t, owner)
	assert.Equal(t, "hank@example.com", owner.Email)

	cages, err := svc.Cages.ListForOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, cages, 1)
	assert.True(t, cages[0].IsCarpeted)
	assert.False(t, cages[0].HasToys)
	assert.True(t, cages[0].AllowDangerousSnakes)
	assert.Equal(t, 20.0, cages[0].Price)
}

func TestApp_GuestBooksCage(t *testing.T) {
	svc := newServices()
	cage := seedHost(t, svc)

	_, out := runScript(t, svc, ModeGuest,
		"c", "Gil", "gil@example.com",
		"a", "Kaa", "2", "python", "n",
		"y",
		"b", "2024-01-02", "2024-01-05", "1", "1",
		"v",
		"x",
	)

	assert.Contains(t, out, "Welcome guest")
	assert.Contains(t, out, "Created Kaa with id")
	assert.Contains(t, out, " * Kaa is a python that is 2m long and is not venomous.")
	assert.Contains(t, out, "1. Kaa (length: 2, venomous: no)")
	assert.Contains(t, out, "There are 1 cages available in that time.")
	assert.Contains(t, out, " 1. Palace with 2m carpeted: no, has toys: yes.")
	assert.Contains(t, out, "Successfully booked Palace for Kaa at $15/night.")
	assert.Contains(t, out, " * Snake: Kaa is booked at Palace from 2024-01-02 for 3 days.")

	hosted, err := svc.Cages.HostedBookings(context.Background(), mustOwner(t, svc, "hank@example.com").ID)
	require.NoError(t, err)
	require.Len(t, hosted, 1)
	assert.Equal(t, cage.ID, hosted[0].Cage.ID)
}

func TestApp_GuestBookingEdgeCases(t *testing.T) {
	svc := newServices()
	seedHost(t, svc)

	_, out := runScript(t, svc, ModeGuest,
		"b",
		"c", "Gil", "gil@example.com",
		"b",
		"a", "Kaa", "2", "python", "y",
		"b", "",
		"b", "2024-01-05", "2024-01-02",
		"b", "2024-01-02", "2024-01-05", "7",
		"b", "2024-01-02", "2024-01-05", "1",
		"x",
	)

	assert.Contains(t, out, "You must log in first to book a cage")
	assert.Contains(t, out, "You must first [a]dd a snake before you can book a cage.")
	assert.Contains(t, out, "cancelled")
	assert.Contains(t, out, "Check in must be before check out")
	assert.Contains(t, out, "Invalid selection: choose a number between 1 and 1")
	// the only cage refuses venomous snakes
	assert.Contains(t, out, "There are 0 cages available in that time.")
	assert.Contains(t, out, "Sorry, no cages are available for that date.")
}

func TestApp_InvalidInputKeepsLoop(t *testing.T) {
	svc := newServices()
	_, out := runScript(t, svc, ModeGuest,
		"c", "Gil", "gil@example.com",
		"a", "Kaa", "long", "",
		"y",
		"x",
	)

	assert.Contains(t, out, `Invalid input: "long" is not a number`)
	assert.Contains(t, out, "You have 0 snakes.")
}

func TestApp_Accounts(t *testing.T) {
	svc := newServices()
	seedHost(t, svc)

	app, out := runScript(t, svc, ModeGuest,
		"c", "Other", "Hank@Example.com",
		"l", "nobody@example.com",
		"l", " HANK@example.com",
		"zzz",
		"",
		"m",
		"g",
		"x",
	)

	assert.Contains(t, out, "ERROR: Account with email hank@example.com already exists.")
	assert.Contains(t, out, "Could not find account with email nobody@example.com.")
	assert.Contains(t, out, "Logged in successfully.")
	assert.Contains(t, out, "Sorry we didn't understand that command.")
	assert.Equal(t, 1, strings.Count(out, "Are you a [g]uest or [h]ost?"))
	require.NotNil(t, app.Session().Active())
	assert.Equal(t, "Hank", app.Session().Active().Name)
}

func TestApp_ModePrompt(t *testing.T) {
	_, out := runScript(t, newServices(), "",
		"h",
		"m",
		"anything",
		"bye",
	)

	assert.Contains(t, out, "SNAKE BnB")
	assert.Contains(t, out, "Welcome host")
	assert.Contains(t, out, "Welcome guest")
	assert.Equal(t, 2, strings.Count(out, "Are you a [g]uest or [h]ost?"))
}

func TestApp_HostRequiresLogin(t *testing.T) {
	_, out := runScript(t, newServices(), ModeHost, "r", "y", "u", "v", "exit")

	assert.Contains(t, out, "You must login first to register a cage.")
	assert.Contains(t, out, "You must login first to list your cages.")
	assert.Contains(t, out, "You must login first to add availability.")
	assert.Contains(t, out, "You must login first to view your bookings.")
}

func TestApp_EndOfInput(t *testing.T) {
	// no exit command, input simply ends mid prompt
	_, out := runScript(t, newServices(), ModeGuest, "c", "Gil")
	assert.Contains(t, out, "What is your email?")
}

func TestApp_ContextCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	var out bytes.Buffer
	app := NewApp(newServices(), NewConsole(r, &out), logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, app.Run(ctx, ModeGuest))
}

func mustOwner(t *testing.T, svc Services, email string) *domain.Owner {
	t.Helper()
	o, err := svc.Accounts.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return o
}
