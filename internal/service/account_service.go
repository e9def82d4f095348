package service

import (
	"context"
	"errors"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/internal/repository"
	"github.com/VB6Enjoyer/snakebnb/pkg/logger"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
	"go.uber.org/zap"
)

// AccountService manages owner accounts
type AccountService interface {
	// CreateAccount registers an owner. The email must not be in use.
	CreateAccount(ctx context.Context, name, email string) (*domain.Owner, error)

	// FindByEmail looks an owner up by normalized email
	FindByEmail(ctx context.Context, email string) (*domain.Owner, error)

	// GetOwner looks an owner up by id
	GetOwner(ctx context.Context, id string) (*domain.Owner, error)
}

type accountService struct {
	owners repository.OwnerRepository
	now    func() time.Time
}

// NewAccountService creates a new account service
func NewAccountService(owners repository.OwnerRepository, clock func() time.Time) AccountService {
	if clock == nil {
		clock = utcNow
	}
	return &accountService{owners: owners, now: clock}
}

func (s *accountService) CreateAccount(ctx context.Context, name, email string) (*domain.Owner, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.account.create")
	defer span.End()

	owner, err := domain.NewOwner(name, email, s.now())
	if err != nil {
		return nil, err
	}

	existing, err := s.owners.GetByEmail(ctx, owner.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrEmailTaken
	case err != nil && !errors.Is(err, domain.ErrOwnerNotFound):
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.owners.Create(ctx, owner); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.Get().Info("account created", zap.String("owner_id", owner.ID))
	return owner, nil
}

func (s *accountService) FindByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	return s.owners.GetByEmail(ctx, email)
}

func (s *accountService) GetOwner(ctx context.Context, id string) (*domain.Owner, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	return s.owners.GetByID(ctx, id)
}

func utcNow() time.Time {
	return time.Now().UTC()
}
