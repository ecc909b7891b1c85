package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/event"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
)

type CreditService interface {
	CreateCredit(ctx context.Context, cred *Credit) (*Credit, error)

	ListCreditsByCustomer(ctx context.Context, customerID int64) ([]*Credit, error)

	GetCreditByCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error)
}

var _ CreditService = (*creditService)(nil)

type creditService struct {
	repo            Repository
	customerService customer.CustomerService
	genCode         CodeGenerator
	pub             event.Publisher
	logger          *slog.Logger
}

func NewCreditService(repo Repository, customerService customer.CustomerService, genCode CodeGenerator, pub event.Publisher, logger *slog.Logger) CreditService {
	if repo == nil {
		panic("credit repository cannot be nil")
	}
	if genCode == nil {
		genCode = uuid.New
	}
	if pub == nil {
		pub = event.NopPublisher{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditService, using default stderr handler")
	}

	return &creditService{
		repo:            repo,
		customerService: customerService,
		genCode:         genCode,
		pub:             pub,
		logger:          logger.With(slog.String("component", "creditService")),
	}
}

func (s *creditService) CreateCredit(ctx context.Context, cred *Credit) (*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to create new credit")

	if cred == nil {
		return nil, fmt.Errorf("%w: credit cannot be nil", apperrors.ErrInvalidArgument)
	}
	if cred.CustomerID <= 0 {
		return nil, apperrors.NewValidationError("customerId", "customer ID must be positive")
	}

	// Identity is assigned here, not inside the entity type, so the
	// generation strategy stays under the service's control.
	cred.CreditCode = s.genCode()
	cred.Status = StatusInProgress

	// Customer existence is not checked up front; the foreign key decides
	// and the repository surfaces its verdict.
	s.logger.InfoContext(ctx, "Calling repository Create", slog.String("creditCode", cred.CreditCode.String()))
	if err := s.repo.Create(ctx, cred); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new credit", slog.Any("error", err))
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save new credit: %w", err)
	}

	if s.customerService != nil {
		cust, err := s.customerService.GetCustomer(ctx, cred.CustomerID)
		if err != nil {
			s.logger.WarnContext(ctx, "Credit created, but owner could not be loaded for the response", slog.Any("error", err))
		} else {
			cred.Customer = cust
		}
	}

	monitoring.RecordCreditCreated()
	s.publishCreditCreated(ctx, cred)

	s.logger.InfoContext(ctx, "Successfully created credit",
		slog.Int64("creditID", cred.ID),
		slog.String("creditCode", cred.CreditCode.String()))
	return cred, nil
}

func (s *creditService) ListCreditsByCustomer(ctx context.Context, customerID int64) ([]*Credit, error) {
	s.logger.InfoContext(ctx, "Listing credits for customer", slog.Int64("customerID", customerID))

	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer ID must be positive", apperrors.ErrInvalidArgument)
	}

	credits, err := s.repo.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing credits", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list credits for customer %d: %w", customerID, err)
	}

	// An unknown customer and a customer with zero credits both yield an
	// empty list; callers cannot tell them apart through this call.
	return credits, nil
}

func (s *creditService) GetCreditByCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error) {
	s.logger.InfoContext(ctx, "Looking up credit by code",
		slog.Int64("customerID", customerID),
		slog.String("creditCode", creditCode.String()))

	cred, err := s.repo.FindByCreditCode(ctx, creditCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Credit code not found", slog.String("creditCode", creditCode.String()))
			return nil, apperrors.NewDomainError(apperrors.ErrNotFound, "Credit code %s not found", creditCode)
		}
		s.logger.ErrorContext(ctx, "Repository error finding credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find credit by code %s: %w", creditCode, err)
	}

	if cred.CustomerID != customerID {
		// Data-integrity mismatch the caller cannot fix. The message stays
		// generic on purpose; nothing identifying is echoed back.
		s.logger.WarnContext(ctx, "Credit code belongs to a different customer",
			slog.Int64("requestedBy", customerID),
			slog.Int64("ownedBy", cred.CustomerID))
		return nil, apperrors.NewDomainError(apperrors.ErrInvalidArgument, "Contact admin")
	}

	return cred, nil
}

func (s *creditService) publishCreditCreated(ctx context.Context, cred *Credit) {
	createdEvent := event.CreditCreatedEvent{
		Timestamp: time.Now(),
		Payload: event.CreditEventPayload{
			CreditCode:   cred.CreditCode.String(),
			CustomerID:   cred.CustomerID,
			CreditValue:  cred.CreditValue.StringFixed(2),
			Installments: cred.Installments,
			Status:       string(cred.Status),
			CreatedAt:    cred.CreatedAt,
		},
	}
	if err := s.pub.PublishCreditCreated(ctx, createdEvent); err != nil {
		s.logger.ErrorContext(ctx, "Credit created, but FAILED to publish creation event", slog.Any("error", err))
	}
}
