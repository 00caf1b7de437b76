package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	reports     *ReportCache
	metrics     Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, reports *ReportCache, metrics Metrics) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		reports:     reports,
		metrics:     metricsOrNoop(metrics),
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name          string
	Type          string
	AccountNumber string
	BankName      string
	Description   string
}

// CreateAccount creates a new active account with a zero balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	accountType, err := domain.ParseAccountType(strings.ToLower(strings.TrimSpace(input.Type)))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		Name:          strings.TrimSpace(input.Name),
		Type:          accountType,
		Balance:       decimal.Zero,
		AccountNumber: input.AccountNumber,
		BankName:      input.BankName,
		Description:   input.Description,
		Status:        domain.AccountStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.metrics.AccountCreated(string(accountType))
	uc.reports.Invalidate(ctx)

	zerolog.Ctx(ctx).Info().
		Str("account_id", account.ID).
		Str("type", string(account.Type)).
		Msg("account created")

	return account, nil
}

// UpdateAccountInput carries optional metadata changes. Nil fields are left untouched.
type UpdateAccountInput struct {
	Name          *string
	AccountNumber *string
	BankName      *string
	Description   *string
}

// UpdateAccount merges metadata into an existing account. Balance and status are not editable.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateAccountName(*input.Name); err != nil {
			return nil, err
		}
		account.Name = strings.TrimSpace(*input.Name)
	}
	if input.AccountNumber != nil {
		account.AccountNumber = *input.AccountNumber
	}
	if input.BankName != nil {
		account.BankName = *input.BankName
	}
	if input.Description != nil {
		account.Description = *input.Description
	}
	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	uc.reports.Invalidate(ctx)

	return account, nil
}

// DeleteAccount closes the account. Closing an already closed account is a no-op.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !account.IsActive() {
		return nil
	}

	if err := uc.accountRepo.Close(ctx, id, time.Now().UTC()); err != nil {
		return err
	}

	uc.metrics.AccountClosed()
	uc.reports.Invalidate(ctx)

	zerolog.Ctx(ctx).Info().
		Str("account_id", id).
		Str("balance", account.Balance.String()).
		Msg("account closed")

	return nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit         int
	Offset        int
	IncludeClosed bool
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset, input.IncludeClosed)
}
