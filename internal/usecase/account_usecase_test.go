package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/usecase"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateAccountInput
		wantErr error
	}{
		{
			name:  "bank account",
			input: usecase.CreateAccountInput{Name: "Main Bank", Type: "bank", AccountNumber: "0012", BankName: "First Bank"},
		},
		{
			name:  "type is case-insensitive",
			input: usecase.CreateAccountInput{Name: "Till", Type: " Cash "},
		},
		{
			name:    "missing name",
			input:   usecase.CreateAccountInput{Name: " ", Type: "cash"},
			wantErr: domain.ErrInvalidAccountName,
		},
		{
			name:    "missing type",
			input:   usecase.CreateAccountInput{Name: "Till"},
			wantErr: domain.ErrAccountTypeRequired,
		},
		{
			name:    "unknown type",
			input:   usecase.CreateAccountInput{Name: "Till", Type: "crypto"},
			wantErr: domain.ErrInvalidAccountType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			account, err := f.accounts.CreateAccount(context.Background(), tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, account.ID)
			assert.True(t, account.Balance.IsZero())
			assert.Equal(t, domain.AccountStatusActive, account.Status)

			stored, err := f.accounts.GetAccount(context.Background(), account.ID)
			require.NoError(t, err)
			assert.Equal(t, account.Name, stored.Name)
		})
	}
}

func TestAccountUseCase_UpdateAccount(t *testing.T) {
	f := newFixture(t)
	f.seedAccount("bank", domain.AccountTypeBank, 250)
	ctx := context.Background()

	name, bank := "Operating Account", "Second Bank"
	updated, err := f.accounts.UpdateAccount(ctx, "bank", usecase.UpdateAccountInput{Name: &name, BankName: &bank})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, bank, updated.BankName)
	assert.True(t, updated.Balance.Equal(amount(250)))

	empty := ""
	_, err = f.accounts.UpdateAccount(ctx, "bank", usecase.UpdateAccountInput{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidAccountName)

	_, err = f.accounts.UpdateAccount(ctx, "missing", usecase.UpdateAccountInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	f := newFixture(t)
	f.seedAccount("till", domain.AccountTypeCash, 40)
	ctx := context.Background()

	require.NoError(t, f.accounts.DeleteAccount(ctx, "till"))

	account, err := f.accounts.GetAccount(ctx, "till")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusClosed, account.Status)
	assert.True(t, account.Balance.Equal(amount(40)), "closing keeps the balance")

	// closing twice is a no-op
	require.NoError(t, f.accounts.DeleteAccount(ctx, "till"))

	_, err = f.entries.PostIncome(ctx, usecase.PostEntryInput{AccountID: "till", Amount: amount(1), Description: "Late sale"})
	assert.ErrorIs(t, err, domain.ErrAccountClosed)

	assert.ErrorIs(t, f.accounts.DeleteAccount(ctx, "missing"), domain.ErrAccountNotFound)
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	f := newFixture(t)
	f.seedAccount("a", domain.AccountTypeCash, 0)
	f.seedAccount("b", domain.AccountTypeBank, 0)
	f.seedAccount("c", domain.AccountTypeAsset, 0)
	ctx := context.Background()
	require.NoError(t, f.accounts.DeleteAccount(ctx, "b"))

	active, err := f.accounts.ListAccounts(ctx, usecase.ListAccountsInput{})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := f.accounts.ListAccounts(ctx, usecase.ListAccountsInput{IncludeClosed: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := f.accounts.ListAccounts(ctx, usecase.ListAccountsInput{Limit: 1, Offset: 1, IncludeClosed: true})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].ID)
}
