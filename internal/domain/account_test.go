package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		input   string
		want    AccountType
		wantErr error
	}{
		{input: "cash", want: AccountTypeCash},
		{input: "bank", want: AccountTypeBank},
		{input: "liability", want: AccountTypeLiability},
		{input: "", wantErr: ErrAccountTypeRequired},
		{input: "savings", wantErr: ErrInvalidAccountType},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAccountType(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected validation category, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAccountType_NormalSide(t *testing.T) {
	debit := []AccountType{AccountTypeCash, AccountTypeBank, AccountTypeAsset, AccountTypeExpense}
	credit := []AccountType{AccountTypeLiability, AccountTypeCredit, AccountTypeEquity, AccountTypeRevenue}

	for _, at := range debit {
		if at.NormalSide() != SideDebit {
			t.Errorf("%s: expected debit normal side", at)
		}
	}
	for _, at := range credit {
		if at.NormalSide() != SideCredit {
			t.Errorf("%s: expected credit normal side", at)
		}
	}
}

func TestAccount_ValidatePosting(t *testing.T) {
	tests := []struct {
		name        string
		accountType AccountType
		status      AccountStatus
		balance     decimal.Decimal
		delta       decimal.Decimal
		wantErr     error
	}{
		{
			name:        "cash debit within balance",
			accountType: AccountTypeCash,
			status:      AccountStatusActive,
			balance:     decimal.NewFromInt(100),
			delta:       decimal.NewFromInt(-50),
		},
		{
			name:        "cash debit of exact balance",
			accountType: AccountTypeCash,
			status:      AccountStatusActive,
			balance:     decimal.NewFromInt(100),
			delta:       decimal.NewFromInt(-100),
		},
		{
			name:        "bank overdraft rejected",
			accountType: AccountTypeBank,
			status:      AccountStatusActive,
			balance:     decimal.NewFromInt(100),
			delta:       decimal.NewFromInt(-150),
			wantErr:     ErrInsufficientFunds,
		},
		{
			name:        "asset overdraft rejected",
			accountType: AccountTypeAsset,
			status:      AccountStatusActive,
			balance:     decimal.Zero,
			delta:       decimal.NewFromInt(-1),
			wantErr:     ErrInsufficientFunds,
		},
		{
			name:        "liability may go negative",
			accountType: AccountTypeLiability,
			status:      AccountStatusActive,
			balance:     decimal.Zero,
			delta:       decimal.NewFromInt(-300),
		},
		{
			name:        "credit into cash always allowed",
			accountType: AccountTypeCash,
			status:      AccountStatusActive,
			balance:     decimal.Zero,
			delta:       decimal.NewFromInt(10),
		},
		{
			name:        "closed account rejected",
			accountType: AccountTypeCash,
			status:      AccountStatusClosed,
			balance:     decimal.NewFromInt(100),
			delta:       decimal.NewFromInt(10),
			wantErr:     ErrAccountClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{ID: "acc-1", Type: tt.accountType, Status: tt.status, Balance: tt.balance}

			err := acc.ValidatePosting(tt.delta)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAccount_ApplyDelta(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}

	if got := acc.ApplyDelta(decimal.NewFromInt(-40)); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected 60, got %s", got)
	}
	if !acc.Balance.Equal(decimal.NewFromInt(100)) {
		t.Error("ApplyDelta must not mutate the account")
	}
}
