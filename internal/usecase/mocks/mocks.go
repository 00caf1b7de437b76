package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storeledger/internal/domain"
	"github.com/iho/storeledger/internal/usecase"
)

// Store is an in-memory ledger shared by the fake repositories. Transactions started through
// FakeTransactionManager are serialized and roll the store back unless committed.
type Store struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	accounts  map[string]*domain.Account
	entries   map[string]*domain.Entry
	transfers map[string]*domain.Transfer
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]*domain.Account),
		entries:   make(map[string]*domain.Entry),
		transfers: make(map[string]*domain.Transfer),
	}
}

type snapshot struct {
	accounts  map[string]domain.Account
	entries   map[string]domain.Entry
	transfers map[string]domain.Transfer
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		accounts:  make(map[string]domain.Account, len(s.accounts)),
		entries:   make(map[string]domain.Entry, len(s.entries)),
		transfers: make(map[string]domain.Transfer, len(s.transfers)),
	}
	for id, a := range s.accounts {
		snap.accounts[id] = *a
	}
	for id, e := range s.entries {
		snap.entries[id] = *e
	}
	for id, t := range s.transfers {
		snap.transfers[id] = *t
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]*domain.Account, len(snap.accounts))
	for id, a := range snap.accounts {
		a := a
		s.accounts[id] = &a
	}
	s.entries = make(map[string]*domain.Entry, len(snap.entries))
	for id, e := range snap.entries {
		e := e
		s.entries[id] = &e
	}
	s.transfers = make(map[string]*domain.Transfer, len(snap.transfers))
	for id, t := range snap.transfers {
		t := t
		s.transfers[id] = &t
	}
}

// PutAccount seeds an account directly, bypassing the usecases.
func (s *Store) PutAccount(a *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.accounts[a.ID] = &cp
}

// PutEntry seeds an entry directly without touching balances.
func (s *Store) PutEntry(e *domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.entries[e.ID] = &cp
}

// PutTransfer seeds a transfer record directly.
func (s *Store) PutTransfer(t *domain.Transfer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.transfers[t.ID] = &cp
}

// Balance returns the stored balance of an account, or zero when unknown.
func (s *Store) Balance(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[id]; ok {
		return a.Balance
	}
	return decimal.Zero
}

// EntryCount returns the number of stored entries.
func (s *Store) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// TransferCount returns the number of stored transfers.
func (s *Store) TransferCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transfers)
}

// FakeTransactionManager is an in-memory implementation of TransactionManager.
type FakeTransactionManager struct {
	store *Store

	BeginFunc  func(ctx context.Context) (usecase.Transaction, error)
	CommitFunc func(ctx context.Context) error
}

func NewFakeTransactionManager(store *Store) *FakeTransactionManager {
	return &FakeTransactionManager{store: store}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.store.txMu.Lock()
	return &FakeTransaction{store: m.store, snap: m.store.snapshot(), commit: m.CommitFunc}, nil
}

// FakeTransaction restores the store snapshot on rollback unless it was committed.
type FakeTransaction struct {
	store  *Store
	snap   snapshot
	commit func(ctx context.Context) error
	done   bool
}

func (t *FakeTransaction) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}
	if t.commit != nil {
		if err := t.commit(ctx); err != nil {
			return err
		}
	}
	t.done = true
	t.store.txMu.Unlock()
	return nil
}

func (t *FakeTransaction) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.restore(t.snap)
	t.store.txMu.Unlock()
	return nil
}

// FakeAccountRepository is an in-memory implementation of AccountRepository.
type FakeAccountRepository struct {
	store *Store

	CreateFunc        func(ctx context.Context, account *domain.Account) error
	AdjustBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, guard bool) (decimal.Decimal, error)
	ListAllFunc       func(ctx context.Context) ([]*domain.Account, error)
}

func NewFakeAccountRepository(store *Store) *FakeAccountRepository {
	return &FakeAccountRepository{store: store}
}

func (m *FakeAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.store.PutAccount(account)
	return nil
}

func (m *FakeAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if acc, ok := m.store.accounts[id]; ok {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *FakeAccountRepository) GetByIDForUpdate(ctx context.Context, _ usecase.Transaction, id string) (*domain.Account, error) {
	return m.GetByID(ctx, id)
}

func (m *FakeAccountRepository) GetByIDsForUpdate(_ context.Context, _ usecase.Transaction, ids []string) ([]*domain.Account, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.store.accounts[id]; ok {
			cp := *acc
			accounts = append(accounts, &cp)
		}
	}
	return accounts, nil
}

func (m *FakeAccountRepository) Update(_ context.Context, account *domain.Account) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	existing, ok := m.store.accounts[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	existing.Name = account.Name
	existing.AccountNumber = account.AccountNumber
	existing.BankName = account.BankName
	existing.Description = account.Description
	existing.UpdatedAt = account.UpdatedAt
	existing.Version++
	return nil
}

func (m *FakeAccountRepository) Close(_ context.Context, id string, closedAt time.Time) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	acc, ok := m.store.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Status = domain.AccountStatusClosed
	acc.UpdatedAt = closedAt
	acc.Version++
	return nil
}

func (m *FakeAccountRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, guard bool) (decimal.Decimal, error) {
	if m.AdjustBalanceFunc != nil {
		return m.AdjustBalanceFunc(ctx, tx, id, delta, guard)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	acc, ok := m.store.accounts[id]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	next := acc.Balance.Add(delta)
	if guard && next.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: account %s", domain.ErrInsufficientFunds, id)
	}
	acc.Balance = next
	acc.Version++
	return next, nil
}

func (m *FakeAccountRepository) List(_ context.Context, limit, offset int, includeClosed bool) ([]*domain.Account, error) {
	all := m.sorted(includeClosed)
	if offset >= len(all) {
		return []*domain.Account{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *FakeAccountRepository) ListAll(ctx context.Context) ([]*domain.Account, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return m.sorted(true), nil
}

func (m *FakeAccountRepository) sorted(includeClosed bool) []*domain.Account {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	accounts := make([]*domain.Account, 0, len(m.store.accounts))
	for _, acc := range m.store.accounts {
		if !includeClosed && !acc.IsActive() {
			continue
		}
		cp := *acc
		accounts = append(accounts, &cp)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts
}

// FakeEntryRepository is an in-memory implementation of EntryRepository.
type FakeEntryRepository struct {
	store *Store

	CreateFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	ListFunc   func(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error)
}

func NewFakeEntryRepository(store *Store) *FakeEntryRepository {
	return &FakeEntryRepository{store: store}
}

func (m *FakeEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.store.PutEntry(entry)
	return nil
}

func (m *FakeEntryRepository) GetByID(_ context.Context, id string) (*domain.Entry, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if e, ok := m.store.entries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *FakeEntryRepository) GetByIDForUpdate(ctx context.Context, _ usecase.Transaction, id string) (*domain.Entry, error) {
	return m.GetByID(ctx, id)
}

func (m *FakeEntryRepository) Update(_ context.Context, entry *domain.Entry) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	cp := *entry
	m.store.entries[entry.ID] = &cp
	return nil
}

func (m *FakeEntryRepository) Delete(_ context.Context, _ usecase.Transaction, id string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.store.entries, id)
	return nil
}

func (m *FakeEntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var entries []*domain.Entry
	for _, e := range m.store.entries {
		if filter.AccountID != "" && e.AccountID != filter.AccountID {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		cp := *e
		entries = append(entries, &cp)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}
	return entries, nil
}

func (m *FakeEntryRepository) ListByTransfers(_ context.Context, transferIDs []string) ([]*domain.Entry, error) {
	want := make(map[string]bool, len(transferIDs))
	for _, id := range transferIDs {
		want[id] = true
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var entries []*domain.Entry
	for _, e := range m.store.entries {
		if want[e.TransferID] {
			cp := *e
			entries = append(entries, &cp)
		}
	}
	return entries, nil
}

func (m *FakeEntryRepository) SumByAccount(context.Context) (map[string]decimal.Decimal, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	sums := make(map[string]decimal.Decimal)
	for _, e := range m.store.entries {
		sums[e.AccountID] = sums[e.AccountID].Add(e.SignedAmount())
	}
	return sums, nil
}

// FakeTransferRepository is an in-memory implementation of TransferRepository.
type FakeTransferRepository struct {
	store *Store

	CreateFunc func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
}

func NewFakeTransferRepository(store *Store) *FakeTransferRepository {
	return &FakeTransferRepository{store: store}
}

func (m *FakeTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.store.PutTransfer(transfer)
	return nil
}

func (m *FakeTransferRepository) GetByID(_ context.Context, id string) (*domain.Transfer, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if t, ok := m.store.transfers[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *FakeTransferRepository) List(_ context.Context, limit int) ([]*domain.Transfer, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	transfers := make([]*domain.Transfer, 0, len(m.store.transfers))
	for _, t := range m.store.transfers {
		cp := *t
		transfers = append(transfers, &cp)
	}
	sort.Slice(transfers, func(i, j int) bool {
		if !transfers[i].CreatedAt.Equal(transfers[j].CreatedAt) {
			return transfers[i].CreatedAt.After(transfers[j].CreatedAt)
		}
		return transfers[i].ID > transfers[j].ID
	})
	if limit > 0 && len(transfers) > limit {
		transfers = transfers[:limit]
	}
	return transfers, nil
}

// FakeIDGenerator is a deterministic implementation of IDGenerator.
type FakeIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (m *FakeIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// FakeCache is an in-memory implementation of Cache.
type FakeCache struct {
	mu   sync.Mutex
	data map[string][]byte

	Gets    int
	Deletes int
}

func NewFakeCache() *FakeCache {
	return &FakeCache{data: make(map[string][]byte)}
}

func (m *FakeCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	return m.data[key], nil
}

func (m *FakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *FakeCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

// Has reports whether key is cached.
func (m *FakeCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// FakeIdempotencyStore is an in-memory implementation of IdempotencyStore.
type FakeIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewFakeIdempotencyStore() *FakeIdempotencyStore {
	return &FakeIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *FakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *FakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *FakeIdempotencyStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Ledger bundles a Store with fakes for every repository the usecases need.
type Ledger struct {
	Store     *Store
	TxManager *FakeTransactionManager
	Accounts  *FakeAccountRepository
	Entries   *FakeEntryRepository
	Transfers *FakeTransferRepository
	IDs       *FakeIDGenerator
}

// NewLedger wires a fresh in-memory ledger.
func NewLedger() *Ledger {
	store := NewStore()
	return &Ledger{
		Store:     store,
		TxManager: NewFakeTransactionManager(store),
		Accounts:  NewFakeAccountRepository(store),
		Entries:   NewFakeEntryRepository(store),
		Transfers: NewFakeTransferRepository(store),
		IDs:       NewFakeIDGenerator(),
	}
}
