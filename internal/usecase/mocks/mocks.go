package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/usecase"
)

// Store is an in-memory member and bill database with row locks.
// Writes made through a MockTransaction become visible only on Commit.
type Store struct {
	mu      sync.Mutex
	members map[int64]*domain.Member
	bills   []*domain.Bill
	rows    map[int64]*sync.Mutex
	nextID  int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		members: make(map[int64]*domain.Member),
		rows:    make(map[int64]*sync.Mutex),
	}
}

// PutMember stores a committed member, assigning an id when it has none.
func (s *Store) PutMember(m *domain.Member) *domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLocked(m)
}

func (s *Store) putLocked(m *domain.Member) *domain.Member {
	if m.ID == 0 {
		s.nextID++
		m.ID = s.nextID
	} else if m.ID > s.nextID {
		s.nextID = m.ID
	}
	cp := *m
	s.members[m.ID] = &cp
	return copyMember(&cp)
}

// Member returns a copy of the committed member, or nil.
func (s *Store) Member(id int64) *domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return nil
	}
	return copyMember(m)
}

// Bills returns the committed bills of a member in commit order.
func (s *Store) Bills(memberID int64) []*domain.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Bill
	for _, b := range s.bills {
		if b.MemberID == memberID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out
}

// BillCount returns the number of committed bills.
func (s *Store) BillCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bills)
}

func (s *Store) rowLock(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rows[id]
	if !ok {
		l = &sync.Mutex{}
		s.rows[id] = l
	}
	return l
}

func copyMember(m *domain.Member) *domain.Member {
	cp := *m
	return &cp
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	store *Store

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu        sync.Mutex
	begun     int
	committed int
	rolled    int
}

// NewMockTransactionManager creates a manager whose transactions stage writes for store.
// store may be nil when only commit and rollback bookkeeping is needed.
func NewMockTransactionManager(store *Store) *MockTransactionManager {
	return &MockTransactionManager{store: store}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	m.begun++
	m.mu.Unlock()
	return &MockTransaction{
		manager: m,
		store:   m.store,
		members: make(map[int64]*domain.Member),
		locks:   make(map[int64]*sync.Mutex),
	}, nil
}

// Counts reports how many transactions were begun, committed and rolled back.
func (m *MockTransactionManager) Counts() (begun, committed, rolledBack int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.begun, m.committed, m.rolled
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	manager *MockTransactionManager
	store   *Store
	members map[int64]*domain.Member
	bills   []*domain.Bill
	locks   map[int64]*sync.Mutex
	done    bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("tx is closed")
	}
	if t.CommitFunc != nil {
		if err := t.CommitFunc(ctx); err != nil {
			return err
		}
	}
	if t.store != nil {
		t.store.mu.Lock()
		for _, m := range t.members {
			t.store.putLocked(m)
		}
		t.store.bills = append(t.store.bills, t.bills...)
		t.store.mu.Unlock()
	}
	t.finish(true)
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	if t.RollbackFunc != nil {
		_ = t.RollbackFunc(ctx)
	}
	t.finish(false)
	return nil
}

func (t *MockTransaction) finish(committed bool) {
	t.done = true
	t.members = nil
	t.bills = nil
	for _, l := range t.locks {
		l.Unlock()
	}
	t.locks = nil
	if t.manager != nil {
		t.manager.mu.Lock()
		if committed {
			t.manager.committed++
		} else {
			t.manager.rolled++
		}
		t.manager.mu.Unlock()
	}
}

func (t *MockTransaction) lock(id int64) {
	if _, held := t.locks[id]; held || t.store == nil {
		return
	}
	l := t.store.rowLock(id)
	l.Lock()
	t.locks[id] = l
}

// MockMemberRepository is a mock implementation of MemberRepository backed by a Store.
type MockMemberRepository struct {
	store *Store

	CreateFunc                   func(ctx context.Context, member *domain.Member) (*domain.Member, error)
	GetByIDFunc                  func(ctx context.Context, id int64) (*domain.Member, error)
	GetByIDForUpdateFunc         func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Member, error)
	UpdateBalanceAndIntegralFunc func(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, integral int64, updatedAt time.Time) (*domain.Member, error)
	UpdateProfileFunc            func(ctx context.Context, member *domain.Member) (*domain.Member, error)
	SetLastLoginFunc             func(ctx context.Context, id int64, ip string, at time.Time) (*domain.Member, error)
	SoftDeleteFunc               func(ctx context.Context, id int64, deletedAt time.Time) error
	ListFunc                     func(ctx context.Context, filter domain.MemberFilter) ([]*domain.Member, error)
	CountFunc                    func(ctx context.Context, filter domain.MemberFilter) (int64, error)
}

func NewMockMemberRepository(store *Store) *MockMemberRepository {
	return &MockMemberRepository{store: store}
}

func (m *MockMemberRepository) Create(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, member)
	}
	return m.store.PutMember(member), nil
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	member := m.store.Member(id)
	if member == nil || member.IsDeleted() {
		return nil, domain.ErrMemberNotFound
	}
	return member, nil
}

func (m *MockMemberRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Member, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	mt, ok := tx.(*MockTransaction)
	if !ok {
		return m.GetByID(ctx, id)
	}
	mt.lock(id)
	if staged, ok := mt.members[id]; ok {
		return copyMember(staged), nil
	}
	return m.GetByID(ctx, id)
}

func (m *MockMemberRepository) UpdateBalanceAndIntegral(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, integral int64, updatedAt time.Time) (*domain.Member, error) {
	if m.UpdateBalanceAndIntegralFunc != nil {
		return m.UpdateBalanceAndIntegralFunc(ctx, tx, id, balance, integral, updatedAt)
	}
	current, err := m.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	current.Balance = balance
	current.Integral = integral
	current.UpdatedAt = updatedAt
	if mt, ok := tx.(*MockTransaction); ok {
		mt.members[id] = copyMember(current)
	} else {
		m.store.PutMember(current)
	}
	return current, nil
}

func (m *MockMemberRepository) UpdateProfile(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, member)
	}
	if _, err := m.GetByID(ctx, member.ID); err != nil {
		return nil, err
	}
	return m.store.PutMember(member), nil
}

func (m *MockMemberRepository) SetLastLogin(ctx context.Context, id int64, ip string, at time.Time) (*domain.Member, error) {
	if m.SetLastLoginFunc != nil {
		return m.SetLastLoginFunc(ctx, id, ip, at)
	}
	member, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	member.LastLoginIP = ip
	member.LastLoginTime = &at
	return m.store.PutMember(member), nil
}

func (m *MockMemberRepository) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, deletedAt)
	}
	member, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	member.DeletedAt = &deletedAt
	m.store.PutMember(member)
	return nil
}

func (m *MockMemberRepository) List(ctx context.Context, filter domain.MemberFilter) ([]*domain.Member, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	matched := m.match(filter)
	if filter.Offset >= len(matched) {
		return []*domain.Member{}, nil
	}
	end := len(matched)
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], nil
}

func (m *MockMemberRepository) Count(ctx context.Context, filter domain.MemberFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	return int64(len(m.match(filter))), nil
}

func (m *MockMemberRepository) match(f domain.MemberFilter) []*domain.Member {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var out []*domain.Member
	for _, mem := range m.store.members {
		if mem.IsDeleted() {
			continue
		}
		if f.Keyword != nil {
			kw := strings.ToLower(*f.Keyword)
			if !strings.Contains(strings.ToLower(mem.Nickname), kw) &&
				!strings.Contains(strings.ToLower(mem.Email), kw) &&
				!strings.Contains(strings.ToLower(mem.Mobile), kw) &&
				!strings.Contains(strings.ToLower(mem.UniqueCode), kw) {
				continue
			}
		}
		if f.Status != nil && mem.Status != *f.Status {
			continue
		}
		if f.Sex != nil && mem.Sex != *f.Sex {
			continue
		}
		if f.IsPromoter != nil && mem.IsPromoter != *f.IsPromoter {
			continue
		}
		if f.UniqueCode != nil && mem.UniqueCode != *f.UniqueCode {
			continue
		}
		if f.Email != nil && mem.Email != *f.Email {
			continue
		}
		if f.ExcludeID != nil && mem.ID == *f.ExcludeID {
			continue
		}
		out = append(out, copyMember(mem))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// MockBillRepository is a mock implementation of BillWriter and BillReader backed by a Store.
type MockBillRepository struct {
	store *Store

	AppendFunc        func(ctx context.Context, tx usecase.Transaction, bill *domain.Bill) error
	ListByMemberFunc  func(ctx context.Context, memberID int64, filter domain.BillFilter) ([]*domain.Bill, error)
	CountByMemberFunc func(ctx context.Context, memberID int64, filter domain.BillFilter) (int64, error)
	SumFunc           func(ctx context.Context, tx usecase.Transaction, memberID int64) (*domain.BillSummary, error)
}

func NewMockBillRepository(store *Store) *MockBillRepository {
	return &MockBillRepository{store: store}
}

func (m *MockBillRepository) Append(ctx context.Context, tx usecase.Transaction, bill *domain.Bill) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, bill)
	}
	cp := *bill
	if mt, ok := tx.(*MockTransaction); ok {
		mt.bills = append(mt.bills, &cp)
		return nil
	}
	m.store.mu.Lock()
	m.store.bills = append(m.store.bills, &cp)
	m.store.mu.Unlock()
	return nil
}

func (m *MockBillRepository) ListByMember(ctx context.Context, memberID int64, filter domain.BillFilter) ([]*domain.Bill, error) {
	if m.ListByMemberFunc != nil {
		return m.ListByMemberFunc(ctx, memberID, filter)
	}
	out := m.matching(memberID, filter)
	if filter.Offset >= len(out) {
		return []*domain.Bill{}, nil
	}
	end := len(out)
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return out[filter.Offset:end], nil
}

func (m *MockBillRepository) CountByMember(ctx context.Context, memberID int64, filter domain.BillFilter) (int64, error) {
	if m.CountByMemberFunc != nil {
		return m.CountByMemberFunc(ctx, memberID, filter)
	}
	return int64(len(m.matching(memberID, filter))), nil
}

// matching returns memberID's committed bills that match filter, newest first.
func (m *MockBillRepository) matching(memberID int64, filter domain.BillFilter) []*domain.Bill {
	all := m.store.Bills(memberID)
	var out []*domain.Bill
	for i := len(all) - 1; i >= 0; i-- {
		b := all[i]
		if filter.Kind != nil && b.Kind != *filter.Kind {
			continue
		}
		if filter.Direction != nil && b.Direction != *filter.Direction {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (m *MockBillRepository) Sum(ctx context.Context, tx usecase.Transaction, memberID int64) (*domain.BillSummary, error) {
	if m.SumFunc != nil {
		return m.SumFunc(ctx, tx, memberID)
	}
	bills := m.store.Bills(memberID)
	if mt, ok := tx.(*MockTransaction); ok {
		for _, b := range mt.bills {
			if b.MemberID == memberID {
				bills = append(bills, b)
			}
		}
	}
	sum := &domain.BillSummary{BalanceTotal: decimal.Zero}
	for _, b := range bills {
		sum.Count++
		switch b.Kind {
		case domain.BillKindBalance:
			sum.BalanceTotal = sum.BalanceTotal.Add(b.Signed())
		case domain.BillKindIntegral:
			sum.IntegralTotal += b.Signed().IntPart()
		}
	}
	return sum, nil
}

// MockDictRepository is an in-memory implementation of DictRepository.
type MockDictRepository struct {
	mu     sync.Mutex
	dicts  map[int64]*domain.Dict
	nextID int64

	GetBySignFunc func(ctx context.Context, sign string) (*domain.Dict, error)
	getBySignHits int
}

func NewMockDictRepository() *MockDictRepository {
	return &MockDictRepository{dicts: make(map[int64]*domain.Dict)}
}

// GetBySignCalls reports how many times GetBySign reached the repository.
func (m *MockDictRepository) GetBySignCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getBySignHits
}

func (m *MockDictRepository) Create(_ context.Context, dict *domain.Dict) (*domain.Dict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *dict
	cp.ID = m.nextID
	m.dicts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockDictRepository) GetByID(_ context.Context, id int64) (*domain.Dict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dicts[id]
	if !ok || d.DeletedAt != nil {
		return nil, domain.ErrDictNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *MockDictRepository) GetBySign(ctx context.Context, sign string) (*domain.Dict, error) {
	m.mu.Lock()
	m.getBySignHits++
	m.mu.Unlock()
	if m.GetBySignFunc != nil {
		return m.GetBySignFunc(ctx, sign)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.dicts {
		if d.Sign == sign && d.DeletedAt == nil {
			cp := *d
			return &cp, nil
		}
	}
	return nil, domain.ErrDictNotFound
}

func (m *MockDictRepository) Update(_ context.Context, dict *domain.Dict) (*domain.Dict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.dicts[dict.ID]; !ok || d.DeletedAt != nil {
		return nil, domain.ErrDictNotFound
	}
	cp := *dict
	m.dicts[dict.ID] = &cp
	out := cp
	return &out, nil
}

func (m *MockDictRepository) SoftDelete(_ context.Context, id int64, deletedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dicts[id]
	if !ok || d.DeletedAt != nil {
		return domain.ErrDictNotFound
	}
	d.DeletedAt = &deletedAt
	return nil
}

func (m *MockDictRepository) List(ctx context.Context, filter domain.DictFilter) ([]*domain.Dict, error) {
	matched := m.match(filter)
	if filter.Offset >= len(matched) {
		return []*domain.Dict{}, nil
	}
	end := len(matched)
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], nil
}

func (m *MockDictRepository) Count(_ context.Context, filter domain.DictFilter) (int64, error) {
	return int64(len(m.match(filter))), nil
}

func (m *MockDictRepository) match(f domain.DictFilter) []*domain.Dict {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Dict
	for _, d := range m.dicts {
		if d.DeletedAt != nil {
			continue
		}
		if f.Keyword != nil {
			kw := strings.ToLower(*f.Keyword)
			if !strings.Contains(strings.ToLower(d.Name), kw) && !strings.Contains(strings.ToLower(d.Sign), kw) {
				continue
			}
		}
		if f.Status != nil && d.Status != *f.Status {
			continue
		}
		if f.Sign != nil && d.Sign != *f.Sign {
			continue
		}
		if f.ExcludeID != nil && d.ID == *f.ExcludeID {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User

	CreateFunc func(ctx context.Context, user *domain.User) error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) List(_ context.Context, limit, offset int) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*domain.User{}, nil
	}
	end := len(out)
	if offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockRetrier retries while RetryIf reports true, up to MaxAttempts.
type MockRetrier struct {
	MaxAttempts int
	RetryIf     func(err error) bool

	mu       sync.Mutex
	attempts int
}

func (m *MockRetrier) Retry(_ context.Context, operation func() error) error {
	attempts := m.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		m.mu.Lock()
		m.attempts++
		m.mu.Unlock()
		err = operation()
		if err == nil || m.RetryIf == nil || !m.RetryIf(err) {
			return err
		}
	}
	return err
}

// Attempts reports how many times an operation was run.
func (m *MockRetrier) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// MockCache is an in-memory implementation of Cache.
type MockCache struct {
	mu   sync.Mutex
	data map[string][]byte

	GetErr error
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(_ context.Context, key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, usecase.ErrCacheMiss
	}
	return v, nil
}

func (m *MockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Has reports whether key is cached.
func (m *MockCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{data: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response == nil {
		response = []byte(usecase.IdempotencyInFlight)
	}
	m.data[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(_ context.Context, key string, response []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Value returns the stored value for key.
func (m *MockIdempotencyStore) Value(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// MockTokenStore is an in-memory implementation of TokenStore.
type MockTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string

	ExistsErr error
}

func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{tokens: make(map[string]string)}
}

func (m *MockTokenStore) Register(_ context.Context, tokenID, userID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[tokenID] = userID
	return nil
}

func (m *MockTokenStore) Exists(_ context.Context, tokenID string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[tokenID]
	return ok, nil
}

func (m *MockTokenStore) Revoke(_ context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, tokenID)
	return nil
}

// MockTokenIssuer issues opaque tokens with sequential ids.
type MockTokenIssuer struct {
	TTL time.Duration

	mu sync.Mutex
	n  int
}

func (m *MockTokenIssuer) Issue(user *domain.User) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	ttl := m.TTL
	if ttl == 0 {
		ttl = time.Hour
	}
	id := fmt.Sprintf("jti-%d", m.n)
	return &domain.Session{
		Token:     "token-" + id,
		TokenID:   id,
		User:      user,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}
