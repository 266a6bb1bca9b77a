package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"roulette-backend/internal/models"
)

const (
	DefaultStartingFTN = 100
	DefaultStartingLBR = 50

	DefaultTransactionLimit = 10
)

// Ledger is the authoritative record of users, their balances and their
// spin history.
type Ledger interface {
	GetUser(id int64) (models.User, bool)
	GetUserByUsername(username string) (models.User, bool)
	CreateUser(fields models.NewUser) (models.User, error)
	FindOrCreateUser(fields models.NewUser) (models.User, bool)
	UpdateUserBalance(id int64, ftnDelta, lbrDelta int64) (models.User, bool)
	CreateTransaction(fields models.NewTransaction) models.Transaction
	GetUserTransactions(userID int64, limit int) []models.Transaction
}

var _ Ledger = (*MemoryLedger)(nil)

// MemoryLedger keeps the ledger in process memory. Its state lives as long
// as the value does.
type MemoryLedger struct {
	mu sync.RWMutex

	users        map[int64]models.User
	transactions map[int64]models.Transaction

	nextUserID int64
	nextTxID   int64

	startingFTN int64
	startingLBR int64
	now         func() time.Time
}

type LedgerOption func(*MemoryLedger)

// WithStartingBalances sets the balances seeded into every new user.
func WithStartingBalances(ftn, lbr int64) LedgerOption {
	return func(l *MemoryLedger) {
		l.startingFTN = ftn
		l.startingLBR = lbr
	}
}

func WithClock(now func() time.Time) LedgerOption {
	return func(l *MemoryLedger) {
		l.now = now
	}
}

func NewMemoryLedger(opts ...LedgerOption) *MemoryLedger {
	l := &MemoryLedger{
		users:        make(map[int64]models.User),
		transactions: make(map[int64]models.Transaction),
		nextUserID:   1,
		nextTxID:     1,
		startingFTN:  DefaultStartingFTN,
		startingLBR:  DefaultStartingLBR,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *MemoryLedger) GetUser(id int64) (models.User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	user, ok := l.users[id]
	return user, ok
}

func (l *MemoryLedger) GetUserByUsername(username string) (models.User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.findByUsername(username)
}

func (l *MemoryLedger) CreateUser(fields models.NewUser) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.findByUsername(fields.Username); exists {
		return models.User{}, fmt.Errorf("create user %q: %w", fields.Username, ErrUsernameTaken)
	}

	return l.insertUser(fields), nil
}

// FindOrCreateUser returns the user with the given username, creating it
// when absent. The bool reports whether a new user was created.
func (l *MemoryLedger) FindOrCreateUser(fields models.NewUser) (models.User, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if user, exists := l.findByUsername(fields.Username); exists {
		return user, false
	}

	return l.insertUser(fields), true
}

// UpdateUserBalance applies both deltas to the user's balances. It does not
// check for negative results; callers must.
func (l *MemoryLedger) UpdateUserBalance(id int64, ftnDelta, lbrDelta int64) (models.User, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.users[id]
	if !ok {
		return models.User{}, false
	}

	user.FTNBalance += ftnDelta
	user.LBRBalance += lbrDelta
	l.users[id] = user

	return user, true
}

func (l *MemoryLedger) CreateTransaction(fields models.NewTransaction) models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := fields.Timestamp
	if ts.IsZero() {
		ts = l.now().UTC()
	}

	tx := models.Transaction{
		ID:        l.nextTxID,
		UserID:    fields.UserID,
		BetAmount: fields.BetAmount,
		BetToken:  fields.BetToken,
		BetColor:  fields.BetColor,
		Result:    fields.Result,
		Timestamp: ts,
	}
	l.nextTxID++
	l.transactions[tx.ID] = tx

	return tx
}

// GetUserTransactions returns the user's most recent transactions first.
// A non-positive limit falls back to DefaultTransactionLimit.
func (l *MemoryLedger) GetUserTransactions(userID int64, limit int) []models.Transaction {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}

	l.mu.RLock()
	result := make([]models.Transaction, 0, limit)
	for _, tx := range l.transactions {
		if tx.UserID == userID {
			result = append(result, tx)
		}
	}
	l.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].ID > result[j].ID
	})

	if len(result) > limit {
		result = result[:limit]
	}

	return result
}

// findByUsername must be called with l.mu held.
func (l *MemoryLedger) findByUsername(username string) (models.User, bool) {
	for _, user := range l.users {
		if user.Username == username {
			return user, true
		}
	}
	return models.User{}, false
}

// insertUser must be called with l.mu held for writing.
func (l *MemoryLedger) insertUser(fields models.NewUser) models.User {
	user := models.User{
		ID:            l.nextUserID,
		Username:      fields.Username,
		WalletAddress: fields.WalletAddress,
		FTNBalance:    l.startingFTN,
		LBRBalance:    l.startingLBR,
		CreatedAt:     l.now().UTC(),
	}
	l.nextUserID++
	l.users[user.ID] = user

	return user
}
