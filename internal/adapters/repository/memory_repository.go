package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

var (
	_ domain.SnapshotStore     = (*InMemorySnapshotRepository)(nil)
	_ domain.AccountRepository = (*InMemoryAccountRepository)(nil)
)

type InMemorySnapshotRepository struct {
	store map[string]map[domain.SnapshotKey][]byte

	mu sync.RWMutex
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{
		store: make(map[string]map[domain.SnapshotKey][]byte),
	}
}

func (r *InMemorySnapshotRepository) Load(ctx context.Context, playerID string, key domain.SnapshotKey) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.store[playerID][key]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

func (r *InMemorySnapshotRepository) Save(ctx context.Context, playerID string, key domain.SnapshotKey, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, ok := r.store[playerID]
	if !ok {
		docs = make(map[domain.SnapshotKey][]byte)
		r.store[playerID] = docs
	}
	docs[key] = append([]byte(nil), data...)
	return nil
}

func (r *InMemorySnapshotRepository) Delete(ctx context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, playerID)
	return nil
}

type InMemoryAccountRepository struct {
	byID    map[string]*domain.Account
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return domain.ErrEmailAlreadyExists
	}

	stored := *account
	r.byID[account.ID] = &stored
	r.byEmail[account.Email] = account.ID
	return nil
}

func (r *InMemoryAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	account := *r.byID[id]
	return &account, nil
}

func (r *InMemoryAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	account := *stored
	return &account, nil
}
