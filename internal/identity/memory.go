package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryProvider keeps accounts in process memory. It backs tests and local runs
// without Firebase credentials.
type MemoryProvider struct {
	mu       sync.Mutex
	accounts map[string]Account
	// Fail, when set, is returned by the next CreateUser call.
	Fail error
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{accounts: map[string]Account{}}
}

func (m *MemoryProvider) CreateUser(_ context.Context, email, password string) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail != nil {
		err := m.Fail
		m.Fail = nil
		return Account{}, err
	}
	if len(password) < 6 {
		return Account{}, &Error{Kind: KindInvalidInput, Msg: "password must be at least 6 characters"}
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range m.accounts {
		if a.Email == email {
			return Account{}, &Error{Kind: KindEmailExists, Msg: "the user with the provided email already exists"}
		}
	}
	acc := Account{UID: uuid.NewString(), Email: email}
	m.accounts[acc.UID] = acc
	return acc, nil
}

func (m *MemoryProvider) GetUser(_ context.Context, uid string) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[uid]
	if !ok {
		return Account{}, &Error{Kind: KindUserNotFound, Msg: "no user record found for the given identifier"}
	}
	return acc, nil
}

func (m *MemoryProvider) DeleteUser(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[uid]; !ok {
		return &Error{Kind: KindUserNotFound, Msg: "no user record found for the given identifier"}
	}
	delete(m.accounts, uid)
	return nil
}

// Len reports how many accounts are registered.
func (m *MemoryProvider) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}
