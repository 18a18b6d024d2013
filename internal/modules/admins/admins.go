package admins

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
)

var ErrBadCredentials = errors.New("invalid username or password")

// Admin credentials are bcrypt-hashed at rest. The hash never leaves the
// server; list responses strip it.
type Admin struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// Master fallback for first-time setup, honored only while the admins
// collection is empty.
const (
	masterUsername = "admin"
	masterPassword = "admin123"
)

type Service struct {
	col  *jsonstore.Collection[Admin]
	gate *jsonstore.Scalar[string]
}

func NewService(s *jsonstore.Store) *Service {
	return &Service{
		col:  jsonstore.NewCollection[Admin](s, "admins"),
		gate: jsonstore.NewScalar[string](s, "gatePassword"),
	}
}

func (s *Service) List(ctx context.Context) ([]Admin, error) {
	_ = ctx
	return s.col.All()
}

func (s *Service) Create(ctx context.Context, username, password string) (Admin, error) {
	_ = ctx
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, err
	}
	a := Admin{ID: time.Now().UnixMilli(), Username: username, PasswordHash: string(hash)}
	err = s.col.Mutate(func(items []Admin) ([]Admin, error) {
		for _, existing := range items {
			if existing.Username == username {
				return nil, errors.New("username already exists")
			}
		}
		return append(items, a), nil
	})
	return a, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	_ = ctx
	return s.col.Mutate(func(items []Admin) ([]Admin, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, jsonstore.ErrNotFound
	})
}

// Login checks the credentials against the stored accounts, falling back
// to the master pair while no accounts exist yet.
func (s *Service) Login(ctx context.Context, username, password string) (Admin, error) {
	_ = ctx
	items, err := s.col.All()
	if err != nil {
		return Admin{}, err
	}
	if len(items) == 0 {
		if username == masterUsername && password == masterPassword {
			return Admin{Username: masterUsername}, nil
		}
		return Admin{}, ErrBadCredentials
	}
	for _, a := range items {
		if a.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil {
			return a, nil
		}
		break
	}
	return Admin{}, ErrBadCredentials
}

// VerifyGate checks the shared entry-screen password.
func (s *Service) VerifyGate(ctx context.Context, password string) (bool, error) {
	_ = ctx
	hash, err := s.gate.Get()
	if err != nil {
		return false, err
	}
	if hash == "" {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, nil
}

func (s *Service) SetGate(ctx context.Context, password string) error {
	_ = ctx
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.gate.Set(string(hash))
}
