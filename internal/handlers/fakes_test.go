package handlers

import (
	"context"
	"strings"
	"sync"
	"time"

	"AIRESCAPE_BACK-END/internal/config"
	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/repository"
)

func testJWT() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:         "handler-test-secret",
		Issuer:         "airescape",
		AccessTokenTTL: time.Hour,
		ResetTokenTTL:  10 * time.Minute,
	}
}

type fakeUsers struct {
	mu    sync.Mutex
	users []models.User
}

func (f *fakeUsers) CreateUser(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == strings.ToLower(u.Email) {
			return models.User{}, repository.ErrConflict
		}
	}
	u.ID = int64(len(f.users) + 1)
	u.Email = strings.ToLower(u.Email)
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUsers) GetUser(_ context.Context, id int64) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (f *fakeUsers) ListUsers(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = u
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (f *fakeUsers) DeleteUser(context.Context, int64) error { return nil }

type fakeResets struct {
	mu     sync.Mutex
	codes  []models.PasswordResetCode
	hashes map[int64]string
}

func (f *fakeResets) CreateResetCode(_ context.Context, rc models.PasswordResetCode) (models.PasswordResetCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rc.ID = int64(len(f.codes) + 1)
	f.codes = append(f.codes, rc)
	return rc, nil
}

func (f *fakeResets) LatestResetCode(_ context.Context, userID int64) (models.PasswordResetCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.codes) - 1; i >= 0; i-- {
		if f.codes[i].UserID == userID {
			return f.codes[i], nil
		}
	}
	return models.PasswordResetCode{}, repository.ErrNotFound
}

func (f *fakeResets) ResetPassword(_ context.Context, userID int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hashes == nil {
		f.hashes = make(map[int64]string)
	}
	f.hashes[userID] = hash
	for i := range f.codes {
		if f.codes[i].UserID == userID {
			f.codes[i].Used = true
		}
	}
	return nil
}
