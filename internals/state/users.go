package state

import (
	"context"
	"strings"

	"edugest_backend/internals/features/kindergarten/model"
	authHelper "edugest_backend/internals/features/users/auth/helper"
)

// AddUser menyimpan password sebagai hash bcrypt.
func (c *Controller) AddUser(ctx context.Context, u model.User) (model.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	u.Name = strings.TrimSpace(u.Name)
	if err := authHelper.ValidateNewUser(u.Username, u.Password); err != nil {
		return model.User{}, invalid("username", err.Error())
	}
	if !u.Role.Valid() {
		return model.User{}, invalid("role", "ADMIN, EDUCATOR sau ASISTENT")
	}
	if u.Name == "" {
		u.Name = u.Username
	}
	// hash di luar lock, bcrypt lambat
	hash, err := authHelper.HashPassword(u.Password)
	if err != nil {
		return model.User{}, err
	}

	var created model.User
	err = c.mutate(ctx, func(s *AppState) ([]string, error) {
		for _, x := range s.Users {
			if strings.EqualFold(x.Username, u.Username) {
				return nil, ErrDuplicateUsername
			}
		}
		u.ID = c.ids("u")
		u.Password = hash
		s.Users = append(s.Users, u)
		created = u.Public()
		return []string{KeyUsers}, nil
	})
	return created, err
}

func (c *Controller) DeleteUser(ctx context.Context, id string) error {
	return c.mutate(ctx, func(s *AppState) ([]string, error) {
		if id == model.SeedAdminID {
			return nil, ErrProtectedUser
		}
		idx := -1
		for i, u := range s.Users {
			if u.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrUserNotFound
		}
		s.Users = append(s.Users[:idx:idx], s.Users[idx+1:]...)
		return []string{KeyUsers}, nil
	})
}

// FindUserByUsername mengembalikan user lengkap dengan password (untuk login)
func (c *Controller) FindUserByUsername(username string) (model.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, u := range c.st.Users {
		if u.Username == username {
			return u, true
		}
	}
	return model.User{}, false
}

func (c *Controller) FindUser(id string) (model.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, u := range c.st.Users {
		if u.ID == id {
			return u.Public(), true
		}
	}
	return model.User{}, false
}

// CacheAuthUser menyimpan user yang login (tanpa password) di auth_user.
func (c *Controller) CacheAuthUser(ctx context.Context, u model.User) error {
	return c.mutate(ctx, func(s *AppState) ([]string, error) {
		pub := u.Public()
		s.AuthUser = &pub
		return []string{KeyAuthUser}, nil
	})
}

func (c *Controller) ClearAuthUser(ctx context.Context) error {
	return c.mutate(ctx, func(s *AppState) ([]string, error) {
		s.AuthUser = nil
		return []string{KeyAuthUser}, nil
	})
}
