package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"edugest_backend/internals/features/system/kvstore/repository"
	"edugest_backend/internals/state"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newService(t *testing.T, secret string) (*AuthService, *clock) {
	t.Helper()
	clk := &clock{now: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)}
	ctl := state.New(repository.NewMemoryStore(), state.WithClock(clk.Now))
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return NewAuthService(ctl, secret, time.Hour, nil), clk
}

func TestLoginResults(t *testing.T) {
	svc, _ := newService(t, "s3cret")
	ctx := context.Background()

	out, err := svc.Login(ctx, "ghost", "x")
	if err != nil || out.Result != LoginUserNotFound {
		t.Fatalf("unknown user: %v %v", out.Result, err)
	}
	out, err = svc.Login(ctx, "admin", "nope")
	if err != nil || out.Result != LoginWrongPassword {
		t.Fatalf("wrong password: %v %v", out.Result, err)
	}
	out, err = svc.Login(ctx, "admin", "12345678")
	if err != nil || out.Result != LoginSuccess || out.AccessToken == "" {
		t.Fatalf("login: %v %v", out.Result, err)
	}
	if out.User.Password != "" {
		t.Fatal("password leaked in login output")
	}
}

func TestTokenLifecycle(t *testing.T) {
	svc, clk := newService(t, "s3cret")
	ctx := context.Background()

	out, err := svc.Login(ctx, "admin", "12345678")
	if err != nil {
		t.Fatal(err)
	}
	c, err := svc.ParseToken(out.AccessToken)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UserID != "admin" || c.Role != "ADMIN" {
		t.Fatalf("claims = %+v", c)
	}

	clk.now = clk.now.Add(2 * time.Hour)
	if _, err := svc.ParseToken(out.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expired token: %v", err)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, _ := newService(t, "s3cret")
	ctx := context.Background()

	out, _ := svc.Login(ctx, "admin", "12345678")
	if err := svc.Logout(ctx, out.AccessToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.ParseToken(out.AccessToken); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("after logout: %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	a, _ := newService(t, "one")
	b, _ := newService(t, "two")

	out, _ := a.Login(context.Background(), "admin", "12345678")
	if _, err := b.ParseToken(out.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("foreign token: %v", err)
	}
	empty, _ := newService(t, "")
	if _, _, err := empty.IssueToken(out.User); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("missing secret: %v", err)
	}
}
