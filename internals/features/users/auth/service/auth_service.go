package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	kgModel "edugest_backend/internals/features/kindergarten/model"
	authHelper "edugest_backend/internals/features/users/auth/helper"
	authModel "edugest_backend/internals/features/users/auth/model"
	"edugest_backend/internals/state"
)

type LoginResult string

const (
	LoginSuccess       LoginResult = "SUCCESS"
	LoginUserNotFound  LoginResult = "USER_NOT_FOUND"
	LoginWrongPassword LoginResult = "WRONG_PASSWORD"
)

var (
	ErrMissingSecret = errors.New("JWT_SECRET belum diset")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenRevoked  = errors.New("token sudah logout")
)

const defaultAccessTTL = 12 * time.Hour

type Claims struct {
	UserID   string
	UserName string
	Role     kgModel.Role
	Expires  time.Time
}

type AuthService struct {
	Ctl       *state.Controller
	Secret    string
	TTL       time.Duration
	Blacklist *authModel.TokenBlacklist
}

func NewAuthService(ctl *state.Controller, secret string, ttl time.Duration, bl *authModel.TokenBlacklist) *AuthService {
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	if bl == nil {
		bl = authModel.NewTokenBlacklist()
	}
	return &AuthService{Ctl: ctl, Secret: secret, TTL: ttl, Blacklist: bl}
}

// CheckCredentials: username case-sensitive, password bcrypt atau plaintext lama
func (s *AuthService) CheckCredentials(username, password string) (LoginResult, kgModel.User) {
	u, ok := s.Ctl.FindUserByUsername(strings.TrimSpace(username))
	if !ok {
		return LoginUserNotFound, kgModel.User{}
	}
	if !authHelper.CheckPassword(u.Password, password) {
		return LoginWrongPassword, kgModel.User{}
	}
	return LoginSuccess, u.Public()
}

type LoginOutput struct {
	Result      LoginResult
	User        kgModel.User
	AccessToken string
	ExpiresAt   time.Time
}

// Login: sukses → cache auth_user + issue access token
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginOutput, error) {
	res, u := s.CheckCredentials(username, password)
	if res != LoginSuccess {
		return LoginOutput{Result: res}, nil
	}
	token, exp, err := s.IssueToken(u)
	if err != nil {
		return LoginOutput{}, err
	}
	if err := s.Ctl.CacheAuthUser(ctx, u); err != nil {
		// memori sudah ter-update, login tetap jalan
		log.Printf("[WARN] auth: simpan auth_user: %v", err)
	}
	return LoginOutput{Result: LoginSuccess, User: u, AccessToken: token, ExpiresAt: exp}, nil
}

func (s *AuthService) IssueToken(u kgModel.User) (string, time.Time, error) {
	if s.Secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	exp := s.Ctl.Now().Add(s.TTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":        u.ID,
		"user_name": u.Username,
		"role":      string(u.Role),
		"exp":       exp.Unix(),
	})
	signed, err := token.SignedString([]byte(s.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseToken: verifikasi HS256, exp (pakai clock controller) dan blacklist
func (s *AuthService) ParseToken(raw string) (Claims, error) {
	if s.Secret == "" {
		return Claims{}, ErrMissingSecret
	}
	if s.Blacklist.Contains(raw) {
		return Claims{}, ErrTokenRevoked
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.Secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	expF, ok := claims["exp"].(float64)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	exp := time.Unix(int64(expF), 0).UTC()
	if !s.Ctl.Now().Before(exp) {
		return Claims{}, ErrTokenInvalid
	}
	id, _ := claims["id"].(string)
	name, _ := claims["user_name"].(string)
	role, _ := claims["role"].(string)
	if id == "" {
		return Claims{}, ErrTokenInvalid
	}
	return Claims{UserID: id, UserName: name, Role: kgModel.Role(role), Expires: exp}, nil
}

// Logout: token masuk blacklist sampai exp, auth_user dikosongkan
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if c, err := s.ParseToken(raw); err == nil {
		s.Blacklist.Add(raw, c.Expires)
	}
	return s.Ctl.ClearAuthUser(ctx)
}
