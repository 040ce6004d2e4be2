package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/casey/kickball-cup/internal/config"
	"github.com/casey/kickball-cup/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionService mints and validates the signed cookie that carries the
// 3-way caller classification. The engine never sees the token, only the
// decoded Caller.
type SessionService struct {
	cfg *config.Config
}

func NewSessionService(cfg *config.Config) *SessionService {
	return &SessionService{cfg: cfg}
}

// NewAnonymousCaller starts a fresh session with a random identity.
func (s *SessionService) NewAnonymousCaller() domain.Caller {
	return domain.Caller{
		ID:   uuid.New().String(),
		Role: domain.RoleAnonymous,
	}
}

// IssueToken signs the caller into a compact HS256 JWT.
func (s *SessionService) IssueToken(caller domain.Caller) (string, error) {
	claims := jwt.MapClaims{
		"sub":  caller.ID,
		"role": string(caller.Role),
		"exp":  time.Now().Add(time.Duration(s.cfg.SessionTTLHours) * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	if caller.PlayerName != "" {
		claims["name"] = caller.PlayerName
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SessionSecret))
}

// ValidateToken parses a session token back into a Caller.
func (s *SessionService) ValidateToken(tokenString string) (domain.Caller, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil {
		return domain.Caller{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.Caller{}, errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return domain.Caller{}, errors.New("missing 'sub' claim")
	}

	caller := domain.Caller{ID: sub, Role: domain.RoleAnonymous}
	if role, ok := claims["role"].(string); ok {
		switch domain.Role(role) {
		case domain.RolePlayer, domain.RoleAdmin:
			caller.Role = domain.Role(role)
		}
	}
	if name, ok := claims["name"].(string); ok {
		caller.PlayerName = name
	}

	return caller, nil
}

// LoginAdmin upgrades a session to the admin role when the password matches
// the configured bcrypt hash.
func (s *SessionService) LoginAdmin(caller domain.Caller, password string) (domain.Caller, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		return domain.Caller{}, fmt.Errorf("admin login: %w", ErrInvalidCredentials)
	}

	caller.Role = domain.RoleAdmin
	return caller, nil
}

// BindPlayer attaches a registered player name to the session. Admin
// sessions keep their role.
func (s *SessionService) BindPlayer(caller domain.Caller, playerName string) domain.Caller {
	caller.PlayerName = playerName
	if caller.Role == domain.RoleAnonymous {
		caller.Role = domain.RolePlayer
	}
	return caller
}
