package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fdg312/fittrack/internal/config"
	"github.com/fdg312/fittrack/internal/storage"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Service — сервис авторизации: выпуск и проверка HS256 токенов
type Service struct {
	config  *config.Config
	storage storage.UserStorage
}

func NewService(cfg *config.Config, st storage.UserStorage) *Service {
	return &Service{
		config:  cfg,
		storage: st,
	}
}

// SignInDev — dev-авторизация, выдаёт JWT на 30 дней и создаёт документ
// пользователя, если его ещё нет
func (s *Service) SignInDev(ctx context.Context) (*DevAuthResponse, error) {
	const devUserID = "dev-user"
	const devTTL = 30 * 24 * time.Hour

	if err := s.ensureUser(ctx, devUserID); err != nil {
		return nil, fmt.Errorf("failed to ensure dev user: %w", err)
	}

	accessToken, err := s.generateJWT(devUserID, devTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate dev JWT: %w", err)
	}

	return &DevAuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(devTTL.Seconds()),
		UserID:      devUserID,
	}, nil
}

// VerifyJWT проверяет токен и возвращает идентификатор пользователя
func (s *Service) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}

	return sub, nil
}

func (s *Service) generateJWT(userID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = time.Duration(s.config.JWTTTLMinutes) * time.Minute
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.config.JWTIssuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ensureUser создаёт пустой документ пользователя при первом входе
func (s *Service) ensureUser(ctx context.Context, userID string) error {
	_, err := s.storage.GetUser(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return err
	}

	return s.storage.SaveUser(ctx, &storage.User{
		ID:     userID,
		Gender: storage.GenderOther,
		Goal:   storage.GoalMaintain,
	})
}
