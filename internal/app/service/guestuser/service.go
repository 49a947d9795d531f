package guestuser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Divy97/rajawadu/internal/models"
	"github.com/Divy97/rajawadu/pkg/config"
	"github.com/Divy97/rajawadu/pkg/tool"
)

var ErrInvalidSessionToken = errors.New("guestuser: invalid session token")

// Service manages guest checkout identities. A guest is keyed by email and
// reused across orders; the session token is a short-lived HS256 JWT carrying
// the guest id.
type Service struct {
	db  *gorm.DB
	cfg *config.Config
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger) *Service {
	return &Service{db: db, cfg: cfg, log: log}
}

// CreateOrGet returns the guest user for the given email, creating one on
// first sight and refreshing name/phone on subsequent checkouts.
func (s *Service) CreateOrGet(ctx context.Context, email, name, phone string) (*models.GuestUser, error) {
	var guest models.GuestUser
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&guest).Error
	if err == nil {
		updates := map[string]any{}
		if name != "" {
			updates["name"] = name
		}
		if phone != "" {
			updates["phone"] = phone
		}
		if len(updates) > 0 {
			if err := s.db.WithContext(ctx).Model(&guest).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update guest user: %w", err)
			}
		}
		return &guest, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up guest user: %w", err)
	}

	guest = models.GuestUser{
		ID:    tool.GenerateUUIDV7(),
		Email: email,
	}
	if name != "" {
		guest.Name = lo.ToPtr(name)
	}
	if phone != "" {
		guest.Phone = lo.ToPtr(phone)
	}
	if err := s.db.WithContext(ctx).Create(&guest).Error; err != nil {
		return nil, fmt.Errorf("failed to create guest user: %w", err)
	}
	return &guest, nil
}

// TouchLastOrder records that the guest just placed an order.
func (s *Service) TouchLastOrder(ctx context.Context, guestID string) error {
	err := s.db.WithContext(ctx).Model(&models.GuestUser{}).
		Where("id = ?", guestID).
		Update("last_order_at", time.Now()).Error
	if err != nil {
		return fmt.Errorf("failed to touch guest last order: %w", err)
	}
	return nil
}

// MintSessionToken issues a signed session token for the guest.
func (s *Service) MintSessionToken(guestID string) (string, error) {
	if s.cfg.GuestSession.JWTSecret == "" {
		return "", fmt.Errorf("guest session jwt secret not configured")
	}
	ttl := time.Duration(s.cfg.GuestSession.TTLHours) * time.Hour
	claims := jwt.StandardClaims{
		Subject:   guestID,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GuestSession.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session token and returns the guest id.
func (s *Service) ParseSessionToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.GuestSession.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSessionToken
	}
	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidSessionToken
	}
	return claims.Subject, nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)
