package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/hash"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/logging"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/events"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/models"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/pkg/tokens"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour

	maxFailedLogins = 5
	lockoutWindow   = 15 * time.Minute

	minPasswordLen = 6
)

type AuthService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
	Events        *events.Producer
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	Username     string
	Role         roles.Role
	CustomerID   *int64
}

func (s *AuthService) Register(ctx context.Context, username, password string, role roles.Role) error {
	l := logging.FromContext(ctx).With("svc", "auth.register", "username", username)

	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role", ErrValidation)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		l.Warn("register_conflict", "status", 409)
		return fmt.Errorf("%w: username already taken", ErrConflict)
	}

	pwHash, err := hash.Password(password)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{Username: username, PasswordHash: pwHash, Role: role.String()}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if role == roles.Customer {
			// Every customer account gets a client record so their
			// orders have something to hang off.
			client := models.Client{FirstName: username, UserID: &user.ID}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Events.Publish(ctx, events.TopicAuth, username, map[string]any{
		"type": "user_registered", "username": username, "role": role.String(),
	})
	l.Info("register_success", "role", role.String())
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	locked, err := s.isLocked(username)
	if err != nil {
		return nil, err
	}
	if locked {
		l.Warn("login_locked", "status", 423)
		return nil, fmt.Errorf("%w: too many failed attempts, try again later", ErrLocked)
	}

	var user models.User
	err = s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !hash.Verify(user.PasswordHash, password)) {
		s.recordAttempt(username, false)
		s.Events.Publish(ctx, events.TopicAuth, username, map[string]any{
			"type": "login_failed", "username": username,
		})
		l.Warn("login_failed", "status", 401)
		return nil, fmt.Errorf("%w: invalid username or password", ErrAuth)
	}
	if err != nil {
		return nil, err
	}
	s.recordAttempt(username, true)

	userID := strconv.FormatInt(user.ID, 10)
	accessExp := time.Now().Add(accessTTL)
	access, err := tokens.IssueAccess(s.JWTSecret, userID, user.Username, user.Role, accessExp)
	if err != nil {
		return nil, err
	}

	jti := tokens.NewJTI()
	refreshExp := time.Now().Add(refreshTTL)
	refresh, err := tokens.IssueRefresh(s.RefreshSecret, userID, jti, refreshExp)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Create(&models.RefreshToken{
		UserID:    user.ID,
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}).Error; err != nil {
		return nil, err
	}

	role, err := roles.Parse(user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: stored role is invalid", ErrAuth)
	}

	result := &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(accessTTL.Seconds()),
		Username:     user.Username,
		Role:         role,
	}
	if role == roles.Customer {
		var client models.Client
		if err := s.DB.Where("user_id = ?", user.ID).First(&client).Error; err == nil {
			result.CustomerID = &client.ID
		}
	}

	s.Events.Publish(ctx, events.TopicAuth, username, map[string]any{
		"type": "login_success", "username": username, "role": user.Role,
	})
	l.Info("login_success", "role", user.Role)
	return result, nil
}

// Logout revokes every refresh token the user holds. The access token
// simply ages out.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	err := s.DB.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
	if err != nil {
		return err
	}
	s.Events.Publish(ctx, events.TopicAuth, strconv.FormatInt(userID, 10), map[string]any{
		"type": "logout", "user_id": userID,
	})
	return nil
}

// Refresh rotates the token pair. The presented refresh token must be
// known, unexpired and unrevoked; it is revoked on use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := tokens.ParseRefresh(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrAuth)
	}

	var stored models.RefreshToken
	if err := s.DB.Where("jti = ?", claims.ID).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("%w: unknown refresh token", ErrAuth)
	}
	if stored.Revoked || stored.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("%w: refresh token expired or revoked", ErrAuth)
	}

	var user models.User
	if err := s.DB.First(&user, stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("%w: user no longer exists", ErrAuth)
	}

	if err := s.DB.Model(&stored).Update("revoked", true).Error; err != nil {
		return nil, err
	}

	userID := strconv.FormatInt(user.ID, 10)
	accessExp := time.Now().Add(accessTTL)
	access, err := tokens.IssueAccess(s.JWTSecret, userID, user.Username, user.Role, accessExp)
	if err != nil {
		return nil, err
	}
	jti := tokens.NewJTI()
	refreshExp := time.Now().Add(refreshTTL)
	newRefresh, err := tokens.IssueRefresh(s.RefreshSecret, userID, jti, refreshExp)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Create(&models.RefreshToken{
		UserID:    user.ID,
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}).Error; err != nil {
		return nil, err
	}

	role, _ := roles.Parse(user.Role)
	return &LoginResult{
		AccessToken:  access,
		RefreshToken: newRefresh,
		ExpiresIn:    int64(accessTTL.Seconds()),
		Username:     user.Username,
		Role:         role,
	}, nil
}

func (s *AuthService) isLocked(username string) (bool, error) {
	since := time.Now().Add(-lockoutWindow)
	var failures int64
	err := s.DB.Model(&models.LoginAttempt{}).
		Where("username = ? AND success = ? AND created_at > ?", username, false, since).
		Count(&failures).Error
	if err != nil {
		return false, err
	}
	return failures >= maxFailedLogins, nil
}

func (s *AuthService) recordAttempt(username string, success bool) {
	s.DB.Create(&models.LoginAttempt{Username: username, Success: success})
}
