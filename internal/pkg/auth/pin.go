// internal/pkg/auth/pin.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/5spice-online/order.com/internal/config"
	"github.com/5spice-online/order.com/internal/infrastructure/storage"
)

// attemptsKey is the storage slot tracking failed logins. Written whole
// on every change, like every other persisted value.
const attemptsKey = "admin:login_attempts"

// ErrInvalidPIN is returned when the PIN does not match the stored hash.
var ErrInvalidPIN = errors.New("auth: invalid PIN")

// ErrLocked is returned while the gate is locked out after repeated failures.
var ErrLocked = errors.New("auth: too many attempts")

// PINGate is the admin dashboard's boolean authorization gate: a hashed
// PIN with lockout after N consecutive failures. It deliberately stays a
// client-grade gate; it is not a hardened authentication system.
type PINGate struct {
	kv     storage.Store
	config *config.Config
	log    *logrus.Logger
	now    func() time.Time
}

// loginAttempts is the persisted failure counter
type loginAttempts struct {
	Count       int        `json:"count"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
}

// NewPINGate creates a PIN gate
func NewPINGate(kv storage.Store, cfg *config.Config, log *logrus.Logger) *PINGate {
	return &PINGate{
		kv:     kv,
		config: cfg,
		log:    log,
		now:    time.Now,
	}
}

// HashPIN hashes a PIN for storage in ADMIN_PIN_HASH
func HashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hashed), nil
}

// Authenticate verifies the PIN against the configured hash. Failures
// are counted; once MaxAttempts is reached the gate locks for
// LockoutDuration and every call returns ErrLocked until it expires.
func (g *PINGate) Authenticate(ctx context.Context, pin string) error {
	attempts := g.loadAttempts(ctx)

	if attempts.LockedUntil != nil {
		if g.now().Before(*attempts.LockedUntil) {
			return fmt.Errorf("%w: locked until %s", ErrLocked, attempts.LockedUntil.Format(time.RFC3339))
		}
		// Lockout expired; start a fresh window.
		attempts = loginAttempts{}
	}

	if g.config.Admin.PINHash == "" {
		return fmt.Errorf("admin PIN is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(g.config.Admin.PINHash), []byte(pin)); err != nil {
		attempts.Count++
		if attempts.Count >= g.config.Admin.MaxAttempts {
			lockedUntil := g.now().Add(g.config.Admin.LockoutDuration)
			attempts.LockedUntil = &lockedUntil
			g.log.WithField("locked_until", lockedUntil).Warn("admin PIN gate locked")
		}
		g.saveAttempts(ctx, attempts)

		if attempts.LockedUntil != nil {
			return fmt.Errorf("%w: locked until %s", ErrLocked, attempts.LockedUntil.Format(time.RFC3339))
		}
		return fmt.Errorf("%w: %d tries left", ErrInvalidPIN, g.config.Admin.MaxAttempts-attempts.Count)
	}

	// Success resets the counter.
	g.saveAttempts(ctx, loginAttempts{})
	return nil
}

// RemainingAttempts returns how many failures are left before lockout
func (g *PINGate) RemainingAttempts(ctx context.Context) int {
	attempts := g.loadAttempts(ctx)
	remaining := g.config.Admin.MaxAttempts - attempts.Count
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (g *PINGate) loadAttempts(ctx context.Context) loginAttempts {
	raw, err := g.kv.Get(ctx, attemptsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			g.log.WithError(err).Warn("failed to read login attempts")
		}
		return loginAttempts{}
	}

	var attempts loginAttempts
	if err := json.Unmarshal([]byte(raw), &attempts); err != nil {
		g.log.WithError(err).Warn("persisted login attempts are malformed, resetting")
		return loginAttempts{}
	}
	return attempts
}

func (g *PINGate) saveAttempts(ctx context.Context, attempts loginAttempts) {
	data, err := json.Marshal(attempts)
	if err != nil {
		return
	}
	if err := g.kv.Set(ctx, attemptsKey, string(data)); err != nil {
		g.log.WithError(err).Warn("failed to persist login attempts")
	}
}
