package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpTTL = 5 * time.Minute

var ErrOTPMismatch = errors.New("otp invalid or expired")

// OTPStore keeps one-time passwords in Redis keyed by mobile number.
// Entries expire on their own; a successful verify consumes the code.
type OTPStore struct {
	rdb *redis.Client
}

func NewOTPStore(rdb *redis.Client) *OTPStore {
	return &OTPStore{rdb: rdb}
}

func otpKey(mobile string) string {
	return "otp:" + mobile
}

// Generate creates a fresh 6-digit code for the mobile number, replacing any
// outstanding one, and stores it with a 5-minute TTL.
func (s *OTPStore) Generate(ctx context.Context, mobile string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.rdb.Set(ctx, otpKey(mobile), code, otpTTL).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify consumes the stored code for the mobile number. The code is removed
// on the first attempt regardless of outcome, so it cannot be brute-forced.
func (s *OTPStore) Verify(ctx context.Context, mobile, code string) error {
	stored, err := s.rdb.GetDel(ctx, otpKey(mobile)).Result()
	if err == redis.Nil {
		return ErrOTPMismatch
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrOTPMismatch
	}
	return nil
}
