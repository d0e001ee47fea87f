package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"critterkeep/internal/app/ports"
)

const CredentialStatusActive = "active"

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid user credentials")
)

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	UserKey  string `json:"user_key"`
	IssuedAt string `json:"issued_at"`
}

type RegisterUseCase struct {
	Credentials ports.UserCredentialRepository
	Now         func() time.Time
}

type VerifyUseCase struct {
	Credentials ports.UserCredentialRepository
}

// Execute mints a fresh user id and secret key. Only the salted hash of the
// key is stored; the key itself is returned once and never again.
func (u RegisterUseCase) Execute(ctx context.Context) (RegisterResponse, error) {
	if u.Credentials == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	for i := 0; i < 3; i++ {
		userID, err := newUserID(now)
		if err != nil {
			return RegisterResponse{}, err
		}
		userKey, err := randomToken(32)
		if err != nil {
			return RegisterResponse{}, err
		}
		salt, err := randomBytes(16)
		if err != nil {
			return RegisterResponse{}, err
		}

		err = u.Credentials.Create(ctx, ports.UserCredentialRecord{
			UserID:    userID,
			KeySalt:   salt,
			KeyHash:   credentialHash(salt, userKey),
			Status:    CredentialStatusActive,
			CreatedAt: now,
		})
		if errors.Is(err, ports.ErrConflict) {
			continue
		}
		if err != nil {
			return RegisterResponse{}, err
		}
		return RegisterResponse{
			UserID:   userID,
			UserKey:  userKey,
			IssuedAt: now.Format(time.RFC3339),
		}, nil
	}
	return RegisterResponse{}, ports.ErrConflict
}

func (u VerifyUseCase) Execute(ctx context.Context, userID, userKey string) error {
	userID = strings.TrimSpace(userID)
	userKey = strings.TrimSpace(userKey)
	if userID == "" || userKey == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}

	cred, err := u.Credentials.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if cred.Status != CredentialStatusActive {
		return ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare(credentialHash(cred.KeySalt, userKey), cred.KeyHash) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func credentialHash(salt []byte, key string) []byte {
	b := make([]byte, 0, len(salt)+len(key))
	b = append(b, salt...)
	b = append(b, key...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func newUserID(now time.Time) (string, error) {
	randPart, err := randomToken(9)
	if err != nil {
		return "", err
	}
	return "usr_" + now.Format("20060102") + "_" + randPart, nil
}

func randomToken(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
