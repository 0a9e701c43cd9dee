package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/keyvault/internal/auth/domain"
	apperrors "github.com/allisson/keyvault/internal/errors"
)

// ownerClaims carries the owner id in "userId"; "sub" is accepted as a fallback.
type ownerClaims struct {
	UserID string `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// jwtTokenService implements TokenService with HMAC-SHA256 signed JWTs.
type jwtTokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret []byte) (TokenService, error) {
	if len(secret) == 0 {
		return nil, authDomain.ErrSigningSecretRequired
	}
	if len(secret) < authDomain.MinSigningSecretLength {
		return nil, authDomain.ErrSigningSecretTooShort
	}

	return &jwtTokenService{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}, nil
}

// Issue mints a token for ownerID valid for ttl.
func (s *jwtTokenService) Issue(ownerID string, ttl time.Duration) (string, error) {
	if ownerID == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "owner id is required")
	}
	if ttl <= 0 {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "token ttl must be positive")
	}

	now := s.now().UTC()
	claims := ownerClaims{
		UserID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return token, nil
}

// Verify parses token, enforcing HS256 and a present, unexpired "exp" claim.
func (s *jwtTokenService) Verify(token string) (*authDomain.Identity, error) {
	if token == "" {
		return nil, authDomain.ErrMissingCredential
	}

	claims := &ownerClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperrors.Join(authDomain.ErrInvalidCredential, err)
	}

	ownerID := claims.UserID
	if ownerID == "" {
		ownerID = claims.Subject
	}
	if ownerID == "" {
		return nil, authDomain.ErrInvalidCredential
	}

	return &authDomain.Identity{
		OwnerID:   ownerID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
