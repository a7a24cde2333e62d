package auth

import (
	"time"

	"authsvc/config"
	"authsvc/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TokenLifetime is how long an issued token stays valid.
const TokenLifetime = time.Hour

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// The signing secret is read once here and never rotated at runtime.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return newJWTService([]byte(cfg.SecretKey.Access), time.Now), nil
}

func newJWTService(secret []byte, now func() time.Time) *jwtService {
	return &jwtService{
		secret: secret,
		ttl:    TokenLifetime,
		now:    now,
	}
}

// Issue creates a token carrying the account ID and username.
func (s *jwtService) Issue(accountID uuid.UUID, username string) (string, error) {
	issuedAt := s.now()
	claims := service.Claims{
		AccountID: accountID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the token signature and expiry and returns the embedded claims.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		// The signature is checked before claims, so an expired token here is authentic.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(service.ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(service.ErrInvalidSignature, err.Error())
	}

	return claims, nil
}
