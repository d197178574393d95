package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lunaspay/internal/shared/biztime"
)

// Claims carries the wallet identity of an authenticated caller. The
// wallet reference is the only subject this service knows; there are no
// user accounts behind it.
type Claims struct {
	WalletRef string `json:"wallet_ref"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

// Generate issues an access token bound to a wallet reference.
func (s *JWTService) Generate(walletRef string) (string, error) {
	if walletRef == "" {
		return "", fmt.Errorf("wallet reference is required")
	}

	now := biztime.NowUTC()
	claims := &Claims{
		WalletRef: walletRef,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token, rejecting any non-HMAC algorithm.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.WalletRef == "" {
		return nil, fmt.Errorf("token has no wallet reference")
	}

	return claims, nil
}
