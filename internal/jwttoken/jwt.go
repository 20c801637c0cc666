package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "kader/pkg/domain"
	dErrors "kader/pkg/domain-errors"
)

// Claims represents the JWT claims for our access tokens. Staff gates the
// admin surface; the JTI (RegisteredClaims.ID) supports revocation tracking.
type Claims struct {
	EmployeeID string `json:"employee_id"`
	Staff      bool   `json:"staff"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewService(signingKey, issuer, audience string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateAccessToken issues an HS256 token for the employee. The issued-at
// claim doubles as the revocation watermark input.
func (s *Service) GenerateAccessToken(employeeID id.EmployeeID, staff bool, expiresIn time.Duration) (string, error) {
	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		EmployeeID: employeeID.String(),
		Staff:      staff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// ValidateToken parses and verifies a token string, rejecting non-HMAC
// signing methods. All failures collapse into CodeUnauthorized so callers
// cannot distinguish forged from expired tokens.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// ExtractEmployeeID validates the token and parses its subject employee ID.
func (s *Service) ExtractEmployeeID(tokenString string) (id.EmployeeID, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return id.EmployeeID{}, err
	}
	return id.ParseEmployeeID(claims.EmployeeID)
}
