package jwttoken

import (
	authmw "kader/pkg/platform/middleware/auth"
)

func ToMiddlewareClaims(claims *Claims) *authmw.JWTClaims {
	mc := &authmw.JWTClaims{
		EmployeeID: claims.EmployeeID,
		Staff:      claims.Staff,
		JTI:        claims.ID,
	}
	if claims.IssuedAt != nil {
		mc.IssuedAt = claims.IssuedAt.Time
	}
	return mc
}

// ServiceAdapter bridges the JWT service to the middleware's TokenValidator
// interface so the middleware package stays free of jwt library types.
type ServiceAdapter struct {
	service *Service
}

func NewServiceAdapter(service *Service) *ServiceAdapter {
	return &ServiceAdapter{service: service}
}

func (a *ServiceAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
