package models

import employeemodels "kader/internal/employee/models"

// LoginResponse carries the bearer token and the authenticated profile.
type LoginResponse struct {
	AccessToken string                          `json:"access_token"`
	TokenType   string                          `json:"token_type"`
	ExpiresIn   int64                           `json:"expires_in"`
	Employee    employeemodels.EmployeeResponse `json:"employee"`
}
