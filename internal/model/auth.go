package model

import "github.com/golang-jwt/jwt/v5"

// OperatorClaims are JWT claims for dashboard operator tokens. Every token is
// scoped to one org; all queries run under that org.
type OperatorClaims struct {
	OperatorID string `json:"operator_id"`
	OrgID      string `json:"org_id"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for operator login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token      string `json:"token"`
	OperatorID string `json:"operator_id"`
	OrgID      string `json:"org_id"`
}
