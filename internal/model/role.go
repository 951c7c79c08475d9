package model

import "strings"

// Role determines which profile shape and which views are reachable.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// NormalizeEmail lowercases and trims an email. Two identities differing
// only by case or surrounding whitespace must collide, so every lookup key
// goes through this. Idempotent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
