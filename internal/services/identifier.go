package services

import "regexp"

// IdentifierKind classifies a login identifier.
type IdentifierKind string

const (
	IdentifierEmail    IdentifierKind = "email"
	IdentifierPhone    IdentifierKind = "phone"
	IdentifierUsername IdentifierKind = "username"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{10,20}$`)
)

// ClassifyIdentifier decides whether an identifier is an email address, a
// phone number, or a username. Email wins over phone, phone over username;
// every input gets exactly one class.
func ClassifyIdentifier(identifier string) IdentifierKind {
	switch {
	case emailPattern.MatchString(identifier):
		return IdentifierEmail
	case phonePattern.MatchString(identifier):
		return IdentifierPhone
	default:
		return IdentifierUsername
	}
}
