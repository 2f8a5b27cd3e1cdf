package service

import "regexp"

var internalIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// Identity is the outcome of classifying a caller-supplied identity token.
type Identity struct {
	// UserID is set only when the token has the internal identifier shape.
	UserID *string
	// Token is the original value, verbatim. Empty when none was supplied.
	Token string
}

// Guest reports whether the order has no owning user.
func (i Identity) Guest() bool {
	return i.UserID == nil
}

// Foreign reports whether a token was supplied but is not an internal id.
func (i Identity) Foreign() bool {
	return i.Token != "" && i.UserID == nil
}

// NormalizeIdentity never fails: an unrecognised token just makes a guest order.
func NormalizeIdentity(token *string) Identity {
	if token == nil || *token == "" {
		return Identity{}
	}

	id := Identity{Token: *token}
	if internalIDPattern.MatchString(*token) {
		userID := *token
		id.UserID = &userID
	}
	return id
}
