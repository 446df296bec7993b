package token

import (
	"strings"

	"github.com/jonwraymond/opentok/validate"
)

// Role scopes what a client connected with the token may do.
type Role string

const (
	// RoleSubscriber may only subscribe to streams.
	RoleSubscriber Role = "SUBSCRIBER"
	// RolePublisher may publish and subscribe.
	RolePublisher Role = "PUBLISHER"
	// RoleModerator may also force other clients to disconnect or unpublish.
	RoleModerator Role = "MODERATOR"
)

// String returns the wire value.
func (r Role) String() string { return string(r) }

// Validate rejects unknown roles.
func (r Role) Validate() error {
	return validate.Role(string(r), string(RoleSubscriber), string(RolePublisher), string(RoleModerator))
}

// ParseRole returns the role named s in either case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(s))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}
