// Package notify decouples notification side effects from task operations.
// Services return intents describing who should hear about a change; the
// Dispatcher decides whether and how to deliver them. A failed delivery never
// fails the operation that produced the intent.
package notify

import "github.com/lodgeworks/roomkeeper/internal/domain"

// Intent describes a single notification to deliver. Exactly one of Roles or
// UserIDs is set: Roles broadcasts to every staff member holding one of the
// roles, UserIDs targets specific staff members.
type Intent struct {
	Roles   []domain.Role
	UserIDs []string
	Title   string
	Body    string
}

// ToRoles builds a role-broadcast intent.
func ToRoles(title, body string, roles ...domain.Role) Intent {
	return Intent{Roles: roles, Title: title, Body: body}
}

// ToUsers builds a user-targeted intent.
func ToUsers(title, body string, userIDs ...string) Intent {
	return Intent{UserIDs: userIDs, Title: title, Body: body}
}
