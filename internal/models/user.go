package models

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the unique display name. Login is name-based.
	Name string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string

	// TelegramID optionally links the account to an external notification
	// channel. Empty if not linked.
	TelegramID string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// Group represents a set of users sharing expenses and a pooled wallet.
// All expenses and wallet transactions are scoped to a group.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g. "Roommates").
	Name string

	// Description is optional free text.
	Description string

	// MemberIDs are the user IDs currently in the group.
	MemberIDs []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the given user is in the group.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Category labels expenses. Names are trimmed and unique case-insensitively;
// unknown names referenced by a new expense are created on demand.
type Category struct {
	ID   string
	Name string
}
