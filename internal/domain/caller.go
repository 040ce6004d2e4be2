package domain

// Role is the 3-way caller classification supplied by the session layer.
// The engine consumes it as-is and never validates credentials itself.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RolePlayer    Role = "player"
	RoleAdmin     Role = "admin"
)

// Caller identifies one browser session. ID is stable for the lifetime of
// the session cookie; PlayerName is set once the session registers a player.
type Caller struct {
	ID         string `json:"id"`
	PlayerName string `json:"playerName,omitempty"`
	Role       Role   `json:"role"`
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
