package types

// ChatRole is the author role of a chat message
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// IsValid checks if the chat role is valid
func (r ChatRole) IsValid() bool {
	return r == ChatRoleUser || r == ChatRoleAssistant
}

// String returns the string representation of the chat role
func (r ChatRole) String() string {
	return string(r)
}
