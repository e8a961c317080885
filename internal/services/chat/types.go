// File: internal/services/chat/types.go
package chat

// Page selects a window of a chat's messages, newest first.
type Page struct {
	Limit  int
	Offset int
}
