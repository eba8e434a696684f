package interfaces

import "context"

// AuthProvider resolves the acting user from the request context. The panel
// never authenticates on its own; hosts bridge their session layer here.
type AuthProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
}
