// Package credentials persists the session token across process restarts.
// The store owns no logic beyond save/load/clear and never validates the
// token's shape.
package credentials

import "context"

// Repository is the durable credential store. Load returns an empty string
// when no token is stored. Concurrent in-process writers are not expected;
// if they occur, last write wins.
type Repository interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
