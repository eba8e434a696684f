package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ContentUUID identifies a content row by its table and slug. Seed fixtures
// use it so repeated loads update rather than duplicate.
func ContentUUID(table, slug string) uuid.UUID {
	return UUID("go-panel:content:" + strings.TrimSpace(table) + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// ProfileUUID identifies a profile by its email address.
func ProfileUUID(email string) uuid.UUID {
	return UUID("go-panel:profile:" + strings.ToLower(strings.TrimSpace(email)))
}
