package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core/export"
)

// identityDirectory reads the auth system's identity mirror. Like a hosted
// auth directory it serves fixed-size pages; callers page until exhausted.
type identityDirectory struct {
	db *sqlx.DB
}

var _ export.IdentityDirectory = (*identityDirectory)(nil)

func NewIdentityDirectory(db *sqlx.DB) *identityDirectory {
	return &identityDirectory{db: db}
}

func (dir *identityDirectory) ListIdentities(ctx context.Context, page, perPage int) ([]export.Identity, error) {
	if page < 1 {
		page = 1
	}
	var identities []export.Identity
	err := dir.db.SelectContext(ctx, &identities,
		`SELECT id, email FROM auth_identity ORDER BY id LIMIT $1 OFFSET $2`,
		perPage, (page-1)*perPage)
	return identities, err
}
