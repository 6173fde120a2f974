package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/darasa/core/export"
)

type identityDirectory struct {
	db *identityTable
}

var _ export.IdentityDirectory = (*identityDirectory)(nil)

func NewIdentityDirectory(db *DB) *identityDirectory {
	return &identityDirectory{db: db.identity}
}

// SeedIdentity is a test helper.
func (dir *identityDirectory) SeedIdentity(ident export.Identity) {
	dir.db.Lock()
	defer dir.db.Unlock()
	dir.db.table[ident.ID] = &ident
}

func (dir *identityDirectory) ListIdentities(_ context.Context, page, perPage int) ([]export.Identity, error) {
	dir.db.RLock()
	defer dir.db.RUnlock()

	if page < 1 {
		page = 1
	}
	all := make([]export.Identity, 0, len(dir.db.table))
	for _, ident := range dir.db.table {
		all = append(all, *ident)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := (page - 1) * perPage
	if start >= len(all) {
		return nil, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}
