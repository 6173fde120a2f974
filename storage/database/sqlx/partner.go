package sqlxrepos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/trezcool/darasa/core/partner"
)

type partnerRepository struct {
	db *sqlx.DB
}

var _ partner.Repository = (*partnerRepository)(nil)

func NewPartnerRepository(db *sqlx.DB) *partnerRepository {
	return &partnerRepository{db: db}
}

// partnerRow carries the tags array which Partner itself keeps as []string.
type partnerRow struct {
	partner.Partner
	Tags pq.StringArray `db:"tags"`
}

func (row partnerRow) toPartner() partner.Partner {
	p := row.Partner
	p.Tags = row.Tags
	return p
}

const partnerColumns = `id, name, type, description, logo_url, link_url, link_label, featured, tags, created_at, updated_at`

func (repo *partnerRepository) QueryAllPartners(ctx context.Context) ([]partner.Partner, error) {
	var rows []partnerRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+partnerColumns+` FROM partners ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	partners := make([]partner.Partner, len(rows))
	for i, row := range rows {
		partners[i] = row.toPartner()
	}
	return partners, nil
}

func (repo *partnerRepository) GetPartnerByID(ctx context.Context, id string) (partner.Partner, error) {
	var row partnerRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return partner.Partner{}, partner.ErrNotFound
	}
	if err != nil {
		return partner.Partner{}, err
	}
	return row.toPartner(), nil
}

func (repo *partnerRepository) CreatePartner(ctx context.Context, p partner.Partner) (partner.Partner, error) {
	err := repo.db.QueryRowxContext(ctx,
		`INSERT INTO partners (name, type, description, logo_url, link_url, link_label, featured, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		p.Name, p.Type, p.Description, p.LogoURL, p.LinkURL, p.LinkLabel, p.Featured,
		pq.Array(p.Tags), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	return p, err
}

func (repo *partnerRepository) UpdatePartner(ctx context.Context, p partner.Partner) (partner.Partner, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE partners
		 SET name = $1, type = $2, description = $3, logo_url = $4, link_url = $5,
		     link_label = $6, featured = $7, tags = $8, updated_at = $9
		 WHERE id = $10`,
		p.Name, p.Type, p.Description, p.LogoURL, p.LinkURL, p.LinkLabel, p.Featured,
		pq.Array(p.Tags), p.UpdatedAt, p.ID)
	if err != nil {
		return partner.Partner{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return partner.Partner{}, partner.ErrNotFound
	}
	return p, nil
}

func (repo *partnerRepository) DeletePartner(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return partner.ErrNotFound
	}
	return nil
}
