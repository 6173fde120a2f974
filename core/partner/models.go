package partner

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

var ErrNotFound = errors.New("partner not found")

// Partner is an organisation featured on the public site.
type Partner struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description,omitempty"`
	LogoURL     string    `db:"logo_url" json:"logo_url,omitempty"`
	LinkURL     string    `db:"link_url" json:"link_url,omitempty"`
	LinkLabel   string    `db:"link_label" json:"link_label,omitempty"`
	Featured    bool      `db:"featured" json:"featured"`
	Tags        []string  `db:"-" json:"tags,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"` // UTC
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"` // UTC
}

// NewPartner contains information needed to create a Partner.
type NewPartner struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	LinkURL     string `json:"link_url" validate:"omitempty,url"`
	LinkLabel   string `json:"link_label"`
	Featured    bool   `json:"featured"`
	Tags        string `json:"tags"` // comma-separated
}

func (np *NewPartner) Validate(validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	np.Type = core.CleanString(np.Type)
	return validate.Struct(np)
}

// UpdatePartner defines what may be modified on an existing Partner.
// All fields are replaced; the form always submits the full record.
type UpdatePartner struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	LinkURL     string `json:"link_url" validate:"omitempty,url"`
	LinkLabel   string `json:"link_label"`
	Featured    bool   `json:"featured"`
	Tags        string `json:"tags"` // comma-separated
}

func (up *UpdatePartner) Validate(validate *validator.Validate) error {
	up.Name = core.CleanString(up.Name)
	up.Type = core.CleanString(up.Type)
	return validate.Struct(up)
}

type Repository interface {
	// QueryAllPartners returns every partner ordered by creation date, newest first.
	QueryAllPartners(ctx context.Context) ([]Partner, error)
	GetPartnerByID(ctx context.Context, id string) (Partner, error)
	CreatePartner(ctx context.Context, p Partner) (Partner, error)
	UpdatePartner(ctx context.Context, p Partner) (Partner, error)
	DeletePartner(ctx context.Context, id string) error
}
