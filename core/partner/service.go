package partner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// Logo upload contract.
const (
	MaxLogoSize = 5 << 20 // 5 MB
)

var (
	errLogoNotImage = errors.New("file must be an image")
	errLogoTooBig   = errors.New("file must be smaller than 5MB")
)

type Service struct {
	repo    Repository
	storage core.FileStorage
	logger  core.Logger
}

func NewService(repo Repository, storage core.FileStorage, logger core.Logger) *Service {
	return &Service{repo: repo, storage: storage, logger: logger}
}

// Query degrades to an empty list on store errors.
func (svc *Service) Query(ctx context.Context) []Partner {
	partners, err := svc.repo.QueryAllPartners(ctx)
	if err != nil {
		svc.logger.Error("querying partners", errors.Wrap(err, "querying partners"))
		return []Partner{}
	}
	if partners == nil {
		partners = []Partner{}
	}
	return partners
}

func (svc *Service) Create(ctx context.Context, np NewPartner) (Partner, error) {
	now := time.Now().UTC()
	p := Partner{
		Name:        np.Name,
		Type:        np.Type,
		Description: np.Description,
		LogoURL:     np.LogoURL,
		LinkURL:     np.LinkURL,
		LinkLabel:   np.LinkLabel,
		Featured:    np.Featured,
		Tags:        core.SplitTags(np.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreatePartner(ctx, p)
}

func (svc *Service) Update(ctx context.Context, id string, up UpdatePartner) (Partner, error) {
	orig, err := svc.repo.GetPartnerByID(ctx, id)
	if err != nil {
		return Partner{}, err
	}
	orig.Name = up.Name
	orig.Type = up.Type
	orig.Description = up.Description
	orig.LogoURL = up.LogoURL
	orig.LinkURL = up.LinkURL
	orig.LinkLabel = up.LinkLabel
	orig.Featured = up.Featured
	orig.Tags = core.SplitTags(up.Tags)
	orig.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdatePartner(ctx, orig)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeletePartner(ctx, id)
}

// ToggleFeatured flips the featured flag.
func (svc *Service) ToggleFeatured(ctx context.Context, id string) (Partner, error) {
	p, err := svc.repo.GetPartnerByID(ctx, id)
	if err != nil {
		return Partner{}, err
	}
	p.Featured = !p.Featured
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdatePartner(ctx, p)
}

// UploadLogo stores a partner logo and returns its public URL.
// Non-image content types and payloads over MaxLogoSize are rejected before
// any storage call.
func (svc *Service) UploadLogo(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", core.NewValidationError(errLogoNotImage, core.FieldError{Field: "file", Error: errLogoNotImage.Error()})
	}
	if size > MaxLogoSize {
		return "", core.NewValidationError(errLogoTooBig, core.FieldError{Field: "file", Error: errLogoTooBig.Error()})
	}

	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), strings.ReplaceAll(filename, " ", "-"))
	url, err := svc.storage.Upload(ctx, key, io.LimitReader(r, MaxLogoSize), contentType)
	if err != nil {
		return "", errors.Wrap(err, "uploading logo")
	}
	return url, nil
}
