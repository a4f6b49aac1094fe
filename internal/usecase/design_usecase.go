package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/internal/pricing"
	"futur-backend/pkg/logger"
	"futur-backend/pkg/utils"
)

type DesignUsecase struct {
	repo           domain.DesignRepository
	calc           *pricing.Calculator
	uploader       domain.ImageUploader
	maxUploadBytes int64
}

// NewDesignUsecase wires saved designs and back-design uploads. uploader may
// be nil, in which case uploads fail with domain.ErrUploadUnavailable.
func NewDesignUsecase(repo domain.DesignRepository, calc *pricing.Calculator, uploader domain.ImageUploader, maxUploadBytes int64) *DesignUsecase {
	return &DesignUsecase{
		repo:           repo,
		calc:           calc,
		uploader:       uploader,
		maxUploadBytes: maxUploadBytes,
	}
}

// SaveDesign stores a normalized configuration with the price it was quoted at.
func (u *DesignUsecase) SaveDesign(ctx context.Context, cfg domain.JacketConfiguration) (*domain.Design, error) {
	prepared, err := u.calc.Catalog().Prepare(cfg)
	if err != nil {
		return nil, err
	}
	price, err := u.calc.CalculatePrice(prepared)
	if err != nil {
		return nil, err
	}

	design := &domain.Design{
		ID:            utils.GenerateUUID(),
		Configuration: prepared,
		Price:         price,
		CreatedAt:     time.Now().UTC(),
	}
	if err := u.repo.SaveDesign(ctx, design); err != nil {
		return nil, fmt.Errorf("save design: %w", err)
	}
	logger.WithContext(ctx).Info().Str("design_id", design.ID).Msg("Usecase: design saved")
	return design, nil
}

func (u *DesignUsecase) GetDesign(ctx context.Context, id string) (*domain.Design, error) {
	return u.repo.GetDesign(ctx, id)
}

// MaxUploadBytes is the accepted upload size.
func (u *DesignUsecase) MaxUploadBytes() int64 {
	return u.maxUploadBytes
}

// UploadBackDesign validates an image, converts it to WebP and stores it.
// The returned URL is what a configuration carries as backDesign.
func (u *DesignUsecase) UploadBackDesign(ctx context.Context, r io.Reader, filename string, size int64) (string, error) {
	if u.uploader == nil {
		return "", domain.ErrUploadUnavailable
	}
	if size > u.maxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidUpload, u.maxUploadBytes)
	}

	data, err := io.ReadAll(io.LimitReader(r, u.maxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > u.maxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidUpload, u.maxUploadBytes)
	}

	// trust the bytes, not the client's Content-Type
	if ct := utils.SniffContentType(data); !utils.IsImage(ct) {
		return "", fmt.Errorf("%w: unsupported type %s, use JPEG, PNG or WebP", domain.ErrInvalidUpload, ct)
	}

	processed, contentType, err := utils.ProcessImage(bytes.NewReader(data), filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidUpload, err)
	}

	url, err := u.uploader.UploadBuffer(ctx, processed, contentType)
	if err != nil {
		return "", err
	}
	logger.WithContext(ctx).Info().Str("url", url).Int("bytes", len(processed)).Msg("Usecase: back design uploaded")
	return url, nil
}
