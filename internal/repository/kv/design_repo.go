package kvrepo

import (
	"context"
	"fmt"

	"futur-backend/internal/domain"
)

type designRepository struct {
	kv domain.KeyValueStore
}

func NewDesignRepository(kv domain.KeyValueStore) domain.DesignRepository {
	return &designRepository{kv: kv}
}

func (r *designRepository) SaveDesign(ctx context.Context, design *domain.Design) error {
	if design.ID == "" {
		return fmt.Errorf("design id is required")
	}
	return putJSON(ctx, r.kv, designPrefix+design.ID, design)
}

func (r *designRepository) GetDesign(ctx context.Context, id string) (*domain.Design, error) {
	var d domain.Design
	if err := getJSON(ctx, r.kv, designPrefix+id, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
