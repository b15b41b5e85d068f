package implementation

import (
	"context"
	"errors"
	"time"

	"gembreak-be/internal/entity"
	"gembreak-be/internal/mapper"
	"gembreak-be/internal/model"
	"gembreak-be/internal/repository/contract"
	"gembreak-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InviteCodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewInviteCodeRepository(db *gorm.DB) contract.InviteCodeRepository {
	return &InviteCodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *InviteCodeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InviteCodeRepositoryImpl) Create(ctx context.Context, code *entity.InviteCode) error {
	m := r.mapper.InviteCodeToModel(code)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*code = *r.mapper.InviteCodeToEntity(m)
	return nil
}

func (r *InviteCodeRepositoryImpl) MarkUsed(ctx context.Context, id uuid.UUID, usedBy uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.InviteCode{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_by": usedBy,
			"used_at": time.Now(),
		}).Error
}

func (r *InviteCodeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InviteCode, error) {
	var m model.InviteCode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.InviteCodeToEntity(&m), nil
}

func (r *InviteCodeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InviteCode, error) {
	var models []*model.InviteCode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.InviteCode, len(models))
	for i, m := range models {
		entities[i] = r.mapper.InviteCodeToEntity(m)
	}
	return entities, nil
}

func (r *InviteCodeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.InviteCode{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
