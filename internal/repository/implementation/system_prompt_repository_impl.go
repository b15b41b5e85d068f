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

type SystemPromptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PromptMapper
}

func NewSystemPromptRepository(db *gorm.DB) contract.SystemPromptRepository {
	return &SystemPromptRepositoryImpl{
		db:     db,
		mapper: mapper.NewPromptMapper(),
	}
}

func (r *SystemPromptRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SystemPromptRepositoryImpl) Create(ctx context.Context, prompt *entity.SystemPrompt) error {
	m := r.mapper.ToModel(prompt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*prompt = *r.mapper.ToEntity(m)
	return nil
}

func (r *SystemPromptRepositoryImpl) Update(ctx context.Context, prompt *entity.SystemPrompt) error {
	m := r.mapper.ToModel(prompt)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*prompt = *r.mapper.ToEntity(m)
	return nil
}

func (r *SystemPromptRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SystemPrompt{}, id).Error
}

func (r *SystemPromptRepositoryImpl) ClearPrimary(ctx context.Context, exceptId uuid.UUID) error {
	query := r.db.WithContext(ctx).
		Model(&model.SystemPrompt{}).
		Where("is_primary = ?", true)
	if exceptId != uuid.Nil {
		query = query.Where("id <> ?", exceptId)
	}
	return query.Updates(map[string]interface{}{
		"is_primary": false,
		"updated_at": time.Now(),
	}).Error
}

func (r *SystemPromptRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SystemPrompt, error) {
	var m model.SystemPrompt
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SystemPromptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemPrompt, error) {
	var models []*model.SystemPrompt
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SystemPrompt, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *SystemPromptRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SystemPrompt{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
