package implementation

import (
	"context"

	"gembreak-be/internal/entity"
	"gembreak-be/internal/mapper"
	"gembreak-be/internal/model"
	"gembreak-be/internal/repository/contract"
	"gembreak-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HiddenChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewHiddenChatRepository(db *gorm.DB) contract.HiddenChatRepository {
	return &HiddenChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *HiddenChatRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *HiddenChatRepositoryImpl) CreateIfAbsent(ctx context.Context, mark *entity.HiddenChat) error {
	m := r.mapper.HiddenChatToModel(mark)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m).Error
}

func (r *HiddenChatRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HiddenChat, error) {
	var models []*model.HiddenChat
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.HiddenChat, len(models))
	for i, m := range models {
		entities[i] = r.mapper.HiddenChatToEntity(m)
	}
	return entities, nil
}

func (r *HiddenChatRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.HiddenChat{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
