package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/pkg/database"
)

type NewspaperRepository interface {
	Create(ctx context.Context, newspaper *entity.Newspaper, publisherIDs []uint) error
	FindByID(ctx context.Context, id uint) (*entity.Newspaper, error)
	Count(ctx context.Context, search string) (int64, error)
	FindAll(ctx context.Context, search string, offset, limit int) ([]*entity.Newspaper, error)
	Update(ctx context.Context, newspaper *entity.Newspaper, publisherIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

type newspaperRepository struct {
	db *gorm.DB
}

func NewNewspaperRepository(db *gorm.DB) NewspaperRepository {
	return &newspaperRepository{db: db}
}

func (r *newspaperRepository) Create(ctx context.Context, newspaper *entity.Newspaper, publisherIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(newspaper).Error; err != nil {
			return err
		}
		return insertPublishers(tx, newspaper.ID, publisherIDs)
	})
}

func (r *newspaperRepository) FindByID(ctx context.Context, id uint) (*entity.Newspaper, error) {
	var newspaper entity.Newspaper
	err := r.db.WithContext(ctx).
		Preload("Topic").
		Preload("Publishers", func(db *gorm.DB) *gorm.DB {
			return db.Order("username")
		}).
		First(&newspaper, id).Error
	if err != nil {
		return nil, err
	}
	return &newspaper, nil
}

func (r *newspaperRepository) filtered(ctx context.Context, search string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Newspaper{})
	if search != "" {
		query = query.Where("title ILIKE ?", database.ContainsPattern(search))
	}
	return query
}

func (r *newspaperRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	if err := r.filtered(ctx, search).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// FindAll returns newspapers newest first with their topic loaded.
func (r *newspaperRepository) FindAll(ctx context.Context, search string, offset, limit int) ([]*entity.Newspaper, error) {
	var newspapers []*entity.Newspaper
	err := r.filtered(ctx, search).
		Preload("Topic").
		Order("published_date DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&newspapers).Error
	if err != nil {
		return nil, err
	}
	return newspapers, nil
}

// Update writes the editable columns and replaces the publisher set.
// published_date is never rewritten.
func (r *newspaperRepository) Update(ctx context.Context, newspaper *entity.Newspaper, publisherIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(newspaper).
			Select("title", "content", "topic_id").
			Updates(newspaper).Error
		if err != nil {
			return err
		}
		if err := tx.Where("newspaper_id = ?", newspaper.ID).Delete(&entity.NewspaperPublisher{}).Error; err != nil {
			return err
		}
		return insertPublishers(tx, newspaper.ID, publisherIDs)
	})
}

func (r *newspaperRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("newspaper_id = ?", id).Delete(&entity.NewspaperPublisher{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Newspaper{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func insertPublishers(tx *gorm.DB, newspaperID uint, publisherIDs []uint) error {
	if len(publisherIDs) == 0 {
		return nil
	}

	seen := make(map[uint]struct{}, len(publisherIDs))
	links := make([]entity.NewspaperPublisher, 0, len(publisherIDs))
	for _, id := range publisherIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		links = append(links, entity.NewspaperPublisher{NewspaperID: newspaperID, RedactorID: id})
	}
	return tx.Create(&links).Error
}
