package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/pkg/database"
)

type RedactorRepository interface {
	Create(ctx context.Context, redactor *entity.Redactor) error
	FindByID(ctx context.Context, id uint) (*entity.Redactor, error)
	FindAccount(ctx context.Context, id uint) (*entity.Redactor, error)
	FindByUsername(ctx context.Context, username string) (*entity.Redactor, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*entity.Redactor, error)
	Count(ctx context.Context, search string) (int64, error)
	FindAll(ctx context.Context, search string, offset, limit int) ([]*entity.Redactor, error)
	Update(ctx context.Context, redactor *entity.Redactor) error
	Delete(ctx context.Context, id uint) error
	ToggleNewspaper(ctx context.Context, redactorID, newspaperID uint) (bool, error)
}

type redactorRepository struct {
	db *gorm.DB
}

func NewRedactorRepository(db *gorm.DB) RedactorRepository {
	return &redactorRepository{db: db}
}

func (r *redactorRepository) Create(ctx context.Context, redactor *entity.Redactor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(redactor).Error
}

// FindByID loads the redactor with the newspapers assigned to it.
func (r *redactorRepository) FindByID(ctx context.Context, id uint) (*entity.Redactor, error) {
	var redactor entity.Redactor
	err := r.db.WithContext(ctx).
		Preload("Newspapers", func(db *gorm.DB) *gorm.DB {
			return db.Order("published_date DESC")
		}).
		Preload("Newspapers.Topic").
		First(&redactor, id).Error
	if err != nil {
		return nil, err
	}
	return &redactor, nil
}

// FindAccount loads the redactor row alone.
func (r *redactorRepository) FindAccount(ctx context.Context, id uint) (*entity.Redactor, error) {
	var redactor entity.Redactor
	if err := r.db.WithContext(ctx).First(&redactor, id).Error; err != nil {
		return nil, err
	}
	return &redactor, nil
}

func (r *redactorRepository) FindByUsername(ctx context.Context, username string) (*entity.Redactor, error) {
	var redactor entity.Redactor
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&redactor).Error; err != nil {
		return nil, err
	}
	return &redactor, nil
}

func (r *redactorRepository) FindByIDs(ctx context.Context, ids []uint) ([]*entity.Redactor, error) {
	var redactors []*entity.Redactor
	if len(ids) == 0 {
		return redactors, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("username").Find(&redactors).Error; err != nil {
		return nil, err
	}
	return redactors, nil
}

func (r *redactorRepository) filtered(ctx context.Context, search string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Redactor{})
	if search != "" {
		query = query.Where("username ILIKE ?", database.ContainsPattern(search))
	}
	return query
}

func (r *redactorRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	if err := r.filtered(ctx, search).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *redactorRepository) FindAll(ctx context.Context, search string, offset, limit int) ([]*entity.Redactor, error) {
	var redactors []*entity.Redactor
	err := r.filtered(ctx, search).
		Order("username").
		Offset(offset).
		Limit(limit).
		Find(&redactors).Error
	if err != nil {
		return nil, err
	}
	return redactors, nil
}

func (r *redactorRepository) Update(ctx context.Context, redactor *entity.Redactor) error {
	return r.db.WithContext(ctx).
		Model(redactor).
		Select("username", "first_name", "last_name", "years_of_experience").
		Updates(redactor).Error
}

// Delete removes the redactor and its publisher links. Newspapers stay.
func (r *redactorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("redactor_id = ?", id).Delete(&entity.NewspaperPublisher{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Redactor{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ToggleNewspaper removes the link when present and adds it otherwise. It
// reports whether the redactor is assigned afterwards.
func (r *redactorRepository) ToggleNewspaper(ctx context.Context, redactorID, newspaperID uint) (bool, error) {
	var assigned bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []entity.NewspaperPublisher
		err := tx.Where("newspaper_id = ? AND redactor_id = ?", newspaperID, redactorID).
			Limit(1).
			Find(&existing).Error
		if err != nil {
			return err
		}

		if len(existing) > 0 {
			assigned = false
			return tx.Where("newspaper_id = ? AND redactor_id = ?", newspaperID, redactorID).
				Delete(&entity.NewspaperPublisher{}).Error
		}

		assigned = true
		return tx.Create(&entity.NewspaperPublisher{NewspaperID: newspaperID, RedactorID: redactorID}).Error
	})
	if err != nil {
		return false, err
	}
	return assigned, nil
}
