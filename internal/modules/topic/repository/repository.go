package repository

import (
	"context"

	"gorm.io/gorm"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/pkg/database"
)

type TopicRepository interface {
	Create(ctx context.Context, topic *entity.Topic) error
	FindByID(ctx context.Context, id uint) (*entity.Topic, error)
	Count(ctx context.Context, search string) (int64, error)
	FindAll(ctx context.Context, search string, offset, limit int) ([]*entity.Topic, error)
	Update(ctx context.Context, topic *entity.Topic) error
	Delete(ctx context.Context, id uint) error
}

type topicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(ctx context.Context, topic *entity.Topic) error {
	return r.db.WithContext(ctx).Omit("Newspapers").Create(topic).Error
}

func (r *topicRepository) FindByID(ctx context.Context, id uint) (*entity.Topic, error) {
	var topic entity.Topic
	if err := r.db.WithContext(ctx).First(&topic, id).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) filtered(ctx context.Context, search string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Topic{})
	if search != "" {
		query = query.Where("name ILIKE ?", database.ContainsPattern(search))
	}
	return query
}

func (r *topicRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	if err := r.filtered(ctx, search).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// FindAll returns topics ordered by name. A negative limit returns every row.
func (r *topicRepository) FindAll(ctx context.Context, search string, offset, limit int) ([]*entity.Topic, error) {
	var topics []*entity.Topic
	err := r.filtered(ctx, search).
		Order("name").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *topicRepository) Update(ctx context.Context, topic *entity.Topic) error {
	return r.db.WithContext(ctx).Model(topic).Select("name").Updates(topic).Error
}

// Delete removes the topic together with its newspapers and their publisher
// links.
func (r *topicRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		newspaperIDs := tx.Model(&entity.Newspaper{}).Select("id").Where("topic_id = ?", id)
		if err := tx.Where("newspaper_id IN (?)", newspaperIDs).Delete(&entity.NewspaperPublisher{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&entity.Newspaper{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Topic{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
