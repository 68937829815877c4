package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Category, error)
}

type categoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepository{db: db} }

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Delete 只删分类本身，引用它的文章保持不变
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{}).Error
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	res := []model.Category{}
	err := r.db.WithContext(ctx).Find(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}
