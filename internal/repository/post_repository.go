package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
)

// PostRepository 文章仓储；List 不保证返回顺序
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context, filter model.PostFilter) ([]model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Delete 删除不存在的 id 不报错
func (r *postRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

// GetByID 未找到时返回 gorm.ErrRecordNotFound
func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter model.PostFilter) ([]model.Post, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	if filter.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.MinDate != nil {
		q = q.Where("post_date >= ?", *filter.MinDate)
	}

	posts := []model.Post{}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
