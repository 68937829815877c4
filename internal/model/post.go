package model

import "time"

// Post 博文；创建后不再修改，只能按 id 删除
type Post struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string    `json:"title" gorm:"type:varchar(255);not null"`
	Body         string    `json:"body" gorm:"type:text"`
	PostDate     time.Time `json:"postDate" gorm:"not null;index:idx_post_date"`
	FeatureImage *string   `json:"featureImage" gorm:"type:varchar(512)"`
	Published    bool      `json:"published" gorm:"not null;default:false;index:idx_post_published"`
	// 仅保存 id，不建外键：删除分类不级联删除文章
	CategoryID int64 `json:"category" gorm:"not null;index:idx_post_category"`
}

func (Post) TableName() string { return "posts" }

// ByPostDateDesc sorts posts newest first.
type ByPostDateDesc []Post

func (s ByPostDateDesc) Len() int           { return len(s) }
func (s ByPostDateDesc) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s ByPostDateDesc) Less(i, j int) bool { return s[i].PostDate.After(s[j].PostDate) }
