package model

// Category 文章分类，被 Post 以 id 引用
type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(128);not null"`
}

func (Category) TableName() string { return "categories" }
