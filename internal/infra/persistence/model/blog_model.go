package model

import "time"

// BlogModel mirrors the 'blogs' table. The author is a plain foreign key;
// no navigation property back to the user row.
type BlogModel struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	Title           string `gorm:"type:varchar(300);not null"`
	Content         string `gorm:"type:text;not null"`
	Summary         string `gorm:"type:varchar(500)"`
	CoverImageURL   string `gorm:"type:text"`
	Category        string `gorm:"type:varchar(100);index"`
	Tags            string `gorm:"type:text"`
	IsPublished     bool   `gorm:"not null;default:false;index"`
	ViewCount       int    `gorm:"not null;default:0"`
	ReadTimeMinutes int    `gorm:"not null;default:1"`
	UserID          int64  `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PublishedAt     *time.Time
}

// TableName explicitly sets the table name for GORM.
func (BlogModel) TableName() string {
	return "blogs"
}

// CommentModel mirrors the 'comments' table.
type CommentModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Content   string `gorm:"type:text;not null"`
	UserID    int64  `gorm:"not null;index"`
	BlogID    int64  `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}

// BlogLikeModel mirrors the 'blog_likes' table. One like per user per post,
// enforced by the composite unique index.
type BlogLikeModel struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_blog_likes_blog_user"`
	BlogID    int64 `gorm:"not null;uniqueIndex:idx_blog_likes_blog_user"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BlogLikeModel) TableName() string {
	return "blog_likes"
}
