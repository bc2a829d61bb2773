package database

import (
	"context"
	"errors"

	"iyouconnect/internal/core/post"

	"gorm.io/gorm"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository با gorm
type PostRepositoryDatabase struct {
	DB *gorm.DB
}

// NewPostRepositoryDatabase سازنده PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{DB: db}
}

// Migrate ساخت جدول پست‌ها
func (repo *PostRepositoryDatabase) Migrate() error {
	return repo.DB.AutoMigrate(&post.Post{})
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	stored := p.Clone()
	err := repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last uint64
		if err := tx.Model(&post.Post{}).Select("COALESCE(MAX(seq), 0)").Scan(&last).Error; err != nil {
			return err
		}
		stored.Seq = last + 1
		return tx.Create(stored).Error
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := repo.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, post.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update فقط فیلدهای قابل تغییر را ذخیره می‌کند؛ created_at و seq دست نمی‌خورند
func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	res := repo.DB.WithContext(ctx).Model(&post.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"content": p.Content,
			"likes":   p.Likes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id string) error {
	res := repo.DB.WithContext(ctx).Where("id = ?", id).Delete(&post.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (repo *PostRepositoryDatabase) List(ctx context.Context) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.DB.WithContext(ctx).Order("seq desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) Count(ctx context.Context) (int, error) {
	var n int64
	if err := repo.DB.WithContext(ctx).Model(&post.Post{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
