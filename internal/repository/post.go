package repository

import (
	"context"
	"errors"

	"devfolio/internal/cache"
	"devfolio/internal/models"
	"devfolio/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and likes.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error
	HasLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// populatePostDetails fills the computed LikesCount and Liked fields.
func (r *postRepository) populatePostDetails(ctx context.Context, post *models.Post, currentUserID uint) error {
	var likes int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", post.ID).
		Count(&likes).Error; err != nil {
		return err
	}
	post.LikesCount = int(likes)

	if currentUserID != 0 {
		var like models.Like
		err := r.db.WithContext(ctx).
			Where("post_id = ? AND user_id = ?", post.ID, currentUserID).
			First(&like).Error
		switch {
		case err == nil:
			post.Liked = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			post.Liked = false
		default:
			return err
		}
	}
	return nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	defer observability.TrackQuery("insert", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return storeErr(err)
	}
	cache.Invalidate(ctx, cache.PostsListKey)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Likes").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, storeErr(err)
	}
	if err := r.populatePostDetails(ctx, &post, currentUserID); err != nil {
		return nil, storeErr(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, storeErr(err)
	}
	for _, post := range posts {
		if err := r.populatePostDetails(ctx, post, currentUserID); err != nil {
			return nil, storeErr(err)
		}
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return storeErr(err)
	}
	cache.Invalidate(ctx, cache.PostsListKey)
	return nil
}

func (r *postRepository) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var like models.Like
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&like).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, storeErr(err)
	}
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	like := &models.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Concurrent double-like; the unique index already holds the
			// at-most-one-like-per-user invariant.
			return nil
		}
		return storeErr(err)
	}
	cache.Invalidate(ctx, cache.PostsListKey)
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error; err != nil {
		return storeErr(err)
	}
	cache.Invalidate(ctx, cache.PostsListKey)
	return nil
}
