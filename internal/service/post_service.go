package service

import (
	"context"
	"strings"

	"devfolio/internal/models"
	"devfolio/internal/observability"
	"devfolio/internal/repository"
)

// PostService handles post creation, deletion, and the like toggle.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// Create stores a new post for the author. The author's name and avatar are
// snapshotted onto the post at creation time.
func (s *PostService) Create(ctx context.Context, authorID uint, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: authorID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, authorID)
}

// Get returns a single post with like details for the current user.
func (s *PostService) Get(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// List returns posts newest first.
func (s *PostService) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

// Delete removes a post. Only its author may delete it; anyone else gets a
// forbidden error, and the ownership check happens before any write.
func (s *PostService) Delete(ctx context.Context, id, requesterID uint) error {
	post, err := s.postRepo.GetByID(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return models.NewForbiddenError("Not authorized to delete this post")
	}
	return s.postRepo.Delete(ctx, id)
}

// ToggleLike flips the requester's like on a post. Liking when already liked
// unlikes, and vice versa, so a user holds at most one like per post. Returns
// the post with updated like details.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.HasLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("unlike").Inc()
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("like").Inc()
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}
