package repository

import (
	"context"
	"errors"

	"devfolio/internal/cache"
	"devfolio/internal/models"
	"devfolio/internal/observability"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles and their
// experience entries.
type ProfileRepository interface {
	// GetByOwner returns (nil, nil) when the owner has no profile; the
	// merge engine uses that to decide between insert and merge.
	GetByOwner(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context, limit, offset int) ([]models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	DeleteByOwner(ctx context.Context, userID uint) error

	AddExperience(ctx context.Context, exp *models.Experience) error
	GetExperience(ctx context.Context, profileID, expID uint) (*models.Experience, error)
	UpdateExperience(ctx context.Context, exp *models.Experience) error
	DeleteExperience(ctx context.Context, profileID, expID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// experienceOrder keeps entries most-recent-first: a newly added entry
// always sorts ahead of older ones.
func experienceOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

func (r *profileRepository) GetByOwner(ctx context.Context, userID uint) (*models.Profile, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var profile models.Profile
	found := true
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("User").
			Preload("Experience", experienceOrder).
			Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return storeErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// A cache hit for a deleted profile is impossible: deletion invalidates
	// the key. A zero-ID cached value means "no profile".
	if !found || profile.ID == 0 {
		return nil, nil
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var profiles []models.Profile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Experience", experienceOrder).
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, storeErr(err)
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	defer observability.TrackQuery("insert", "profiles")()

	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			// A concurrent upsert already created the profile; the unique
			// index on user_id is the real guard here.
			return models.NewConflictError("Profile already exists for this user")
		}
		return storeErr(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(profile.UserID), cache.ProfileListKey)
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	defer observability.TrackQuery("update", "profiles")()

	if err := r.db.WithContext(ctx).
		Omit("Experience", "User").
		Save(profile).Error; err != nil {
		return storeErr(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(profile.UserID), cache.ProfileListKey)
	return nil
}

func (r *profileRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // nothing to delete
			}
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		return tx.Delete(&profile).Error
	})
	if err != nil {
		return storeErr(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(userID), cache.ProfileListKey)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return storeErr(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}

func (r *profileRepository) GetExperience(ctx context.Context, profileID, expID uint) (*models.Experience, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exp models.Experience
	if err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profileID).
		First(&exp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Experience", expID)
		}
		return nil, storeErr(err)
	}
	return &exp, nil
}

func (r *profileRepository) UpdateExperience(ctx context.Context, exp *models.Experience) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(exp).Error; err != nil {
		return storeErr(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}

func (r *profileRepository) DeleteExperience(ctx context.Context, profileID, expID uint) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profileID).
		Delete(&models.Experience{})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Experience", expID)
	}
	cache.Invalidate(ctx, cache.ProfileListKey)
	return nil
}
