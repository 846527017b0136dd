package service

import (
	"context"
	"strings"
	"time"

	"devfolio/internal/cache"
	"devfolio/internal/models"
	"devfolio/internal/observability"
	"devfolio/internal/repository"

	"gorm.io/gorm"
)

// fieldRoute says where a submitted profile field is stored.
type fieldRoute int

const (
	// routeTopLevel stores the value as a direct Profile attribute.
	routeTopLevel fieldRoute = iota
	// routeSocial stores the value under the nested social mapping.
	routeSocial
	// routeSkills splits the comma-delimited value into the skills list.
	routeSkills
)

// profileFieldRoutes is the exhaustive routing table for recognized profile
// fields. Submitted keys not present here are ignored.
var profileFieldRoutes = map[string]fieldRoute{
	"status":         routeTopLevel,
	"company":        routeTopLevel,
	"website":        routeTopLevel,
	"location":       routeTopLevel,
	"bio":            routeTopLevel,
	"githubusername": routeTopLevel,
	"skills":         routeSkills,
	"youtube":        routeSocial,
	"twitter":        routeSocial,
	"facebook":       routeSocial,
	"linkedin":       routeSocial,
	"instagram":      routeSocial,
}

// SplitSkills turns a comma-delimited string into the ordered skills list,
// trimming surrounding whitespace from each token. Empty tokens are kept,
// matching the documented merge behavior.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, len(parts))
	for i, p := range parts {
		skills[i] = strings.TrimSpace(p)
	}
	return skills
}

// applyFields merges submitted fields into the profile according to the
// routing table. Only keys present in fields are touched.
func applyFields(profile *models.Profile, fields map[string]string) {
	for key, value := range fields {
		route, ok := profileFieldRoutes[key]
		if !ok {
			continue
		}
		switch route {
		case routeSkills:
			profile.Skills = SplitSkills(value)
		case routeSocial:
			switch key {
			case "youtube":
				profile.Social.Youtube = value
			case "twitter":
				profile.Social.Twitter = value
			case "facebook":
				profile.Social.Facebook = value
			case "linkedin":
				profile.Social.Linkedin = value
			case "instagram":
				profile.Social.Instagram = value
			}
		case routeTopLevel:
			switch key {
			case "status":
				profile.Status = value
			case "company":
				profile.Company = value
			case "website":
				profile.Website = value
			case "location":
				profile.Location = value
			case "bio":
				profile.Bio = value
			case "githubusername":
				profile.GithubUsername = value
			}
		}
	}
}

// ProfileService implements the create-or-update profile upsert and the
// experience sub-entry operations.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
}

// ExperienceInput carries submitted experience fields. From and To use the
// 2006-01-02 date layout; empty strings mean "not submitted".
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        *time.Time
	To          *time.Time
	Current     *bool
	Description string
}

// NewProfileService returns a new ProfileService. The DB handle is used only
// for the account-deletion transaction.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, db *gorm.DB) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo, db: db}
}

// Upsert creates the owner's profile from the submitted fields, or merges
// them into the existing one. Only submitted fields are replaced. status and
// skills must be present and non-empty; that is checked here again even
// though handlers validate first, so no caller can reach the store without
// them.
func (s *ProfileService) Upsert(ctx context.Context, ownerID uint, fields map[string]string) (*models.Profile, error) {
	if strings.TrimSpace(fields["status"]) == "" {
		return nil, models.NewValidationError("Status is required")
	}
	if strings.TrimSpace(fields["skills"]) == "" {
		return nil, models.NewValidationError("Skills is required")
	}

	profile, err := s.profileRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &models.Profile{UserID: ownerID}
		applyFields(profile, fields)
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		observability.ProfileUpserts.WithLabelValues("created").Inc()
	} else {
		applyFields(profile, fields)
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return nil, err
		}
		observability.ProfileUpserts.WithLabelValues("merged").Inc()
	}

	return s.profileRepo.GetByOwner(ctx, ownerID)
}

// GetByOwner returns the owner's profile or a not-found error.
func (s *ProfileService) GetByOwner(ctx context.Context, ownerID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", ownerID)
	}
	return profile, nil
}

// List returns all profiles.
func (s *ProfileService) List(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	return s.profileRepo.List(ctx, limit, offset)
}

// AddExperience prepends an experience entry to the owner's profile.
// Fails with not-found when the profile does not exist yet.
func (s *ProfileService) AddExperience(ctx context.Context, ownerID uint, in ExperienceInput) (*models.Profile, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Company == "" {
		return nil, models.NewValidationError("Company is required")
	}
	if in.From == nil {
		return nil, models.NewValidationError("From date is required")
	}

	profile, err := s.profileRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", ownerID)
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        *in.From,
		To:          in.To,
		Description: in.Description,
	}
	if in.Current != nil {
		exp.Current = *in.Current
	}

	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.ProfileKey(ownerID))

	return s.profileRepo.GetByOwner(ctx, ownerID)
}

// UpdateExperience merges submitted fields into the entry with the given ID
// on the owner's profile.
func (s *ProfileService) UpdateExperience(ctx context.Context, ownerID, expID uint, in ExperienceInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", ownerID)
	}

	exp, err := s.profileRepo.GetExperience(ctx, profile.ID, expID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		exp.Title = in.Title
	}
	if in.Company != "" {
		exp.Company = in.Company
	}
	if in.Location != "" {
		exp.Location = in.Location
	}
	if in.From != nil {
		exp.From = *in.From
	}
	if in.To != nil {
		exp.To = in.To
	}
	if in.Current != nil {
		exp.Current = *in.Current
	}
	if in.Description != "" {
		exp.Description = in.Description
	}

	if err := s.profileRepo.UpdateExperience(ctx, exp); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.ProfileKey(ownerID))

	return s.profileRepo.GetByOwner(ctx, ownerID)
}

// DeleteExperience removes the entry with the given ID from the owner's profile.
func (s *ProfileService) DeleteExperience(ctx context.Context, ownerID, expID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", ownerID)
	}

	if err := s.profileRepo.DeleteExperience(ctx, profile.ID, expID); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.ProfileKey(ownerID))

	return s.profileRepo.GetByOwner(ctx, ownerID)
}

// DeleteAccount removes the owner's profile, posts, likes, and account in
// one transaction.
func (s *ProfileService) DeleteAccount(ctx context.Context, ownerID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("user_id = ?", ownerID).First(&profile).Error; err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := tx.Where("user_id = ?", ownerID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", ownerID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, ownerID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileKey(ownerID), cache.UserKey(ownerID), cache.ProfileListKey, cache.PostsListKey)
	return nil
}
