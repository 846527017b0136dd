package service

import (
	"context"
	"testing"

	"devfolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple", "Go,SQL,Docker", []string{"Go", "SQL", "Docker"}},
		{"trims whitespace", "a, b ,c", []string{"a", "b", "c"}},
		{"single token", "Go", []string{"Go"}},
		{"empty tokens kept", "Go,,SQL", []string{"Go", "", "SQL"}},
		{"trailing comma", "Go,", []string{"Go", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitSkills(tt.input))
		})
	}
}

func TestApplyFields_RoutingTable(t *testing.T) {
	profile := &models.Profile{}
	applyFields(profile, map[string]string{
		"status":         "Developer",
		"company":        "Acme",
		"website":        "https://acme.dev",
		"location":       "Lisbon",
		"bio":            "I build things",
		"githubusername": "acmedev",
		"skills":         "Go, SQL",
		"youtube":        "https://youtube.com/@acme",
		"twitter":        "https://twitter.com/acme",
		"facebook":       "https://facebook.com/acme",
		"linkedin":       "https://linkedin.com/in/acme",
		"instagram":      "https://instagram.com/acme",
	})

	assert.Equal(t, "Developer", profile.Status)
	assert.Equal(t, "Acme", profile.Company)
	assert.Equal(t, "https://acme.dev", profile.Website)
	assert.Equal(t, "Lisbon", profile.Location)
	assert.Equal(t, "I build things", profile.Bio)
	assert.Equal(t, "acmedev", profile.GithubUsername)
	assert.Equal(t, []string{"Go", "SQL"}, profile.Skills)
	assert.Equal(t, "https://youtube.com/@acme", profile.Social.Youtube)
	assert.Equal(t, "https://twitter.com/acme", profile.Social.Twitter)
	assert.Equal(t, "https://facebook.com/acme", profile.Social.Facebook)
	assert.Equal(t, "https://linkedin.com/in/acme", profile.Social.Linkedin)
	assert.Equal(t, "https://instagram.com/acme", profile.Social.Instagram)
}

func TestApplyFields_IgnoresUnknownKeys(t *testing.T) {
	profile := &models.Profile{Status: "Developer"}
	applyFields(profile, map[string]string{
		"handle":  "ignored",
		"user_id": "999",
	})
	assert.Equal(t, "Developer", profile.Status)
	assert.Equal(t, uint(0), profile.UserID)
}

func TestApplyFields_OnlySubmittedFieldsChange(t *testing.T) {
	profile := &models.Profile{
		Status:   "Developer",
		Company:  "Old Corp",
		Location: "Berlin",
		Skills:   []string{"Go"},
		Social:   models.SocialLinks{Twitter: "https://twitter.com/old"},
	}

	applyFields(profile, map[string]string{"company": "New Corp"})

	assert.Equal(t, "New Corp", profile.Company)
	assert.Equal(t, "Developer", profile.Status)
	assert.Equal(t, "Berlin", profile.Location)
	assert.Equal(t, []string{"Go"}, profile.Skills)
	assert.Equal(t, "https://twitter.com/old", profile.Social.Twitter)
}

func TestProfileService_Upsert_RequiredFields(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := NewProfileService(mockRepo, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"missing status", map[string]string{"skills": "Go"}},
		{"missing skills", map[string]string{"status": "Developer"}},
		{"blank status", map[string]string{"status": "  ", "skills": "Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, 1, tt.fields)
			require.Error(t, err)
			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}

	// Validation fails before any store access.
	mockRepo.AssertNotCalled(t, "GetByOwner", mock.Anything, mock.Anything)
}

func TestProfileService_Upsert_CreatesWhenAbsent(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := NewProfileService(mockRepo, nil, nil)
	ctx := context.Background()

	created := &models.Profile{ID: 10, UserID: 1, Status: "Developer", Skills: []string{"Go", "SQL"}}

	mockRepo.On("GetByOwner", mock.Anything, uint(1)).Return(nil, nil).Once()
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.UserID == 1 && p.Status == "Developer" && len(p.Skills) == 2
	})).Return(nil).Once()
	mockRepo.On("GetByOwner", mock.Anything, uint(1)).Return(created, nil).Once()

	profile, err := svc.Upsert(ctx, 1, map[string]string{
		"status": "Developer",
		"skills": "Go, SQL",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(10), profile.ID)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Upsert_MergesWhenPresent(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := NewProfileService(mockRepo, nil, nil)
	ctx := context.Background()

	existing := &models.Profile{
		ID: 10, UserID: 1,
		Status:   "Developer",
		Company:  "Old Corp",
		Location: "Berlin",
		Skills:   []string{"Go"},
	}

	mockRepo.On("GetByOwner", mock.Anything, uint(1)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		// The submitted fields replace; everything else survives.
		return p.ID == 10 && p.Company == "New Corp" && p.Location == "Berlin" &&
			len(p.Skills) == 2
	})).Return(nil).Once()

	_, err := svc.Upsert(ctx, 1, map[string]string{
		"status":  "Developer",
		"skills":  "Go, Rust",
		"company": "New Corp",
	})
	require.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Upsert_Idempotent(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := NewProfileService(mockRepo, nil, nil)
	ctx := context.Background()

	existing := &models.Profile{ID: 10, UserID: 1, Status: "Developer", Skills: []string{"Go"}}
	fields := map[string]string{"status": "Developer", "skills": "Go"}

	mockRepo.On("GetByOwner", mock.Anything, uint(1)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	first, err := svc.Upsert(ctx, 1, fields)
	require.NoError(t, err)
	second, err := svc.Upsert(ctx, 1, fields)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Skills, second.Skills)
}

func TestProfileService_GetByOwner_NotFound(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := NewProfileService(mockRepo, nil, nil)

	mockRepo.On("GetByOwner", mock.Anything, uint(9)).Return(nil, nil)

	_, err := svc.GetByOwner(context.Background(), 9)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestProfileService_AddExperience_RequiresProfile(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := NewProfileService(mockRepo, nil, nil)

	mockRepo.On("GetByOwner", mock.Anything, uint(1)).Return(nil, nil)

	from := mustDate(t, "2020-01-15")
	_, err := svc.AddExperience(context.Background(), 1, ExperienceInput{
		Title: "Engineer", Company: "Acme", From: &from,
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	mockRepo.AssertNotCalled(t, "AddExperience", mock.Anything, mock.Anything)
}

func TestProfileService_UpdateExperience_MergesSubmittedFields(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := NewProfileService(mockRepo, nil, nil)
	ctx := context.Background()

	profile := &models.Profile{ID: 10, UserID: 1, Status: "Developer"}
	existing := &models.Experience{
		ID: 3, ProfileID: 10,
		Title:       "Engineer",
		Company:     "Acme",
		Description: "Original description",
	}

	mockRepo.On("GetByOwner", mock.Anything, uint(1)).Return(profile, nil)
	mockRepo.On("GetExperience", mock.Anything, uint(10), uint(3)).Return(existing, nil)
	mockRepo.On("UpdateExperience", mock.Anything, mock.MatchedBy(func(e *models.Experience) bool {
		return e.ID == 3 && e.Title == "Staff Engineer" &&
			e.Company == "Acme" && e.Description == "Original description"
	})).Return(nil)

	_, err := svc.UpdateExperience(ctx, 1, 3, ExperienceInput{Title: "Staff Engineer"})
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_UpdateExperience_WrongOwner(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := NewProfileService(mockRepo, nil, nil)

	profile := &models.Profile{ID: 10, UserID: 1}
	mockRepo.On("GetByOwner", mock.Anything, uint(1)).Return(profile, nil)
	// The entry belongs to another profile, so the scoped lookup misses.
	mockRepo.On("GetExperience", mock.Anything, uint(10), uint(99)).
		Return(nil, models.NewNotFoundError("Experience", 99))

	_, err := svc.UpdateExperience(context.Background(), 1, 99, ExperienceInput{Title: "X"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	mockRepo.AssertNotCalled(t, "UpdateExperience", mock.Anything, mock.Anything)
}
