// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devfolio/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seeded accounts share
// the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	email := gofakeit.Email()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hashedPassword),
		Avatar:   models.GravatarURL(email),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

var seedStatuses = []string{
	"Developer", "Senior Developer", "Junior Developer",
	"Student or Learning", "Instructor", "Manager",
}

var seedSkills = []string{
	"Go", "JavaScript", "TypeScript", "Python", "SQL",
	"Docker", "Kubernetes", "React", "PostgreSQL", "Redis",
}

// CreateProfile constructs and persists a profile for the given user, with a
// couple of experience entries spread over the past years.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	skills := make([]string, 0, 4)
	for _, i := range f.rng.Perm(len(seedSkills))[:4] {
		skills = append(skills, seedSkills[i])
	}

	profile := &models.Profile{
		UserID:         user.ID,
		Status:         seedStatuses[f.rng.Intn(len(seedStatuses))],
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Bio:            gofakeit.Sentence(12),
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Skills:         skills,
		Social: models.SocialLinks{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", strings.ToLower(gofakeit.Username())),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", strings.ToLower(gofakeit.Username())),
		},
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}

	for i := 0; i < 2; i++ {
		from := time.Now().AddDate(-(i + 1), -f.rng.Intn(6), 0)
		exp := &models.Experience{
			ProfileID:   profile.ID,
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     i == 0,
			Description: gofakeit.Sentence(10),
		}
		if i > 0 {
			to := from.AddDate(1, 0, 0)
			exp.To = &to
		}
		if err := f.db.Create(exp).Error; err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// CreatePost constructs and persists a post authored by the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID: user.ID,
		Text:   gofakeit.Paragraph(1, 3, 8, " "),
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// LikePost records a like by the given user on the given post. Duplicate
// likes are silently skipped.
func (f *Factory) LikePost(user *models.User, post *models.Post) error {
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Create(like).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}
