package seed

import (
	"log"

	"devfolio/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates demo-data creation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Hard deletes, bypassing soft-delete.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Like{}, &models.Post{}, &models.Experience{},
		&models.Profile{}, &models.Chart{}, &models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// Run creates the requested number of users, each with a profile, then a
// spread of posts with a loose mesh of likes.
func (s *Seeder) Run(numUsers, numPosts int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		if _, err := s.factory.CreateProfile(user); err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("Created %d users with profiles", len(users))

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}
	log.Printf("Created %d posts", len(posts))

	likes := 0
	for _, post := range posts {
		for _, user := range users {
			if s.factory.rng.Intn(10) < 2 {
				if err := s.factory.LikePost(user, post); err != nil {
					return err
				}
				likes++
			}
		}
	}
	log.Printf("Created %d likes", likes)

	return nil
}
