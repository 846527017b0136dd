package server

import (
	"strconv"
	"time"

	"devfolio/internal/cache"
	"devfolio/internal/models"
	"devfolio/internal/service"
	"devfolio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type profileRequest struct {
	Status         string `json:"status"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// fieldMap flattens the request into the field map the merge engine consumes.
// Empty values are dropped so they do not overwrite existing data.
func (r profileRequest) fieldMap() map[string]string {
	all := map[string]string{
		"status":         r.Status,
		"company":        r.Company,
		"website":        r.Website,
		"location":       r.Location,
		"bio":            r.Bio,
		"githubusername": r.GithubUsername,
		"skills":         r.Skills,
		"youtube":        r.Youtube,
		"twitter":        r.Twitter,
		"facebook":       r.Facebook,
		"linkedin":       r.Linkedin,
		"instagram":      r.Instagram,
	}
	fields := make(map[string]string)
	for k, v := range all {
		if v != "" {
			fields[k] = v
		}
	}
	return fields
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     *bool  `json:"current"`
	Description string `json:"description"`
}

// parseDate accepts the plain date layout or a full timestamp.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func (r experienceRequest) toInput() (service.ExperienceInput, error) {
	from, err := parseDate(r.From)
	if err != nil {
		return service.ExperienceInput{}, models.NewValidationError("Invalid from date")
	}
	to, err := parseDate(r.To)
	if err != nil {
		return service.ExperienceInput{}, models.NewValidationError("Invalid to date")
	}
	return service.ExperienceInput{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        from,
		To:          to,
		Current:     r.Current,
		Description: r.Description,
	}, nil
}

// UpsertProfile creates or merges the caller's profile. The owner comes from
// the token, never the body.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	violations := validation.Fields(map[string]string{
		"status": req.Status,
		"skills": req.Skills,
	}, validation.RuleSet{
		"status": validation.Required("Status"),
		"skills": validation.Required("Skills"),
	})
	if len(violations) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": violations})
	}

	profile, err := s.profileService.Upsert(c.UserContext(), currentUserID(c), req.fieldMap())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetMyProfile returns the caller's own profile.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetByOwner(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// ListProfiles returns all profiles. Public route; the listing is cached.
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	// Only the default page is cached; paginated requests hit the store.
	if limit == 50 && offset == 0 {
		var cached []models.Profile
		if found, _ := cache.GetJSON(c.UserContext(), cache.ProfileListKey, &cached); found {
			return c.Status(fiber.StatusOK).JSON(cached)
		}
	}

	profiles, err := s.profileService.List(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if limit == 50 && offset == 0 {
		_ = cache.SetJSON(c.UserContext(), cache.ProfileListKey, profiles, cache.ListTTL)
	}
	return c.Status(fiber.StatusOK).JSON(profiles)
}

// GetProfileByUser returns the profile owned by the given user. Public route.
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	profile, err := s.profileService.GetByOwner(c.UserContext(), uint(userID))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// DeleteAccount removes the caller's profile, posts, and account.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileService.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Account deleted"})
}

// AddExperience adds a work history entry to the caller's profile and
// returns the updated profile.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	violations := validation.Fields(map[string]string{
		"title":   req.Title,
		"company": req.Company,
		"from":    req.From,
	}, validation.RuleSet{
		"title":   validation.Required("Title"),
		"company": validation.Required("Company"),
		"from":    validation.Required("From date"),
	})
	if len(violations) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": violations})
	}

	in, err := req.toInput()
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// UpdateExperience merges submitted fields into the addressed entry.
func (s *Server) UpdateExperience(c *fiber.Ctx) error {
	expID, err := strconv.ParseUint(c.Params("exp_id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid experience ID"))
	}

	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in, err := req.toInput()
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	profile, err := s.profileService.UpdateExperience(c.UserContext(), currentUserID(c), uint(expID), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// DeleteExperience removes the addressed entry from the caller's profile.
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	expID, err := strconv.ParseUint(c.Params("exp_id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid experience ID"))
	}

	profile, err := s.profileService.DeleteExperience(c.UserContext(), currentUserID(c), uint(expID))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}
