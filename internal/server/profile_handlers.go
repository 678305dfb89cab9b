package server

import (
	"parlor/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /profile/:profileId.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.UserContext(), paramID(c, "profileId"), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /profile/:profileId.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		ProfileID: paramID(c, "profileId"),
		Body:      bodyInput(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// DeleteProfile handles DELETE /profile/:profileId and echoes the deleted
// profile.
func (s *Server) DeleteProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.DeleteProfile(c.UserContext(), service.DeleteProfileInput{
		UserID:    currentUserID(c),
		ProfileID: paramID(c, "profileId"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}
