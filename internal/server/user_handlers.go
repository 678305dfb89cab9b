package server

import (
	"strings"

	"parlor/internal/models"
	"parlor/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// UpdateCredentials handles PUT /user. The caller updates their own email and
// password, and has to prove the current password first.
func (s *Server) UpdateCredentials(c *fiber.Ctx) error {
	in := bodyInput(c)
	if msgs := validation.Evaluate(validation.CredentialUpdateRules(), in); len(msgs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(msgs...))
	}

	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Please sign in again and re-try that."))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(in.Str("currentPassword"))); err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Please sign in again and re-try that."))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Str("newPassword")), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to update credentials", err))
	}

	user.Email = strings.TrimSpace(in.Str("newEmail"))
	user.Hash = string(hash)
	if err := s.userRepo.Update(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to update credentials", err))
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /user. The profile has to be deleted first; a
// remaining profile surfaces as a persistence failure.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Please sign in again and re-try that."))
	}

	if err := s.userRepo.Delete(c.UserContext(), user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to delete account", err))
	}

	return c.JSON(user)
}
