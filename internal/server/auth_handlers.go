package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"parlor/internal/middleware"
	"parlor/internal/models"
	"parlor/internal/observability"
	"parlor/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 7 * 24 * time.Hour

// Signup handles POST /user. It creates the account and its profile together;
// the profile name defaults to the local part of the email address.
func (s *Server) Signup(c *fiber.Ctx) error {
	in := bodyInput(c)
	if msgs := validation.Evaluate(validation.SignupRules(), in); len(msgs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(msgs...))
	}

	email := strings.TrimSpace(in.Str("email"))
	if _, err := s.userRepo.GetByEmail(c.UserContext(), email); err == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An account with that email already exists."))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to create account", err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Str("password")), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to create account", err))
	}

	user := &models.User{
		Email: email,
		Hash:  string(hash),
		Profile: &models.Profile{
			Name: strings.SplitN(email, "@", 2)[0],
		},
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to create account", err))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to create account", err))
	}

	observability.SignupsTotal.Inc()
	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /user/login. Unknown email and wrong password produce the
// same 401 so the response does not reveal which one was wrong.
func (s *Server) Login(c *fiber.Ctx) error {
	in := bodyInput(c)
	if msgs := validation.Evaluate(validation.LoginRules(), in); len(msgs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(msgs...))
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), strings.TrimSpace(in.Str("email")))
	if err != nil {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Please sign in again and re-try that."))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(in.Str("password"))); err != nil {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Please sign in again and re-try that."))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("Failed to generate token", err))
	}

	observability.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(fiber.Map{"token": token})
}

// generateToken creates a signed JWT for the given user ID.
func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": middleware.TokenIssuer,
		"aud": middleware.TokenAudience,
		"exp": now.Add(tokenLifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI produces a unique token identifier.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
