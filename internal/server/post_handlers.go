package server

import (
	"parlor/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /post/from/:profileId.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		ProfileID: paramID(c, "profileId"),
		Body:      bodyInput(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetPost handles GET /post/:postId.
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPostForViewer(c.UserContext(), currentUserID(c), paramID(c, "postId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /post/:postId.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID: currentUserID(c),
		PostID: paramID(c, "postId"),
		Body:   bodyInput(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /post/:postId and echoes the deleted post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	post, err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: paramID(c, "postId"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// LikePost handles POST /post/:postId/like.
func (s *Server) LikePost(c *fiber.Ctx) error {
	post, err := s.postService.LikePost(c.UserContext(), currentUserID(c), paramID(c, "postId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// UnlikePost handles DELETE /post/:postId/like.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	post, err := s.postService.UnlikePost(c.UserContext(), currentUserID(c), paramID(c, "postId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}
