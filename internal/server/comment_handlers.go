package server

import (
	"parlor/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /comment/post/:postId/from/:profileId.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		PostID:    paramID(c, "postId"),
		ProfileID: paramID(c, "profileId"),
		Body:      bodyInput(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// ListComments handles GET /comment/post/:postId.
func (s *Server) ListComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListComments(c.UserContext(), paramID(c, "postId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// CreateReply handles POST /comment/reply/:commentId/from/:profileId.
func (s *Server) CreateReply(c *fiber.Ctx) error {
	comment, err := s.commentService.CreateReply(c.UserContext(), service.CreateReplyInput{
		CommentID: paramID(c, "commentId"),
		ProfileID: paramID(c, "profileId"),
		Body:      bodyInput(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// ListReplies handles GET /comment/reply/:commentId.
func (s *Server) ListReplies(c *fiber.Ctx) error {
	comments, err := s.commentService.ListReplies(c.UserContext(), paramID(c, "commentId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// UpdateComment handles PUT /comment/:commentId.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: paramID(c, "commentId"),
		Body:      bodyInput(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /comment/:commentId and echoes the deleted
// comment.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	comment, err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: paramID(c, "commentId"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}
