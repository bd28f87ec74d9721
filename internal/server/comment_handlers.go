package server

import (
	"strings"

	"github.com/lluisEvan/ProjetoAppFiscal/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment text is required"))
	}

	// 404 before writing anything
	if _, err := s.postRepo.GetByID(c.Context(), postID, userID); err != nil {
		return respondRepoError(c, err)
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   req.Text,
	}
	if err := s.commentRepo.Create(c.Context(), comment); err != nil {
		return respondRepoError(c, err)
	}

	created, err := s.commentRepo.GetByID(c.Context(), comment.ID)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment created successfully",
		"comment": created,
	})
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c)

	if _, err := s.postRepo.GetByID(c.Context(), postID, 0); err != nil {
		return respondRepoError(c, err)
	}

	comments, err := s.commentRepo.ListByPost(c.Context(), postID, p.Limit, p.Offset)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"comments": comments,
	})
}
