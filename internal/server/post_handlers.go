package server

import (
	"strings"

	"github.com/lluisEvan/ProjetoAppFiscal/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts (multipart: image + caption/location/category)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An image is required"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer src.Close()

	imageURL, err := s.store.Save(c.UserContext(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid image upload"))
	}

	post := &models.Post{
		UserID:   userID,
		Caption:  strings.TrimSpace(c.FormValue("caption")),
		Location: strings.TrimSpace(c.FormValue("location")),
		Category: strings.TrimSpace(c.FormValue("category")),
		ImageURL: imageURL,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return respondRepoError(c, err)
	}

	created, err := s.postRepo.GetByID(c.Context(), post.ID, userID)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    created,
	})
}

// GetPosts handles GET /api/posts — the paginated feed, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	userID := currentUserID(c)
	p := parsePagination(c)

	posts, err := s.postRepo.List(c.Context(), p.Limit, p.Offset, userID)
	if err != nil {
		return respondRepoError(c, err)
	}

	total, err := s.postRepo.Count(c.Context())
	if err != nil {
		return respondRepoError(c, err)
	}

	totalPages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPages++
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts":       posts,
		"currentPage": p.Page,
		"totalPages":  totalPages,
		"totalPosts":  total,
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), postID, currentUserID(c))
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"post": post,
	})
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c)

	posts, err := s.postRepo.GetByUserID(c.Context(), targetID, p.Limit, p.Offset, currentUserID(c))
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts": posts,
	})
}

// LikePost handles POST /api/posts/:id/like — a toggle. Liking an already
// liked post removes the like. Returns the updated post either way.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	// 404 before touching likes
	if _, err := s.postRepo.GetByID(c.Context(), postID, userID); err != nil {
		return respondRepoError(c, err)
	}

	liked, err := s.postRepo.IsLiked(c.Context(), userID, postID)
	if err != nil {
		return respondRepoError(c, err)
	}

	if liked {
		err = s.postRepo.Unlike(c.Context(), userID, postID)
	} else {
		err = s.postRepo.Like(c.Context(), userID, postID)
	}
	if err != nil {
		return respondRepoError(c, err)
	}

	post, err := s.postRepo.GetByID(c.Context(), postID, userID)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"post": post,
	})
}

// DeletePost handles DELETE /api/posts/:id — owner only.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	post, err := s.postRepo.GetByID(c.Context(), postID, userID)
	if err != nil {
		return respondRepoError(c, err)
	}
	if post.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			&models.AppError{Code: "FORBIDDEN", Message: "You can only delete your own posts"})
	}

	if err := s.postRepo.Delete(c.Context(), postID); err != nil {
		return respondRepoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
