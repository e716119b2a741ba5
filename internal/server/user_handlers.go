package server

import (
	"tontinehub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UserDTO is the API response model for user endpoints.
type UserDTO struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"created_at"`
}

func toUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt.UTC().Format(apiTimeFormat),
	}
}

// GetMyProfile handles GET /api/users/me
// @Summary Get current user
// @Description Fetch the authenticated user's profile.
// @Tags users
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	// GetByID reports a missing user as a NOT_FOUND AppError, never
	// as a nil user.
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(toUserDTO(*user))
}

// MembershipDTO is the API response model for a user's own memberships.
type MembershipDTO struct {
	ID          uint   `json:"id"`
	TontineID   uint   `json:"tontine_id"`
	TontineName string `json:"tontine_name,omitempty"`
	Position    int    `json:"position"`
	JoinedAt    string `json:"joined_at"`
}

// GetMyMemberships handles GET /api/users/me/memberships
// @Summary List my memberships
// @Description List the positions the authenticated user holds, oldest first.
// @Tags users
// @Produce json
// @Success 200 {array} MembershipDTO
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me/memberships [get]
func (s *Server) GetMyMemberships(c *fiber.Ctx) error {
	userID := currentUserID(c)

	memberships, err := s.membershipService.ListByUser(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	resp := make([]MembershipDTO, 0, len(memberships))
	for _, m := range memberships {
		dto := MembershipDTO{
			ID:        m.ID,
			TontineID: m.TontineID,
			Position:  m.Position,
			JoinedAt:  m.CreatedAt.UTC().Format(apiTimeFormat),
		}
		if m.Tontine != nil {
			dto.TontineName = m.Tontine.Name
		}
		resp = append(resp, dto)
	}
	return c.JSON(resp)
}
