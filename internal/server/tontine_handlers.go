package server

import (
	"tontinehub/internal/models"
	"tontinehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

const apiTimeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// TontineDTO is the API response model for tontine endpoints.
type TontineDTO struct {
	ID                 uint                    `json:"id"`
	Name               string                  `json:"name"`
	Description        string                  `json:"description"`
	StakeAmount        int64                   `json:"stake_amount"`
	MaxSubscriptions   int                     `json:"max_subscriptions"`
	Frequency          models.TontineFrequency `json:"frequency"`
	IsPrivate          bool                    `json:"is_private"`
	ModeratorID        uint                    `json:"moderator_id"`
	JackpotAmount      int64                   `json:"jackpot_amount"`
	MemberCount        int                     `json:"member_count"`
	IsFull             bool                    `json:"is_full"`
	AvailablePositions []int                   `json:"available_positions"`
	Participants       []ParticipantDTO        `json:"participants"`
	CreatedAt          string                  `json:"created_at"`
}

// ParticipantDTO is the API response model for one occupied position.
type ParticipantDTO struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	Position int    `json:"position"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	JoinedAt string `json:"joined_at"`
}

// ScheduleEntryDTO is the API response model for one schedule row.
type ScheduleEntryDTO struct {
	Position       int             `json:"position"`
	Participant    *ParticipantDTO `json:"participant"`
	CollectionDate string          `json:"collection_date"`
	IsComplete     bool            `json:"is_complete"`
	PayoutAmount   int64           `json:"payout_amount"`
}

func toParticipantDTO(m models.TontineMembership) ParticipantDTO {
	dto := ParticipantDTO{
		ID:       m.ID,
		UserID:   m.UserID,
		Position: m.Position,
		JoinedAt: m.CreatedAt.UTC().Format(apiTimeFormat),
	}
	if m.User != nil {
		dto.Username = m.User.Username
		dto.Avatar = m.User.Avatar
	}
	return dto
}

func toTontineDTO(t models.Tontine) TontineDTO {
	participants := make([]ParticipantDTO, 0, len(t.Memberships))
	for _, m := range t.SortedMemberships() {
		participants = append(participants, toParticipantDTO(m))
	}

	return TontineDTO{
		ID:                 t.ID,
		Name:               t.Name,
		Description:        t.Description,
		StakeAmount:        t.StakeAmount,
		MaxSubscriptions:   t.MaxSubscriptions,
		Frequency:          t.Frequency,
		IsPrivate:          t.IsPrivate,
		ModeratorID:        t.ModeratorID,
		JackpotAmount:      t.JackpotAmount(),
		MemberCount:        len(t.Memberships),
		IsFull:             t.IsFull(),
		AvailablePositions: t.AvailablePositions(),
		Participants:       participants,
		CreatedAt:          t.CreatedAt.UTC().Format(apiTimeFormat),
	}
}

// CreateTontine handles POST /api/tontines
// @Summary Create tontine
// @Description Create a new tontine moderated by the current user.
// @Tags tontines
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,stake_amount=int,max_subscriptions=int,frequency=string,is_private=bool} true "Tontine configuration"
// @Success 201 {object} TontineDTO
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tontines [post]
func (s *Server) CreateTontine(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Name             string                  `json:"name"`
		Description      string                  `json:"description"`
		StakeAmount      int64                   `json:"stake_amount"`
		MaxSubscriptions int                     `json:"max_subscriptions"`
		Frequency        models.TontineFrequency `json:"frequency"`
		IsPrivate        bool                    `json:"is_private"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tontine, err := s.tontineService.Create(c.Context(), service.CreateTontineInput{
		Name:             req.Name,
		Description:      req.Description,
		StakeAmount:      req.StakeAmount,
		MaxSubscriptions: req.MaxSubscriptions,
		Frequency:        req.Frequency,
		IsPrivate:        req.IsPrivate,
	}, userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTontineDTO(*tontine))
}

// GetTontines handles GET /api/tontines?category=...
// @Summary List tontines
// @Description List tontines by category for the current user: participating, available, or moderated.
// @Tags tontines
// @Produce json
// @Param category query string true "Category" Enums(participating, available, moderated)
// @Success 200 {array} TontineDTO
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tontines [get]
func (s *Server) GetTontines(c *fiber.Ctx) error {
	userID := currentUserID(c)

	category, ok := service.ParseTontineCategory(c.Query("category"))
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("category must be one of participating, available, or moderated"))
	}

	tontines, err := s.tontineService.List(c.Context(), category, userID)
	if err != nil {
		return respondAppError(c, err)
	}

	resp := make([]TontineDTO, 0, len(tontines))
	for _, t := range tontines {
		resp = append(resp, toTontineDTO(t))
	}
	return c.JSON(resp)
}

// GetTontine handles GET /api/tontines/:id
// @Summary Get tontine
// @Description Fetch tontine detail with its position-ordered participants.
// @Tags tontines
// @Produce json
// @Param id path int true "Tontine ID"
// @Success 200 {object} TontineDTO
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tontines/{id} [get]
func (s *Server) GetTontine(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tontine, err := s.tontineService.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(toTontineDTO(*tontine))
}

// JoinTontine handles POST /api/tontines/:id/join
// @Summary Join tontine
// @Description Claim a numbered position in a tontine.
// @Tags tontines
// @Accept json
// @Produce json
// @Param id path int true "Tontine ID"
// @Param request body object{position=int} true "Position to claim"
// @Success 201 {object} ParticipantDTO
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tontines/{id}/join [post]
func (s *Server) JoinTontine(c *fiber.Ctx) error {
	userID := currentUserID(c)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Position int `json:"position"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	membership, err := s.membershipService.Join(c.Context(), id, userID, req.Position)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toParticipantDTO(*membership))
}

// GetTontineSchedule handles GET /api/tontines/:id/schedule
// @Summary Get collection schedule
// @Description Derive the collection calendar for all positions of a tontine.
// @Tags tontines
// @Produce json
// @Param id path int true "Tontine ID"
// @Success 200 {array} ScheduleEntryDTO
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tontines/{id}/schedule [get]
func (s *Server) GetTontineSchedule(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entries, err := s.membershipService.Schedule(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	resp := make([]ScheduleEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dto := ScheduleEntryDTO{
			Position:       entry.Position,
			CollectionDate: entry.CollectionDate.UTC().Format(apiTimeFormat),
			IsComplete:     entry.IsComplete,
			PayoutAmount:   entry.PayoutAmount,
		}
		if entry.Member != nil {
			participant := toParticipantDTO(*entry.Member)
			dto.Participant = &participant
		}
		resp = append(resp, dto)
	}

	return c.JSON(resp)
}
