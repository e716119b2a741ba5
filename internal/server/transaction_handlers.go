package server

import (
	"tontinehub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TransactionDTO is the API response model for transaction history rows.
type TransactionDTO struct {
	ID        uint                     `json:"id"`
	TontineID uint                     `json:"tontine_id"`
	UserID    uint                     `json:"user_id"`
	Username  string                   `json:"username,omitempty"`
	Type      models.TransactionType   `json:"type"`
	Amount    int64                    `json:"amount"`
	Status    models.TransactionStatus `json:"status"`
	CreatedAt string                   `json:"created_at"`
}

func toTransactionDTO(t models.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:        t.ID,
		TontineID: t.TontineID,
		UserID:    t.UserID,
		Type:      t.Type,
		Amount:    t.Amount,
		Status:    t.Status,
		CreatedAt: t.CreatedAt.UTC().Format(apiTimeFormat),
	}
	if t.User != nil {
		dto.Username = t.User.Username
	}
	return dto
}

// GetTontineTransactions handles GET /api/tontines/:id/transactions
// @Summary List tontine transactions
// @Description List contribution and payout history for a tontine, newest first.
// @Tags tontines
// @Produce json
// @Param id path int true "Tontine ID"
// @Success 200 {array} TransactionDTO
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tontines/{id}/transactions [get]
func (s *Server) GetTontineTransactions(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.tontineService.GetByID(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}

	transactions, err := s.transactionRepo.ListByTontine(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}

	resp := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		resp = append(resp, toTransactionDTO(t))
	}
	return c.JSON(resp)
}
