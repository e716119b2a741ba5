package server

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"tontinehub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		message := fmt.Sprintf("Invalid %s", humanizeParam(param))
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(message))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam turns a camelCase route parameter name into words for
// error messages ("id" -> "ID", "tontineId" -> "tontine ID").
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}

	var b strings.Builder
	for i, r := range param {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	out := b.String()
	if strings.HasSuffix(out, " id") {
		out = strings.TrimSuffix(out, " id") + " ID"
	}
	return out
}

// currentUserID reads the authenticated user ID placed in locals by
// AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// respondAppError maps an application error onto its HTTP status.
func respondAppError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}
