package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
)

// BulkTransitioner aplica un estado destino a un lote de contenedores.
type BulkTransitioner interface {
	ExecuteFromRequest(ctx context.Context, userID string, in dto.BulkTransitionRequest) (*dto.BulkTransitionResponse, error)
}

// LedgerReader consultas de solo lectura sobre el libro.
type LedgerReader interface {
	History(ctx context.Context, containerNumber string) (*dto.MovementHistoryResponse, error)
	Latest(ctx context.Context, status, jobNumber string, limit, offset int) (*dto.MovementListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.MovementRecordResponse, error)
	AllowedTransitions(status string) dto.TransitionsResponse
}

// DateCorrector corrige la fecha de una fila existente.
type DateCorrector interface {
	CorrectDateFromRequest(ctx context.Context, userID string, id int64, in dto.CorrectDateRequest) (*dto.DateCorrectionResponse, error)
}

// MovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type MovementHandler struct {
	bulk   BulkTransitioner
	ledger LedgerReader
	dates  DateCorrector
}

// NewMovementHandler construye el handler.
func NewMovementHandler(bulk BulkTransitioner, ledger LedgerReader, dates DateCorrector) *MovementHandler {
	return &MovementHandler{bulk: bulk, ledger: ledger, dates: dates}
}

// BulkTransition godoc
// @Summary      Actualización masiva de estado
// @Description  Agrega una fila nueva por contenedor seleccionado. Todos deben compartir estado actual y job.
//
//	Si batch_id ya fue aplicado se devuelve el lote guardado sin escribir (replayed=true).
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkTransitionRequest  true  "ids, new_status, job_number, date, remarks y overrides opcionales"
// @Success      201   {object}  dto.BulkTransitionResponse
// @Success      200   {object}  dto.BulkTransitionResponse  "replay de un batch_id existente"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements/bulk-transition [post]
func (h *MovementHandler) BulkTransition(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.BulkTransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.bulk.ExecuteFromRequest(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	if out.Replayed {
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Latest godoc
// @Summary      Estado actual de cada contenedor
// @Description  Una fila por contenedor (la de fecha más reciente; empate por ID mayor).
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "Filtrar por estado actual"
// @Param        job_number  query  string  false  "Filtrar por número de job"
// @Param        limit       query  int     false  "Máximo de filas (default 20, máx 100)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/latest [get]
func (h *MovementHandler) Latest(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	page.Normalize()
	out, err := h.ledger.Latest(c.UserContext(), c.Query("status"), c.Query("job_number"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de un contenedor
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        container_number  query  string  true  "Número de contenedor (ej. MSCU1234565)"
// @Success      200  {object}  dto.MovementHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/history [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	out, err := h.ledger.History(c.UserContext(), c.Query("container_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener fila del libro
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la fila"
// @Success      200  {object}  dto.MovementRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.ledger.GetByID(c.UserContext(), int64(id))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fila no encontrada"})
	}
	return c.JSON(out)
}

// CorrectDate godoc
// @Summary      Corregir la fecha de una fila
// @Description  Única edición permitida sobre el libro. Si la nueva fecha cambia el estado actual
//
//	del contenedor, la respuesta lo indica con current_status_changed y warning.
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la fila"
// @Param        body  body  dto.CorrectDateRequest  true  "date (YYYY-MM-DD o RFC3339)"
// @Success      200   {object}  dto.DateCorrectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/date [patch]
func (h *MovementHandler) CorrectDate(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.CorrectDateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.dates.CorrectDateFromRequest(c.UserContext(), userID, int64(id), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transitions godoc
// @Summary      Estados permitidos desde un estado
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  true  "Estado actual"
// @Success      200  {object}  dto.TransitionsResponse
// @Router       /api/movements/transitions [get]
func (h *MovementHandler) Transitions(c *fiber.Ctx) error {
	return c.JSON(h.ledger.AllowedTransitions(c.Query("status")))
}
