package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
)

// JobLedger alta, baja y borrado de contenedores de un job en el libro.
type JobLedger interface {
	Allot(ctx context.Context, userID string, in dto.AllotContainersRequest) (*dto.JobLedgerResponse, error)
	Detach(ctx context.Context, userID string, in dto.DetachContainersRequest) (*dto.JobLedgerResponse, error)
	Purge(ctx context.Context, userID, jobNumber string) (*dto.PurgeJobResponse, error)
}

// JobLookup búsqueda de jobs por número.
type JobLookup interface {
	LookupJob(ctx context.Context, jobNumber string) (*dto.JobResponse, error)
}

// JobHandler maneja las operaciones del libro ligadas a un job (protegido).
// El número de job lleva "/" (RST/AAA/25/00001), por eso viaja en body o query, nunca en el path.
type JobHandler struct {
	jobs   JobLedger
	lookup JobLookup
}

// NewJobHandler construye el handler.
func NewJobHandler(jobs JobLedger, lookup JobLookup) *JobHandler {
	return &JobHandler{jobs: jobs, lookup: lookup}
}

// Allot godoc
// @Summary      Asignar contenedores a un job
// @Description  Agrega una fila ALLOTTED por contenedor. Cada contenedor debe estar sin historial o AVAILABLE.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllotContainersRequest  true  "job_number, inventory_ids, date"
// @Success      201   {object}  dto.JobLedgerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/jobs/containers [post]
func (h *JobHandler) Allot(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.AllotContainersRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.jobs.Allot(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Detach godoc
// @Summary      Quitar contenedores de un job
// @Description  Agrega una fila AVAILABLE sin vínculo al job; el número de job queda como referencia.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DetachContainersRequest  true  "job_number, inventory_ids, date, remarks"
// @Success      201   {object}  dto.JobLedgerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/jobs/containers/detach [post]
func (h *JobHandler) Detach(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.DetachContainersRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.jobs.Detach(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Purge godoc
// @Summary      Borrar el libro de un job
// @Description  Elimina todas las filas con ese número de job ya eliminado. Solo admin.
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        job_number  query  string  true  "Número de job"
// @Success      200  {object}  dto.PurgeJobResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/jobs/movements [delete]
func (h *JobHandler) Purge(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.jobs.Purge(c.UserContext(), userID, c.Query("job_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Lookup godoc
// @Summary      Buscar job por número
// @Description  Devuelve POL, POD, carrier y depósito de devolución usados para inferir ubicaciones.
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        job_number  query  string  true  "Número de job"
// @Success      200  {object}  dto.JobResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/lookup [get]
func (h *JobHandler) Lookup(c *fiber.Ctx) error {
	jobNumber := c.Query("job_number")
	if jobNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "job_number requerido"})
	}
	out, err := h.lookup.LookupJob(c.UserContext(), jobNumber)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_JOB", Message: "job no encontrado"})
	}
	return c.JSON(out)
}
