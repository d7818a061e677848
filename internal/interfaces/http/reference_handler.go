package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sujit-maker/move-sub001/internal/application/dto"
)

// ReferenceReader catálogos de puertos y empresas.
type ReferenceReader interface {
	ListPorts(ctx context.Context, limit, offset int) (*dto.PortListResponse, error)
	ListAddressBook(ctx context.Context, businessType string, portID *int64) ([]dto.AddressBookResponse, error)
}

// ReferenceHandler catálogos de solo lectura para armar las opciones del operador.
type ReferenceHandler struct {
	uc ReferenceReader
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc ReferenceReader) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// ListPorts godoc
// @Summary      Listar puertos
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.PortListResponse
// @Router       /api/ports [get]
func (h *ReferenceHandler) ListPorts(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	page.Normalize()
	out, err := h.uc.ListPorts(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListAddressBook godoc
// @Summary      Empresas por tipo de negocio
// @Description  Opciones de carrier, depósito o terminal; port_id restringe a empresas que operan en ese puerto.
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Param        business_type  query  string  true   "Carrier, Depot Terminal, CY Terminal"
// @Param        port_id        query  int     false  "Puerto"
// @Success      200  {array}   dto.AddressBookResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/address-book [get]
func (h *ReferenceHandler) ListAddressBook(c *fiber.Ctx) error {
	var portID *int64
	if raw := c.Query("port_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "port_id inválido"})
		}
		portID = &id
	}
	out, err := h.uc.ListAddressBook(c.UserContext(), c.Query("business_type"), portID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
