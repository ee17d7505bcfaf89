package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
)

// MovementHandler maneja las peticiones HTTP del kardex (protegido).
type MovementHandler struct {
	register *ledger.RegisterMovementUseCase
	queries  *ledger.MovementQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *ledger.RegisterMovementUseCase, queries *ledger.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{register: register, queries: queries}
}

// Register godoc
// @Summary      Registrar movimiento de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (IN|OUT|ADJUSTMENT), quantity, previous_quantity, new_quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.register.Register(c.Context(), ledger.MovementInput{
		ProductID:        in.ProductID,
		Type:             in.Type,
		Quantity:         in.Quantity,
		PreviousQuantity: in.PreviousQuantity,
		NewQuantity:      in.NewQuantity,
		Reason:           in.Reason,
		UserID:           GetUserID(c),
	}, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	mov, err := h.queries.GetByID(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	if mov == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(dto.ToMovementResponse(mov))
}

// ListByProduct godoc
// @Summary      Kardex de un producto (paginado, más reciente primero)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id         path   int  true   "ID del producto"
// @Param        page       query  int  false  "Página 1-based"
// @Param        page_size  query  int  false  "Tamaño de página (tope 100)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *MovementHandler) ListByProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var pr dto.PageRequest
	if err := c.QueryParser(&pr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	pr.DefaultPage()
	page, err := h.queries.ListByProduct(c.Context(), int64(id), pr.Page, pr.PageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movementPage(page))
}

// ListByUser godoc
// @Summary      Movimientos registrados por un usuario (paginado)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id         path   int  true   "ID del usuario"
// @Param        page       query  int  false  "Página 1-based"
// @Param        page_size  query  int  false  "Tamaño de página (tope 100)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/users/{id}/movements [get]
func (h *MovementHandler) ListByUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var pr dto.PageRequest
	if err := c.QueryParser(&pr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	pr.DefaultPage()
	page, err := h.queries.ListByUser(c.Context(), int64(id), pr.Page, pr.PageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movementPage(page))
}

// ListRecent godoc
// @Summary      Últimos movimientos del inventario
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad (default 10)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/recent [get]
func (h *MovementHandler) ListRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	items, err := h.queries.ListRecent(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementList(items))
}

// ListByDateRange godoc
// @Summary      Movimientos en un rango de fechas
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "RFC 3339"
// @Param        to    query  string  true  "RFC 3339"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) ListByDateRange(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
	}
	items, err := h.queries.ListByDateRange(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementList(items))
}

// Stats godoc
// @Summary      Agregados del kardex de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MovementStatsResponse
// @Router       /api/products/{id}/movements/stats [get]
func (h *MovementHandler) Stats(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	stats, err := h.queries.StatsForProduct(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementStats(int64(id), stats))
}

func movementPage(p *ledger.Page) dto.MovementListResponse {
	return dto.MovementListResponse{
		Items: dto.ToMovementList(p.Items),
		Page: dto.PageResponse{
			Page:       p.Page,
			PageSize:   p.PageSize,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}
}
