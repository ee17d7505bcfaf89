package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// CatalogHandler expone el CRUD HTTP de una entidad de catálogo sobre el caso
// de uso genérico. Req es el DTO de entrada y Resp el de salida; decode arma o
// actualiza la entidad desde el request y encode la mapea a la respuesta.
type CatalogHandler[T any, PT usecase.CatalogPtr[T], Req any, Resp any] struct {
	uc     *usecase.CatalogUseCase[T, PT]
	decode func(in Req, e PT) error
	encode func(e PT) Resp
}

// Create crea la entidad (auditado).
func (h *CatalogHandler[T, PT, Req, Resp]) Create(c *fiber.Ctx) error {
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var e T
	if err := h.decode(in, PT(&e)); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Create(c.Context(), PT(&e), actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.encode(PT(&e)))
}

// GetByID obtiene la entidad por ID.
func (h *CatalogHandler[T, PT, Req, Resp]) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	e, err := h.uc.GetByID(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	if e == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	return c.JSON(h.encode(e))
}

// List lista entidades paginadas.
func (h *CatalogHandler[T, PT, Req, Resp]) List(c *fiber.Ctx) error {
	var pr dto.PageRequest
	if err := c.QueryParser(&pr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	pr.DefaultPage()
	items, total, err := h.uc.List(c.Context(), pr.PageSize, (pr.Page-1)*pr.PageSize)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]Resp, 0, len(items))
	for _, e := range items {
		out = append(out, h.encode(PT(e)))
	}
	totalPages := total / int64(pr.PageSize)
	if total%int64(pr.PageSize) != 0 {
		totalPages++
	}
	return c.JSON(fiber.Map{
		"items": out,
		"page": dto.PageResponse{
			Page:       pr.Page,
			PageSize:   pr.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// Update actualiza la entidad (auditado con snapshots antes/después).
func (h *CatalogHandler[T, PT, Req, Resp]) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	e, err := h.uc.Update(c.Context(), int64(id), func(e PT) error {
		return h.decode(in, e)
	}, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.encode(e))
}

// Delete borra la entidad (auditado con el último snapshot).
func (h *CatalogHandler[T, PT, Req, Resp]) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), int64(id), actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CategoryHandler alias concreto para el router.
type CategoryHandler = CatalogHandler[entity.Category, *entity.Category, dto.CategoryRequest, dto.CategoryResponse]

// LocationHandler alias concreto para el router.
type LocationHandler = CatalogHandler[entity.Location, *entity.Location, dto.LocationRequest, dto.LocationResponse]

// SupplierHandler alias concreto para el router.
type SupplierHandler = CatalogHandler[entity.Supplier, *entity.Supplier, dto.SupplierRequest, dto.SupplierResponse]

// NewCategoryHandler construye el handler de categorías.
func NewCategoryHandler(uc *usecase.CatalogUseCase[entity.Category, *entity.Category]) *CategoryHandler {
	return &CategoryHandler{
		uc: uc,
		decode: func(in dto.CategoryRequest, e *entity.Category) error {
			if in.Name == "" {
				return domain.ErrInvalidInput
			}
			e.Name = in.Name
			e.Description = in.Description
			return nil
		},
		encode: dto.ToCategoryResponse,
	}
}

// NewLocationHandler construye el handler de ubicaciones.
func NewLocationHandler(uc *usecase.CatalogUseCase[entity.Location, *entity.Location]) *LocationHandler {
	return &LocationHandler{
		uc: uc,
		decode: func(in dto.LocationRequest, e *entity.Location) error {
			if in.Name == "" {
				return domain.ErrInvalidInput
			}
			e.Name = in.Name
			e.Description = in.Description
			e.Warehouse = in.Warehouse
			return nil
		},
		encode: dto.ToLocationResponse,
	}
}

// NewSupplierHandler construye el handler de proveedores.
func NewSupplierHandler(uc *usecase.CatalogUseCase[entity.Supplier, *entity.Supplier]) *SupplierHandler {
	return &SupplierHandler{
		uc: uc,
		decode: func(in dto.SupplierRequest, e *entity.Supplier) error {
			if in.Name == "" {
				return domain.ErrInvalidInput
			}
			e.Name = in.Name
			e.ContactName = in.ContactName
			e.Email = in.Email
			e.Phone = in.Phone
			e.Address = in.Address
			return nil
		},
		encode: dto.ToSupplierResponse,
	}
}
