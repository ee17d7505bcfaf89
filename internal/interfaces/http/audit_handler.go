package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/audit"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// AuditHandler maneja las peticiones HTTP del audit trail (protegido, rol
// auditor o admin; la poda es solo admin).
type AuditHandler struct {
	uc *audit.QueryUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.QueryUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Find godoc
// @Summary      Buscar entradas del audit trail
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        table_name  query  string  false  "Tabla lógica"
// @Param        record_id   query  int     false  "ID del registro"
// @Param        action      query  string  false  "CREATE | UPDATE | DELETE"
// @Param        user_id     query  int     false  "Actor"
// @Param        ip_address  query  string  false  "IP del actor"
// @Param        from        query  string  false  "RFC 3339"
// @Param        to          query  string  false  "RFC 3339"
// @Param        page        query  int     false  "Página 1-based"
// @Param        page_size   query  int     false  "Tamaño de página (tope 100)"
// @Success      200  {object}  dto.AuditLogListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) Find(c *fiber.Ctx) error {
	filter, pr, err := parseAuditFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	items, total, err := h.uc.Find(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	totalPages := total / int64(pr.PageSize)
	if total%int64(pr.PageSize) != 0 {
		totalPages++
	}
	return c.JSON(dto.AuditLogListResponse{
		Items: dto.ToAuditLogList(items),
		Page: dto.PageResponse{
			Page:       pr.Page,
			PageSize:   pr.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// GetByID godoc
// @Summary      Obtener entrada por ID
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.AuditLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audit-logs/{id} [get]
func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	log, err := h.uc.GetByID(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	if log == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.JSON(dto.ToAuditLogResponse(log))
}

// History godoc
// @Summary      Historia completa de un registro
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        table  path  string  true  "Tabla lógica"
// @Param        id     path  int     true  "ID del registro"
// @Success      200  {array}  dto.AuditLogResponse
// @Router       /api/audit-logs/record/{table}/{id} [get]
func (h *AuditHandler) History(c *fiber.Ctx) error {
	table := c.Params("table")
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 || table == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tabla o id inválidos"})
	}
	items, err := h.uc.FindByRecord(c.Context(), table, int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAuditLogList(items))
}

// Recent godoc
// @Summary      Últimas entradas del audit trail
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad (default 10)"
// @Success      200  {array}  dto.AuditLogResponse
// @Router       /api/audit-logs/recent [get]
func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	items, err := h.uc.FindRecent(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAuditLogList(items))
}

// Stats godoc
// @Summary      Agregados del audit trail
// @Description  Sin filtros devuelve los agregados globales; table_name o
//
//	user_id restringen el subconjunto.
//
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        table_name  query  string  false  "Tabla lógica"
// @Param        user_id     query  int     false  "Actor"
// @Success      200  {object}  dto.AuditStatsResponse
// @Router       /api/audit-logs/stats [get]
func (h *AuditHandler) Stats(c *fiber.Ctx) error {
	var (
		stats *repository.AuditStats
		err   error
	)
	switch {
	case c.Query("table_name") != "":
		stats, err = h.uc.StatsForTable(c.Context(), c.Query("table_name"))
	case c.QueryInt("user_id") > 0:
		stats, err = h.uc.StatsForActor(c.Context(), int64(c.QueryInt("user_id")))
	default:
		stats, err = h.uc.StatsOverall(c.Context())
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAuditStats(stats))
}

// MarkReviewed godoc
// @Summary      Marcar entrada como revisada
// @Description  Idempotente. La transición es one-way: no hay des-revisar.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.AuditLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audit-logs/{id}/review [patch]
func (h *AuditHandler) MarkReviewed(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	log, err := h.uc.MarkReviewed(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAuditLogResponse(log))
}

// Prune godoc
// @Summary      Poda de retención del audit trail (solo admin)
// @Description  Borra las entradas más viejas que older_than_days y deja una
//
//	meta-entrada en el propio trail con el conteo exacto.
//
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        older_than_days  query  int  true  "Edad mínima en días"
// @Success      200  {object}  dto.PruneResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit-logs [delete]
func (h *AuditHandler) Prune(c *fiber.Ctx) error {
	days := c.QueryInt("older_than_days")
	if days <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "older_than_days debe ser > 0"})
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := h.uc.PruneOlderThan(c.Context(), cutoff, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PruneResponse{Deleted: deleted, Cutoff: cutoff})
}

// parseAuditFilter arma el filtro de búsqueda desde la query string.
func parseAuditFilter(c *fiber.Ctx) (repository.AuditLogFilter, dto.PageRequest, error) {
	var pr dto.PageRequest
	if err := c.QueryParser(&pr); err != nil {
		return repository.AuditLogFilter{}, pr, err
	}
	pr.DefaultPage()

	filter := repository.AuditLogFilter{
		TableName: c.Query("table_name"),
		Action:    c.Query("action"),
		IPAddress: c.Query("ip_address"),
		Limit:     pr.PageSize,
		Offset:    (pr.Page - 1) * pr.PageSize,
	}
	if v := c.QueryInt("record_id"); v > 0 {
		id := int64(v)
		filter.RecordID = &id
	}
	if v := c.QueryInt("user_id"); v > 0 {
		id := int64(v)
		filter.UserID = &id
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, pr, err
		}
		filter.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, pr, err
		}
		filter.To = &t
	}
	return filter, pr, nil
}
