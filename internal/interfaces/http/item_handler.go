package http

import (
	"errors"

	"github.com/gaigek/mrp-system/internal/application/dto"
	"github.com/gaigek/mrp-system/internal/application/usecase"
	"github.com/gaigek/mrp-system/internal/application/worklist"
	"github.com/gaigek/mrp-system/internal/domain"
	"github.com/gaigek/mrp-system/internal/domain/planning"
	"github.com/gofiber/fiber/v2"
)

// ItemHandler maneja las consultas de artículos, recomendaciones y recepción
// de POs.
type ItemHandler struct {
	items     *usecase.ItemUseCase
	recommend *usecase.RecommendUseCase
	worklist  *worklist.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(items *usecase.ItemUseCase, recommend *usecase.RecommendUseCase, wl *worklist.UseCase) *ItemHandler {
	return &ItemHandler{items: items, recommend: recommend, worklist: wl}
}

// List godoc
// @Summary      Listar artículos del snapshot
// @Tags         items
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría ('all' = todas)"
// @Param        vendor    query  string  false  "Filtrar por proveedor ('all' = todos)"
// @Param        search    query  string  false  "Búsqueda por código de artículo (substring)"
// @Param        filter    query  string  false  "all | negative | needsOrder"
// @Success      200  {array}  dto.ItemSummaryDTO
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	filter := usecase.ItemFilter{
		Category: c.Query("category"),
		Vendor:   c.Query("vendor"),
		Search:   c.Query("search"),
		Mode:     c.Query("filter", "all"),
	}
	return c.JSON(h.items.List(filter))
}

// Detail godoc
// @Summary      Detalle de un artículo
// @Description  Libro mayor completo más la proyección de balance recalculada
//
//	en el modo de agrupación pedido.
//
// @Tags         items
// @Produce      json
// @Param        code     path   string  true   "Código del artículo"
// @Param        groupBy  query  string  false  "week (default) | month"
// @Success      200  {object}  dto.ItemDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{code} [get]
func (h *ItemHandler) Detail(c *fiber.Ctx) error {
	code := c.Params("code")
	groupBy := planning.ParseGroupBy(c.Query("groupBy"))

	detail, err := h.items.Detail(code, groupBy)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(detail)
}

// Recommend godoc
// @Summary      Recomendaciones de reorden
// @Description  Simula el balance del artículo (incluyendo POs próximos y
//
//	órdenes hipotéticas) y devuelve sugerencias de compra consolidadas por
//	semana o mes, con la fecha límite de pedido según el lead time.
//
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        code  path  string                true  "Código del artículo"
// @Param        body  body  dto.RecommendRequest  true  "group_by, lead_time_weeks, hypothetical_orders"
// @Success      200  {object}  dto.RecommendResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{code}/recommendations [post]
func (h *ItemHandler) Recommend(c *fiber.Ctx) error {
	code := c.Params("code")
	var in dto.RecommendRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}

	resp, err := h.recommend.Recommend(code, in)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// Receive godoc
// @Summary      Recibir una orden de compra
// @Description  Marca un PO del artículo como recibido: suma su cantidad al
//
//	balance inicial, elimina la transacción del libro mayor y recalcula la
//	proyección. El PO se identifica por referencia o por fecha+cantidad.
//
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        code  path  string                true  "Código del artículo"
// @Param        body  body  dto.ReceivePORequest  true  "reference, o due_date + quantity"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{code}/receive [post]
func (h *ItemHandler) Receive(c *fiber.Ctx) error {
	code := c.Params("code")
	var in dto.ReceivePORequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	if err := h.worklist.Receive(code, in); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de compra no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "orden de compra recibida"})
}
