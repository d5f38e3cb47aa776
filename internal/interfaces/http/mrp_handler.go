package http

import (
	"errors"
	"io"
	"strings"

	"github.com/gaigek/mrp-system/internal/application/dto"
	"github.com/gaigek/mrp-system/internal/application/ingest"
	"github.com/gaigek/mrp-system/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// MRPHandler maneja la ingesta del snapshot MRP.
type MRPHandler struct {
	ingest *ingest.UseCase
}

// NewMRPHandler construye el handler.
func NewMRPHandler(uc *ingest.UseCase) *MRPHandler {
	return &MRPHandler{ingest: uc}
}

// Ingest godoc
// @Summary      Ingerir snapshot MRP
// @Description  Recibe el reporte de transacciones delimitado (cuerpo crudo o
//
//	multipart "file") y reemplaza el snapshot completo en memoria. Una ingesta
//	fallida deja el estado previo intacto.
//
// @Tags         mrp
// @Accept       plain
// @Produce      json
// @Success      200  {object}  dto.IngestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/mrp/ingest [post]
func (h *MRPHandler) Ingest(c *fiber.Ctx) error {
	raw, err := h.rawSnapshot(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	if strings.TrimSpace(raw) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_BODY", Message: "el snapshot está vacío"})
	}

	result, err := h.ingest.Ingest(raw)
	if err != nil {
		var ingErr *domain.IngestionError
		if errors.As(err, &ingErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_SNAPSHOT", Message: ingErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.JSON(dto.IngestResponse{
		Items:         result.Items,
		Categories:    result.Categories,
		Vendors:       result.Vendors,
		RowsSkipped:   result.RowsSkipped,
		DateCoercions: result.DateCoercions,
	})
}

// rawSnapshot extrae el contenido: multipart "file" si viene, si no el
// cuerpo crudo.
func (h *MRPHandler) rawSnapshot(c *fiber.Ctx) (string, error) {
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return string(c.Body()), nil
}
