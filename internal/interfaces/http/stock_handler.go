package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atokurn/financex-sub001/internal/application/dto"
	"github.com/atokurn/financex-sub001/internal/application/ledger"
)

// StockHandler maneja los movimientos de stock y el historial (protegido).
type StockHandler struct {
	ledgerUC  *ledger.StockLedgerUseCase
	historyUC *ledger.HistoryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledgerUC *ledger.StockLedgerUseCase, historyUC *ledger.HistoryUseCase) *StockHandler {
	return &StockHandler{ledgerUC: ledgerUC, historyUC: historyUC}
}

// ApplyMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  material_id XOR product_id. type: in | out | adjustment. La fila del
//
//	historial y el nuevo stock se escriben en la misma transacción.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "Movimiento a aplicar"
// @Success      201   {object}  dto.StockHistoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) ApplyMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledgerUC.ApplyFromRequest(c.Context(), userID, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListHistory godoc
// @Summary      Listar historial de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  string  false  "Filtrar por material"
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        limit        query  int     false  "Tamaño de página (default 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockHistoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/history [get]
func (h *StockHandler) ListHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.historyUC.List(c.Context(), c.Query("material_id"), c.Query("product_id"), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ExportHistoryCSV godoc
// @Summary      Exportar historial de stock a CSV
// @Tags         stock
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string  "CSV del historial completo"
// @Router       /api/stock/history/export [get]
func (h *StockHandler) ExportHistoryCSV(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock_history.csv"`)
	if err := h.historyUC.ExportCSV(c.Context(), c.Response().BodyWriter()); err != nil {
		return domainError(c, err)
	}
	return nil
}
