package handlers

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ReporteHandler handles administrative report exports
type ReporteHandler struct {
	pagoService *services.PagoService
}

// NewReporteHandler creates a new reporte handler
func NewReporteHandler(pagoService *services.PagoService) *ReporteHandler {
	return &ReporteHandler{pagoService: pagoService}
}

// ExportPagos exports the pagos of one month as an Excel workbook
// @Summary Export monthly payments to Excel
// @Tags Reportes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param anio query int true "Year"
// @Param mes query int true "Month (1-12)"
// @Success 200 {file} binary
// @Failure 400 {object} response.Response
// @Router /reportes/pagos/export [get]
func (h *ReporteHandler) ExportPagos(c *fiber.Ctx) error {
	now := time.Now()
	anio, _ := strconv.Atoi(c.Query("anio", strconv.Itoa(now.Year())))
	mes, _ := strconv.Atoi(c.Query("mes", strconv.Itoa(int(now.Month()))))
	if mes < 1 || mes > 12 {
		return response.BadRequest(c, "Mes inválido")
	}

	pagos, err := h.pagoService.ListByPeriodo(c.Context(), anio, time.Month(mes))
	if err != nil {
		return response.InternalServerError(c, "Failed to export pagos")
	}

	f := excelize.NewFile()
	sheet := "Pagos"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return response.InternalServerError(c, "Failed to build workbook")
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to build workbook")
	}

	headers := []string{"ID", "Residente", "Tipo", "Monto", "Estado", "Método", "Vencimiento", "Fecha de pago", "Descripción"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return response.InternalServerError(c, "Failed to build workbook")
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return response.InternalServerError(c, "Failed to build workbook")
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return response.InternalServerError(c, "Failed to build workbook")
		}
	}

	for i, pago := range pagos {
		row := i + 2

		residente := ""
		if pago.Residente != nil && pago.Residente.Usuario != nil {
			residente = pago.Residente.Usuario.Nombre + " " + pago.Residente.Usuario.Apellido
		}
		fechaPago := ""
		if pago.FechaPago != nil {
			fechaPago = pago.FechaPago.Format("2006-01-02")
		}

		values := []interface{}{
			pago.ID,
			residente,
			pago.TipoPago,
			pago.Monto,
			pago.Estado,
			pago.MetodoPago,
			pago.FechaVencimiento.Format("2006-01-02"),
			fechaPago,
			pago.Descripcion,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return response.InternalServerError(c, "Failed to build workbook")
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return response.InternalServerError(c, "Failed to build workbook")
			}
		}
	}

	widths := []float64{8, 30, 14, 12, 12, 14, 14, 14, 40}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, col, col, width)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return response.InternalServerError(c, "Failed to write workbook")
	}

	filename := fmt.Sprintf("pagos_%04d_%02d.xlsx", anio, mes)
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
