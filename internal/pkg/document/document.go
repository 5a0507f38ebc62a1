// Package document renders residency certificates as PDF and PNG.
package document

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/basicfont"
)

// Certificado holds the data printed on a residency certificate
type Certificado struct {
	NombreResidente string
	Departamento    string
	TipoRelacion    string
	FechaIngreso    time.Time
	FechaEmision    time.Time
	Folio           string
}

// GenerarPDF renders the certificate as a PDF document
func GenerarPDF(cert *Certificado) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 30, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, "Certificado de Residencia", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetDrawColor(60, 60, 120)
	pdf.SetLineWidth(0.8)
	pageWidth, _ := pdf.GetPageSize()
	pdf.Line(25, pdf.GetY(), pageWidth-25, pdf.GetY())
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 7, fmt.Sprintf(
		"La administración del edificio certifica que %s reside en el departamento %s en calidad de %s desde el %s.",
		cert.NombreResidente,
		cert.Departamento,
		cert.TipoRelacion,
		cert.FechaIngreso.Format("02/01/2006"),
	), "", "L", false)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Folio: %s", cert.Folio), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Fecha de emisión: %s", cert.FechaEmision.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(20)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, "_________________________", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Administración del Edificio", "", 1, "C", false, 0, "")

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("error al generar el PDF: %w", err)
	}
	return buffer.Bytes(), nil
}

// GenerarPreviewPNG renders a square preview image used as the NFT asset
func GenerarPreviewPNG(cert *Certificado) ([]byte, error) {
	const size = 600
	dc := gg.NewContext(size, size)

	dc.SetColor(color.RGBA{R: 24, G: 28, B: 48, A: 255})
	dc.Clear()

	dc.SetColor(color.RGBA{R: 96, G: 112, B: 200, A: 255})
	dc.SetLineWidth(6)
	dc.DrawRectangle(20, 20, size-40, size-40)
	dc.Stroke()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(color.White)

	lines := []string{
		"CERTIFICADO DE RESIDENCIA",
		"",
		cert.NombreResidente,
		"Departamento " + cert.Departamento,
		cert.TipoRelacion,
		"",
		"Desde " + cert.FechaIngreso.Format("02/01/2006"),
		"Folio " + cert.Folio,
	}

	y := float64(size)/2 - float64(len(lines))*12
	for _, line := range lines {
		dc.DrawStringAnchored(line, size/2, y, 0.5, 0.5)
		y += 24
	}

	var buffer bytes.Buffer
	if err := dc.EncodePNG(&buffer); err != nil {
		return nil, fmt.Errorf("error al generar el PNG: %w", err)
	}
	return buffer.Bytes(), nil
}
