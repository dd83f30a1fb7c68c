/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package artifact

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/travelseal/travelseal/internal/domain/model"
	"github.com/travelseal/travelseal/internal/manifest"
)

// The printed document keeps the product's Spanish labels.
var luggageSizeLabels = map[string]string{
	"small":  "Pequeña",
	"medium": "Mediana",
	"large":  "Grande",
	"xlarge": "Extra Grande",
}

// PDF renders the certificate document: trip information, manifest
// summary, the item list, the hash in human-legible form, and the
// verification QR code. trip and qrPNG may be nil; the corresponding
// sections are skipped.
func (r *Renderer) PDF(cert *model.Certificate, snap *manifest.Snapshot, trip *model.Trip, qrPNG []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, tr("Manifiesto Certificado"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
	}
	line := func(s string) {
		pdf.CellFormat(0, 6, tr(s), "", 1, "L", false, 0, "")
	}

	section("Información del Viaje")
	line("Título: " + snap.TripTitle)
	line("Destino: " + snap.Destination)
	if trip != nil {
		line(fmt.Sprintf("Fechas: %s - %s", trip.StartDate, trip.EndDate))
	}
	line("Usuario: " + snap.UserName)
	pdf.Ln(4)

	section("Resumen del Manifiesto")
	line(fmt.Sprintf("Total de artículos: %d", cert.ItemCount))
	line("Valor total estimado: $" + formatValue(cert.TotalValue))
	pdf.Ln(4)

	section("Artículos")
	pdf.SetFont("Helvetica", "", 10)
	for i, it := range snap.Items {
		pdf.MultiCell(0, 5, tr(itemLine(i+1, it)), "", "L", false)
	}
	pdf.Ln(4)

	section("Verificación")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr("Hash SHA-256: "+cert.Hash), "", "L", false)
	line("Fecha de certificación: " + cert.CreatedAt.Format("02/01/2006 15:04:05"))
	pdf.Ln(4)

	if len(qrPNG) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Código QR de Verificación:"), "", 1, "C", false, 0, "")
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("verification-qr", opts, bytes.NewReader(qrPNG))
		x := (210.0 - 60.0) / 2 // center a 60mm square on an A4 page
		pdf.ImageOptions("verification-qr", x, pdf.GetY(), 60, 60, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func itemLine(n int, it manifest.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s (%s) - Cantidad: %d", n, it.Name, it.Category, it.Quantity)
	if it.EstimatedValue != nil {
		b.WriteString(" - Valor: $" + formatValue(*it.EstimatedValue))
	}
	if it.SerialNumber != nil && *it.SerialNumber != "" {
		b.WriteString(" - S/N: " + *it.SerialNumber)
	}
	if it.LuggageBrand != nil && *it.LuggageBrand != "" {
		b.WriteString(" - Maleta: " + *it.LuggageBrand)
		if it.LuggageSize != nil && *it.LuggageSize != "" {
			label, ok := luggageSizeLabels[*it.LuggageSize]
			if !ok {
				label = *it.LuggageSize
			}
			b.WriteString(" (" + label + ")")
		}
	}
	var security []string
	if it.IsSealed {
		security = append(security, "Sellada")
	}
	if it.IsLocked {
		security = append(security, "Con Candado")
	}
	if len(security) > 0 {
		b.WriteString(" - " + strings.Join(security, ", "))
	}
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
