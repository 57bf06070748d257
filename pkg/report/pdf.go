/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/arubamgr/fwvalidate/pkg/header"
	"github.com/arubamgr/fwvalidate/pkg/validator"
)

const pdfFont = "Helvetica"

// WritePDF renders r as a single-page validation certificate.
func WritePDF(w io.Writer, r *validator.Report) error {
	pdf := buildPDF(r)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func buildPDF(r *validator.Report) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetTitle("Firmware Validation Certificate", false)
	pdf.SetCreator("fwvalidate "+r.Metadata[header.MetadataVersion], false)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 9, "Firmware Validation Certificate", "", 1, "L", false, 0, "")

	pdf.SetFont(pdfFont, "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at: %s", r.Summary.GeneratedAt.UTC().Format(time.RFC3339)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Run ID: %s", safeText(r.Metadata[header.MetadataRunID])), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	verdict, red, green := "FAILED", 170, 30
	if r.Summary.OverallPassed {
		verdict, red, green = "PASSED", 20, 130
	}
	pdf.SetFont(pdfFont, "B", 14)
	pdf.SetTextColor(red, green, 30)
	pdf.CellFormat(0, 8, fmt.Sprintf("Overall: %s (%d/%d stages passed)", verdict, r.Summary.Passed, r.Summary.Total), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	sectionTitle(pdf, "Firmware")
	facts := FactsOf(r)
	kv(pdf, "File", r.TargetPath)
	if facts.SizeMB != nil {
		kv(pdf, "Size", fmt.Sprintf("%.1f MB", *facts.SizeMB))
	}
	kv(pdf, "Version", facts.Version)
	kv(pdf, "Target model", firstNonEmpty(r.TargetModel, facts.Model))
	if facts.Checksum != "" {
		kv(pdf, facts.Algorithm, facts.Checksum)
	}
	pdf.Ln(2)

	sectionTitle(pdf, "Stages")
	for _, cr := range r.Results {
		status := "PASS"
		switch {
		case cr.Passed:
		case cr.Advisory:
			status = "WARN"
		default:
			status = "FAIL"
		}
		pdf.SetFont(pdfFont, "B", 10)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(16, 5.2, status, "", 0, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		pdf.MultiCell(0, 5.2, StageTitle(cr.Stage), "", "L", false)
		if !cr.Passed {
			pdf.SetFont(pdfFont, "", 9)
			pdf.SetTextColor(90, 90, 90)
			pdf.CellFormat(16, 4.5, "", "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 4.5, safeText(fmt.Sprintf("[%s] %s", cr.Code, cr.Error)), "", "L", false)
		}
	}

	return pdf
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(pdfFont, "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pdf.GetX(), pdf.GetY(), 196, pdf.GetY())
	pdf.Ln(2)
}

func kv(pdf *gofpdf.Fpdf, key, value string) {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	pdf.SetFont(pdfFont, "B", 10)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(32, 5.2, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.SetTextColor(20, 20, 20)
	pdf.MultiCell(0, 5.2, safeText(value), "", "L", false)
}

// safeText keeps printable ASCII, which the core fonts can render.
func safeText(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s)
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 32 && r <= 126 {
			b.WriteRune(r)
		} else {
			b.WriteRune('?')
		}
	}
	return b.String()
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
