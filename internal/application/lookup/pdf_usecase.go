package lookup

import (
	"context"
	"fmt"

	"github.com/jhoicas/consulta-cnpj/internal/application/dto"
)

// ReportPDFGenerator puerto de salida para renderizar el reporte en PDF.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *dto.CompanyReport) ([]byte, error)
}

// PDFUseCase consulta un CNPJ y devuelve el reporte en PDF.
type PDFUseCase struct {
	lookup    *LookupUseCase
	generator ReportPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(lookup *LookupUseCase, generator ReportPDFGenerator) *PDFUseCase {
	return &PDFUseCase{lookup: lookup, generator: generator}
}

// DownloadReportPDF devuelve (pdfBytes, filename, nil). Los errores de consulta se propagan sin cambios.
func (uc *PDFUseCase) DownloadReportPDF(ctx context.Context, raw string) ([]byte, string, error) {
	report, err := uc.lookup.Execute(ctx, raw)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.generator.GenerateReportPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return b, fmt.Sprintf("cnpj_%s.pdf", report.CNPJ), nil
}
