package usecase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
	"github.com/daemlu/convivencia-api/internal/domain/repository"
)

// DECPDFGenerator es el puerto de generación del documento imprimible de un
// DEC. La implementación vive en infrastructure/pdf.
type DECPDFGenerator interface {
	GenerateDECPDF(ctx context.Context, d *entity.DEC, generado time.Time) ([]byte, error)
}

// PDFUseCase genera el documento imprimible de un DEC.
type PDFUseCase struct {
	decRepo   repository.DECRepository
	generator DECPDFGenerator
	now       func() time.Time
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(decRepo repository.DECRepository, generator DECPDFGenerator) *PDFUseCase {
	return &PDFUseCase{decRepo: decRepo, generator: generator, now: time.Now}
}

// DownloadDECPDF recupera el registro, verifica que es visible para el scope
// y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el registro no existe o no es visible.
func (uc *PDFUseCase) DownloadDECPDF(
	ctx context.Context,
	scope domain.Scope,
	id string,
) (pdfBytes []byte, filename string, err error) {
	d, err := uc.decRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener dec: %w", err)
	}
	if d == nil {
		return nil, "", domain.ErrNotFound
	}
	if alcance := scope.FilterEstablecimiento(""); alcance != "" && d.EstablecimientoID != alcance {
		return nil, "", domain.ErrNotFound
	}

	generado := uc.now()
	pdfBytes, err = uc.generator.GenerateDECPDF(ctx, d, generado)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, NombreArchivoDEC(d.NombreEstudiante, generado), nil
}

var caracteresProhibidos = regexp.MustCompile(`[\\/:"*?<>|]`)
var espacios = regexp.MustCompile(`\s+`)

// NombreArchivoDEC deriva el nombre del archivo descargable a partir del
// nombre del estudiante saneado más la fecha de generación.
// Ej: "María / Pérez" → "DEC_María_Pérez_20260829.pdf".
func NombreArchivoDEC(nombreEstudiante string, generado time.Time) string {
	saneado := caracteresProhibidos.ReplaceAllString(nombreEstudiante, "")
	saneado = espacios.ReplaceAllString(saneado, "_")
	return fmt.Sprintf("DEC_%s_%s.pdf", saneado, generado.Format("20060102"))
}
