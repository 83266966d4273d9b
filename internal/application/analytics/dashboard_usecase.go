package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/internal/domain/entity"
	"github.com/daemlu/convivencia-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen del Panel de Control.
//
// Trae las dos colecciones completas (DEC y activaciones), ya restringidas por
// el scope del usuario, y deriva todos los agregados con ComputeDashboard.
// Cada invocación re-deriva todo desde cero; no hay actualización incremental.
type DashboardUseCase struct {
	decRepo  repository.DECRepository
	actsRepo repository.ActivacionRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(decRepo repository.DECRepository, actsRepo repository.ActivacionRepository) *DashboardUseCase {
	return &DashboardUseCase{decRepo: decRepo, actsRepo: actsRepo, now: time.Now}
}

// GetSummary construye el DashboardResponse para el scope dado.
//
// filtro es el selector de establecimiento del admin (nombre resuelto o ID);
// los no-admin lo ignoran: su visibilidad ya viene dada por el scope.
//
// Las dos consultas van en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, scope domain.Scope, filtro string) (*dto.DashboardResponse, error) {
	alcance := scope.FilterEstablecimiento("")
	if !scope.IsAdmin {
		filtro = ""
	}

	type decResult struct {
		dec []*entity.DEC
		err error
	}
	type actsResult struct {
		acts []*entity.ActivacionProtocolo
		err  error
	}

	decCh := make(chan decResult, 1)
	actsCh := make(chan actsResult, 1)

	go func() {
		dec, err := uc.decRepo.ListAll(ctx, alcance)
		decCh <- decResult{dec, err}
	}()
	go func() {
		acts, err := uc.actsRepo.ListAll(ctx, alcance)
		actsCh <- actsResult{acts, err}
	}()

	dec := <-decCh
	acts := <-actsCh

	if dec.err != nil {
		return nil, fmt.Errorf("dashboard: registros DEC: %w", dec.err)
	}
	if acts.err != nil {
		return nil, fmt.Errorf("dashboard: activaciones: %w", acts.err)
	}

	vistaGlobal := scope.IsAdmin && filtro == ""
	return ComputeDashboard(dec.dec, acts.acts, filtro, vistaGlobal, uc.now()), nil
}
