package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	domaininv "github.com/jhoicas/logistica-api/internal/domain/inventory"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// InventoryReportRow línea del reporte de existencias.
type InventoryReportRow struct {
	Name          string
	EquipmentType string
	Condition     string
	BaseName      string
	Quantity      int
	UnitCost      decimal.NullDecimal // costo promedio ponderado de las compras; inválido si no hay costos
}

// InventoryReport datos ya resueltos que el generador solo tiene que maquetar.
type InventoryReport struct {
	Scope         string // nombre de la base o "Todas las bases"
	GeneratedBy   string
	GeneratedAt   time.Time
	Rows          []InventoryReportRow
	TotalQuantity int
	Assigned      int
	// TotalValue suma de cantidad * costo promedio de las filas con costo.
	TotalValue decimal.Decimal
}

// ReportGenerator puerto de salida para renderizar el reporte (PDF).
type ReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, report *InventoryReport) ([]byte, error)
}

// ReportUseCase genera el reporte de existencias de la base propia (o de todas para ADMIN).
type ReportUseCase struct {
	repos     ports.Repos
	generator ReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(store ports.Store, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{repos: store.Repos(), generator: generator}
}

// InventoryPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context, id authz.Identity, baseFilter string) (pdfBytes []byte, filename string, err error) {
	baseID := id.BaseID
	if id.IsAdmin() {
		baseID = baseFilter
	}
	if err := authz.Check(id, authz.Scoped(authz.CanViewReports, baseID)); err != nil {
		return nil, "", err
	}

	var (
		assets    []*entity.Asset
		bases     []*entity.Base
		open      []*entity.Assignment
		purchases []*entity.Purchase
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = uc.repos.Assets.List(gctx, repository.AssetFilter{BaseID: baseID})
		return err
	})
	g.Go(func() error {
		var err error
		bases, err = uc.repos.Bases.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		open, err = uc.repos.Assignments.List(gctx, repository.AssignmentFilter{BaseID: baseID, OpenOnly: true})
		return err
	})
	g.Go(func() error {
		var err error
		purchases, err = uc.repos.Purchases.List(gctx, repository.PurchaseFilter{BaseID: baseID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", fmt.Errorf("reporte: cargar datos: %w", err)
	}

	names := make(map[string]string, len(bases))
	for _, b := range bases {
		names[b.ID] = b.Name
	}
	report := &InventoryReport{
		Scope:       "Todas las bases",
		GeneratedBy: id.FullName,
		GeneratedAt: time.Now().UTC(),
		Rows:        make([]InventoryReportRow, 0, len(assets)),
	}
	if baseID != "" {
		report.Scope = names[baseID]
	}
	if report.GeneratedBy == "" {
		report.GeneratedBy = id.Username
	}
	costs := domaininv.AverageUnitCosts(purchases)
	for _, a := range assets {
		row := InventoryReportRow{
			Name:          a.Name,
			EquipmentType: string(a.EquipmentType),
			Condition:     string(a.Condition),
			BaseName:      names[a.BaseID],
			Quantity:      a.Quantity,
		}
		if c, ok := costs[a.ID]; ok {
			row.UnitCost = decimal.NewNullDecimal(c)
			report.TotalValue = report.TotalValue.Add(c.Mul(decimal.NewFromInt(int64(a.Quantity))))
		}
		report.Rows = append(report.Rows, row)
		report.TotalQuantity += a.Quantity
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		if report.Rows[i].BaseName != report.Rows[j].BaseName {
			return report.Rows[i].BaseName < report.Rows[j].BaseName
		}
		return report.Rows[i].Name < report.Rows[j].Name
	})
	for _, a := range open {
		report.Assigned += a.Quantity
	}

	pdfBytes, err = uc.generator.GenerateInventoryReport(ctx, report)
	if err != nil {
		return nil, "", err
	}
	filename = fmt.Sprintf("inventario-%s.pdf", report.GeneratedAt.Format("20060102-1504"))
	return pdfBytes, filename, nil
}
