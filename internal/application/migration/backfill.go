// Package migration completa valores por defecto en facturas anteriores al ciclo de vida y al GST.
package migration

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// Store almacén completo de facturas (sin filtro por dueño).
type Store interface {
	All(ctx context.Context) ([]*entity.Invoice, error)
	Save(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error)
}

// Result estadísticas del backfill.
type Result struct {
	Total                   int  `json:"totalInvoices"`
	StatusMigrated          int  `json:"statusMigrated"`
	TransactionTypeMigrated int  `json:"transactionTypeMigrated"`
	GSTDetailsMigrated      int  `json:"gstDetailsMigrated"`
	Failed                  int  `json:"failed"`
	Success                 bool `json:"success"`
}

// Backfill pone status=DRAFT, transactionType=INTRA_STATE y gstDetails en cero donde falten.
// Volver a ejecutarlo no cambia nada.
func Backfill(ctx context.Context, store Store, log *logger.Logger) (Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("migration")
	log.Info().Msg("starting invoice backfill")

	var res Result
	all, err := store.All(ctx)
	if err != nil {
		return res, fmt.Errorf("load invoices: %w", err)
	}
	res.Total = len(all)
	for _, inv := range all {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		changed := false
		if inv.Status == "" {
			inv.Status = entity.StatusDraft
			res.StatusMigrated++
			changed = true
		}
		if inv.TransactionType == "" {
			inv.TransactionType = entity.IntraState
			res.TransactionTypeMigrated++
			changed = true
		}
		if inv.GSTDetails == nil {
			inv.GSTDetails = &entity.GSTDetails{}
			res.GSTDetailsMigrated++
			changed = true
		}
		if !changed {
			continue
		}
		if _, err := store.Save(ctx, inv); err != nil {
			res.Failed++
			log.Error().Err(err).Str("invoice_id", inv.ID).Msg("backfill invoice")
		}
	}
	res.Success = res.Failed == 0
	log.Info().
		Int("total", res.Total).
		Int("status", res.StatusMigrated).
		Int("transaction_type", res.TransactionTypeMigrated).
		Int("gst_details", res.GSTDetailsMigrated).
		Bool("success", res.Success).
		Msg("invoice backfill finished")
	return res, nil
}
