package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// FieldCipher cifra los datos bancarios antes de guardarlos.
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(encoded string) (string, error)
}

// InvoiceRepo guarda cada factura como documento JSONB. owner_id, status y due_date
// se duplican en columnas para filtrar. Con cipher, bankDetails sale del documento y
// se guarda cifrado en bank_details_enc.
type InvoiceRepo struct {
	q      Querier
	cipher FieldCipher
	now    func() time.Time
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier); cipher puede ser nil.
func NewInvoiceRepository(q Querier, cipher FieldCipher) *InvoiceRepo {
	return &InvoiceRepo{q: q, cipher: cipher, now: time.Now}
}

const selectColumns = `SELECT document, bank_details_enc, created_at, last_updated_at FROM invoices`

// Save inserta o reemplaza el documento; owner_id y created_at no cambian en actualizaciones.
func (r *InvoiceRepo) Save(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error) {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	doc, bankEnc, err := r.encode(invoice)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO invoices (id, owner_id, status, invoice_number, due_date, document, bank_details_enc, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (id) DO UPDATE
		SET status           = EXCLUDED.status,
		    invoice_number   = EXCLUDED.invoice_number,
		    due_date         = EXCLUDED.due_date,
		    document         = EXCLUDED.document,
		    bank_details_enc = EXCLUDED.bank_details_enc,
		    last_updated_at  = EXCLUDED.last_updated_at
		RETURNING created_at, last_updated_at`
	var created, updated time.Time
	err = r.q.QueryRow(ctx, query,
		invoice.ID, invoice.OwnerID, nullIfEmpty(string(invoice.Status)),
		nullIfEmpty(invoice.Invoice.Number), nullIfEmpty(invoice.Invoice.DueDate),
		doc, bankEnc, r.now().UTC(),
	).Scan(&created, &updated)
	if err != nil {
		return nil, fmt.Errorf("upsert invoice: %w", classify("save invoice", err))
	}
	out := *invoice
	out.CreatedAt = created
	out.LastUpdatedAt = updated
	return &out, nil
}

// FindByID obtiene una factura por id; nil, nil si no existe.
func (r *InvoiceRepo) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.one(ctx, "find invoice", selectColumns+` WHERE id = $1`, id)
}

// FindByOwner facturas del dueño en orden de creación.
func (r *InvoiceRepo) FindByOwner(ctx context.Context, ownerID string) ([]*entity.Invoice, error) {
	return r.list(ctx, "list invoices", selectColumns+` WHERE owner_id = $1 ORDER BY created_at, id`, ownerID)
}

// FindByOwnerAndID aplica el aislamiento por dueño; nil, nil si no es suya o no existe.
func (r *InvoiceRepo) FindByOwnerAndID(ctx context.Context, ownerID, id string) (*entity.Invoice, error) {
	return r.one(ctx, "find owned invoice", selectColumns+` WHERE owner_id = $1 AND id = $2`, ownerID, id)
}

// FindByOwnerAndStatus el estado nulo o vacío cuenta como DRAFT.
func (r *InvoiceRepo) FindByOwnerAndStatus(ctx context.Context, ownerID string, status entity.InvoiceStatus) ([]*entity.Invoice, error) {
	return r.list(ctx, "list invoices by status",
		selectColumns+` WHERE owner_id = $1 AND COALESCE(NULLIF(status, ''), 'DRAFT') = $2 ORDER BY created_at, id`,
		ownerID, string(entity.NormalizeStatus(status)))
}

// FindByStatusIn facturas de todos los dueños en cualquiera de los estados.
func (r *InvoiceRepo) FindByStatusIn(ctx context.Context, statuses ...entity.InvoiceStatus) ([]*entity.Invoice, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(entity.NormalizeStatus(s))
	}
	return r.list(ctx, "list invoices by statuses",
		selectColumns+` WHERE COALESCE(NULLIF(status, ''), 'DRAFT') = ANY($1) ORDER BY created_at, id`, values)
}

// All todas las facturas (backfill).
func (r *InvoiceRepo) All(ctx context.Context) ([]*entity.Invoice, error) {
	return r.list(ctx, "list all invoices", selectColumns+` ORDER BY created_at, id`)
}

// Delete borra por id; no falla si no existe.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", classify("delete invoice", err))
	}
	return nil
}

func (r *InvoiceRepo) one(ctx context.Context, op, query string, args ...any) (*entity.Invoice, error) {
	inv, err := r.scan(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, classify(op, err))
	}
	return inv, nil
}

func (r *InvoiceRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(op, err))
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(op, err))
	}
	return list, nil
}

func (r *InvoiceRepo) scan(row pgx.Row) (*entity.Invoice, error) {
	var (
		doc     []byte
		bankEnc *string
		inv     entity.Invoice
	)
	if err := row.Scan(&doc, &bankEnc, &inv.CreatedAt, &inv.LastUpdatedAt); err != nil {
		return nil, err
	}
	created, updated := inv.CreatedAt, inv.LastUpdatedAt
	if err := json.Unmarshal(doc, &inv); err != nil {
		return nil, fmt.Errorf("decode invoice document: %w", err)
	}
	inv.CreatedAt, inv.LastUpdatedAt = created, updated
	if bankEnc != nil && r.cipher != nil {
		plain, err := r.cipher.Decrypt(*bankEnc)
		if err != nil {
			return nil, fmt.Errorf("decrypt bank details of %s: %w", inv.ID, err)
		}
		if err := json.Unmarshal([]byte(plain), &inv.BankDetails); err != nil {
			return nil, fmt.Errorf("decode bank details of %s: %w", inv.ID, err)
		}
	}
	return &inv, nil
}

func (r *InvoiceRepo) encode(invoice *entity.Invoice) ([]byte, *string, error) {
	stored := *invoice
	var bankEnc *string
	if r.cipher != nil && !invoice.BankDetails.IsZero() {
		plain, err := json.Marshal(invoice.BankDetails)
		if err != nil {
			return nil, nil, fmt.Errorf("encode bank details: %w", err)
		}
		enc, err := r.cipher.Encrypt(string(plain))
		if err != nil {
			return nil, nil, fmt.Errorf("encrypt bank details: %w", err)
		}
		bankEnc = &enc
		stored.BankDetails = entity.BankDetails{}
	}
	doc, err := json.Marshal(stored)
	if err != nil {
		return nil, nil, fmt.Errorf("encode invoice document: %w", err)
	}
	return doc, bankEnc, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
