package state

import (
	"context"
	"strings"

	"edugest_backend/internals/features/inventory/ledger"
	"edugest_backend/internals/features/kindergarten/model"
)

// DocumentRow: satu baris NIR/BC. Untuk ENTRY, ItemID kosong + Name berarti item baru.
type DocumentRow struct {
	ItemID       string
	Name         string
	Unit         model.Unit
	MinStock     float64
	Quantity     float64
	PricePerUnit *float64
}

type DocumentInput struct {
	Type        model.MovementType
	Ref         string
	Supplier    string
	Destination string
	Rows        []DocumentRow
}

type DocumentResult struct {
	Ref       string            `json:"ref"`
	Created   []string          `json:"createdItems,omitempty"`
	Movements []ledger.Movement `json:"movements"`
}

func (c *Controller) ApplyMovement(ctx context.Context, in ledger.MovementInput) (ledger.Movement, error) {
	var mv ledger.Movement
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		b := c.book(s)
		var err error
		if mv, err = b.ApplyMovement(in); err != nil {
			return nil, err
		}
		putBook(s, b)
		return []string{KeyInventory, KeyTransactions}, nil
	})
	return mv, err
}

func (c *Controller) RegisterEntry(ctx context.Context, in ledger.EntryInput) (ledger.Movement, bool, error) {
	var (
		mv      ledger.Movement
		created bool
	)
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		b := c.book(s)
		var err error
		if mv, created, err = b.RegisterEntry(in); err != nil {
			return nil, err
		}
		putBook(s, b)
		return []string{KeyInventory, KeyTransactions}, nil
	})
	return mv, created, err
}

// RecordDocument mencatat dokumen multi-baris. Semua baris dijalankan di
// salinan book; satu baris gagal berarti seluruh dokumen ditolak.
func (c *Controller) RecordDocument(ctx context.Context, in DocumentInput) (DocumentResult, error) {
	var res DocumentResult
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		if !in.Type.Valid() {
			return nil, ledger.ErrInvalidMovement
		}
		if len(in.Rows) == 0 {
			return nil, invalid("rows", "documentul nu are linii")
		}
		ref := strings.TrimSpace(in.Ref)
		if ref == "" {
			prefix := "NIR"
			if in.Type == model.MovementExit {
				prefix = "BC"
			}
			ref = prefix + "-" + c.lastDigits()
		}

		base := c.book(s)
		work := base.Clone()
		res = DocumentResult{Ref: ref}
		for _, row := range in.Rows {
			if in.Type == model.MovementEntry {
				mv, created, err := work.RegisterEntry(ledger.EntryInput{
					ItemID:       row.ItemID,
					Name:         row.Name,
					Unit:         row.Unit,
					MinStock:     row.MinStock,
					Quantity:     row.Quantity,
					PricePerUnit: row.PricePerUnit,
					DocumentRef:  ref,
					Supplier:     in.Supplier,
				})
				if err != nil {
					return nil, err
				}
				if created {
					res.Created = append(res.Created, mv.Transaction.FoodItemID)
				}
				res.Movements = append(res.Movements, mv)
				continue
			}
			mv, err := work.ApplyMovement(ledger.MovementInput{
				ItemID:      row.ItemID,
				Quantity:    row.Quantity,
				Type:        model.MovementExit,
				DocumentRef: ref,
				Supplier:    in.Supplier,
				Destination: in.Destination,
			})
			if err != nil {
				return nil, err
			}
			res.Movements = append(res.Movements, mv)
		}
		putBook(s, work)
		return []string{KeyInventory, KeyTransactions}, nil
	})
	return res, err
}

// ReverseDocument membatalkan satu dokumen; ref yang tidak dikenal → ErrDocumentNotFound
func (c *Controller) ReverseDocument(ctx context.Context, ref string) (int, error) {
	n := 0
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		b := c.book(s)
		if !b.Exists(ref) {
			return nil, ErrDocumentNotFound
		}
		n = b.ReverseDocument(ref)
		putBook(s, b)
		return []string{KeyInventory, KeyTransactions}, nil
	})
	return n, err
}

// DeleteFoodItem: transaksi historis dibiarkan, dibaca dengan label placeholder
func (c *Controller) DeleteFoodItem(ctx context.Context, id string) error {
	return c.mutate(ctx, func(s *AppState) ([]string, error) {
		b := c.book(s)
		if err := b.DeleteItem(id); err != nil {
			return nil, err
		}
		putBook(s, b)
		return []string{KeyInventory}, nil
	})
}
