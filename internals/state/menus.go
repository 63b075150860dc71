package state

import (
	"context"

	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/features/menus/planner"
)

// upsertMenu: maksimal satu menu per tanggal
func upsertMenu(s *AppState, m model.DailyMenu) {
	kept := make([]model.DailyMenu, 0, len(s.Menus)+1)
	for _, x := range s.Menus {
		if x.Date != m.Date {
			kept = append(kept, x)
		}
	}
	s.Menus = append(kept, m)
}

func (c *Controller) SaveMenu(ctx context.Context, m model.DailyMenu) (model.DailyMenu, error) {
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		if !ValidDate(m.Date) {
			return nil, invalid("date", "format YYYY-MM-DD")
		}
		for _, u := range m.ItemsUsed {
			if u.ItemID == "" || u.Quantity < 0 {
				return nil, invalid("itemsUsed", "ingredient invalid")
			}
		}
		m.ID = model.MenuID(m.Date)
		if m.ItemsUsed == nil {
			m.ItemsUsed = []model.MenuItemUse{}
		}
		upsertMenu(s, m)
		return []string{KeyMenus}, nil
	})
	return m, err
}

func (c *Controller) DeleteMenu(ctx context.Context, date string) error {
	return c.mutate(ctx, func(s *AppState) ([]string, error) {
		if _, ok := s.FindMenu(date); !ok {
			return nil, ErrMenuNotFound
		}
		kept := make([]model.DailyMenu, 0, len(s.Menus))
		for _, m := range s.Menus {
			if m.Date != date {
				kept = append(kept, m)
			}
		}
		s.Menus = kept
		return []string{KeyMenus}, nil
	})
}

func (c *Controller) ClearMenus(ctx context.Context) error {
	return c.mutate(ctx, func(s *AppState) ([]string, error) {
		s.Menus = []model.DailyMenu{}
		return []string{KeyMenus}, nil
	})
}

// CopyMenu menyalin teks dan resep ke tanggal lain (menimpa menu tujuan).
// Dokumen BC tidak ikut tersalin.
func (c *Controller) CopyMenu(ctx context.Context, from, to string) (model.DailyMenu, error) {
	var out model.DailyMenu
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		if !ValidDate(to) {
			return nil, invalid("to", "format YYYY-MM-DD")
		}
		src, ok := s.FindMenu(from)
		if !ok {
			return nil, ErrMenuNotFound
		}
		out = src
		out.ID = model.MenuID(to)
		out.Date = to
		out.ItemsUsed = append([]model.MenuItemUse{}, src.ItemsUsed...)
		upsertMenu(s, out)
		return []string{KeyMenus}, nil
	})
	return out, err
}

type ConsumptionInput struct {
	Date        string
	Menu        model.DailyMenu // teks menu; Date/ID/ItemsUsed diisi ulang
	Ingredients []planner.Ingredient
}

// GenerateConsumption: hitung presentCount, jalankan planner.Consume, lalu
// simpan menu dengan itemsUsed = total per bahan.
func (c *Controller) GenerateConsumption(ctx context.Context, in ConsumptionInput, opts planner.Options) (planner.Consumption, error) {
	var res planner.Consumption
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		for _, ing := range in.Ingredients {
			if ing.ItemID == "" || ing.QtyPerChild < 0 {
				return nil, invalid("ingredients", "ingredient invalid")
			}
		}
		present := planner.PresentCount(s.Attendance, s.Students, in.Date)

		b := c.book(s)
		var err error
		res, err = planner.Consume(&b, in.Date, in.Ingredients, present, opts)
		if err != nil {
			return nil, err
		}
		putBook(s, b)

		menu := in.Menu
		menu.Date = in.Date
		menu.ID = model.MenuID(in.Date)
		menu.ItemsUsed = res.ItemsUsed
		upsertMenu(s, menu)
		return []string{KeyInventory, KeyTransactions, KeyMenus}, nil
	})
	return res, err
}
