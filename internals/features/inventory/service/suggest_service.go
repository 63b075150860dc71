// file: internals/features/inventory/service/suggest_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/generative-ai-go/genai"

	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/features/menus/planner"
)

type inventoryEntry struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Unit model.Unit `json:"unit"`
}

func suggestPrompt(menu model.DailyMenu, items []model.FoodItem) (string, error) {
	list := make([]inventoryEntry, 0, len(items))
	for _, it := range items {
		list = append(list, inventoryEntry{ID: it.ID, Name: it.Name, Unit: it.Unit})
	}
	inv, err := sonic.MarshalString(list)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`Ești un asistent de bucătărie pentru o grădiniță. Mai jos ai meniul zilei și lista de produse disponibile în magazie.
Te rog să identifici care dintre produsele din inventar sunt necesare pentru a găti acest meniu.

MENIU:
Mic dejun: %s
Gustare 1: %s
Prânz: %s
Gustare 2: %s

INVENTAR DISPONIBIL:
%s

Returnează EXCLUSIV un array JSON care conține obiecte cu structura: {"id": "ID_PRODUS", "qtyPerChild": NUMAR_ESTIMAT_KG_SAU_UNITATE}.
Estimează gramajul per copil (ex: 0.05 pentru 50g carne, 0.01 pentru sare, 0.1 pentru lapte etc).
Nu returna text explicativ, doar JSON-ul.`, menu.Breakfast, menu.Snack1, menu.Lunch, menu.Snack2, inv), nil
}

type suggestion struct {
	ID          string `json:"id"`
	QtyPerChild number `json:"qtyPerChild"`
}

// ParseSuggestions: id yang tidak dikenal dan yang sudah ada di resep dibuang
func ParseSuggestions(answer string, items []model.FoodItem, existing []planner.Ingredient) ([]planner.Ingredient, error) {
	var raw []suggestion
	if err := sonic.UnmarshalString(stripCodeFence(answer), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModelAnswer, err)
	}
	known := make(map[string]bool, len(items))
	for _, it := range items {
		known[it.ID] = true
	}
	seen := make(map[string]bool, len(existing))
	for _, in := range existing {
		seen[in.ItemID] = true
	}
	out := []planner.Ingredient{}
	for _, sg := range raw {
		id := strings.TrimSpace(sg.ID)
		if !known[id] || seen[id] || sg.QtyPerChild <= 0 {
			continue
		}
		seen[id] = true
		out = append(out, planner.Ingredient{ItemID: id, QtyPerChild: float64(sg.QtyPerChild)})
	}
	return out, nil
}

// SuggestIngredients: minta model memilih produk inventaris untuk menu
func (s *ScanService) SuggestIngredients(ctx context.Context, menu model.DailyMenu, items []model.FoodItem, existing []planner.Ingredient) ([]planner.Ingredient, error) {
	if !s.Enabled() {
		return nil, ErrScannerDisabled
	}
	if strings.TrimSpace(menu.Breakfast) == "" && strings.TrimSpace(menu.Lunch) == "" {
		return nil, ErrEmptyMenu
	}
	prompt, err := suggestPrompt(menu, items)
	if err != nil {
		return nil, err
	}
	answer, err := s.Model.GenerateText(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}
	return ParseSuggestions(answer, items, existing)
}
