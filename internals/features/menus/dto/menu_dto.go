package dto

import (
	"strings"

	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/features/menus/planner"
)

type MenuText struct {
	Breakfast string `json:"breakfast" validate:"max=500"`
	Snack1    string `json:"snack1" validate:"max=500"`
	Lunch     string `json:"lunch" validate:"max=500"`
	Snack2    string `json:"snack2" validate:"max=500"`
}

func (m MenuText) ToModel(date string) model.DailyMenu {
	return model.DailyMenu{
		Date:      date,
		Breakfast: strings.TrimSpace(m.Breakfast),
		Snack1:    strings.TrimSpace(m.Snack1),
		Lunch:     strings.TrimSpace(m.Lunch),
		Snack2:    strings.TrimSpace(m.Snack2),
	}
}

type SaveMenuRequest struct {
	MenuText
	ItemsUsed []model.MenuItemUse `json:"itemsUsed" validate:"dive"`
}

type IngredientRequest struct {
	ItemID      string  `json:"itemId" validate:"required"`
	QtyPerChild float64 `json:"qtyPerChild" validate:"gte=0"`
}

func toIngredients(in []IngredientRequest) []planner.Ingredient {
	out := make([]planner.Ingredient, 0, len(in))
	for _, i := range in {
		out = append(out, planner.Ingredient{ItemID: strings.TrimSpace(i.ItemID), QtyPerChild: i.QtyPerChild})
	}
	return out
}

type PlanRequest struct {
	Ingredients []IngredientRequest `json:"ingredients" validate:"dive"`
}

func (r PlanRequest) ToIngredients() []planner.Ingredient { return toIngredients(r.Ingredients) }

type ConsumptionRequest struct {
	MenuText
	Ingredients       []IngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	ConfirmReplace    bool                `json:"confirmReplace"`
	AllowInsufficient bool                `json:"allowInsufficient"`
}

func (r ConsumptionRequest) ToIngredients() []planner.Ingredient { return toIngredients(r.Ingredients) }

type SuggestRequest struct {
	MenuText
	Ingredients []IngredientRequest `json:"ingredients" validate:"dive"`
}

func (r SuggestRequest) ToIngredients() []planner.Ingredient { return toIngredients(r.Ingredients) }

type CopyMenuRequest struct {
	To string `json:"to" validate:"required,datetime=2006-01-02"`
}

type MenuResponse struct {
	model.DailyMenu
	Status planner.Status `json:"status"`
}

type PlanResponse struct {
	Date         string         `json:"date"`
	Ref          string         `json:"ref"`
	PresentCount int            `json:"presentCount"`
	Status       planner.Status `json:"status"`
	Lines        []planner.Line `json:"lines"`
}
