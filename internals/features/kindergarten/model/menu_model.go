// file: internals/features/kindergarten/model/menu_model.go
package model

type MenuItemUse struct {
	ItemID   string  `json:"itemId"`
	Quantity float64 `json:"quantity"` // total untuk semua anak hadir
}

// DailyMenu: maksimal satu per tanggal (upsert by Date).
type DailyMenu struct {
	ID        string        `json:"id"`
	Date      string        `json:"date"`
	Breakfast string        `json:"breakfast"`
	Snack1    string        `json:"snack1"`
	Lunch     string        `json:"lunch"`
	Snack2    string        `json:"snack2"`
	ItemsUsed []MenuItemUse `json:"itemsUsed"`
}

func MenuID(date string) string { return "menu-" + date }
