package state

import (
	"edugest_backend/internals/features/kindergarten/model"
)

// AppState: seluruh koleksi + config. Hanya Controller yang boleh menulis.
type AppState struct {
	Users        []model.User                 `json:"users"`
	Students     []model.Student              `json:"students"`
	Parents      []model.Parent               `json:"parents"`
	Attendance   []model.AttendanceRecord     `json:"attendance"`
	Payments     []model.Payment              `json:"payments"`
	Inventory    []model.FoodItem             `json:"inventory"`
	Menus        []model.DailyMenu            `json:"menus"`
	Transactions []model.InventoryTransaction `json:"transactions"`
	Config       model.AppConfig              `json:"config"`
	AuthUser     *model.User                  `json:"authUser,omitempty"`
}

func (s *AppState) FindStudent(id string) (model.Student, bool) {
	for _, st := range s.Students {
		if st.ID == id {
			return st, true
		}
	}
	return model.Student{}, false
}

func (s *AppState) FindParent(id string) (model.Parent, bool) {
	for _, p := range s.Parents {
		if p.ID == id {
			return p, true
		}
	}
	return model.Parent{}, false
}

func (s *AppState) FindMenu(date string) (model.DailyMenu, bool) {
	for _, m := range s.Menus {
		if m.Date == date {
			return m, true
		}
	}
	return model.DailyMenu{}, false
}

func (s *AppState) FindItem(id string) (model.FoodItem, bool) {
	for _, it := range s.Inventory {
		if it.ID == id {
			return it, true
		}
	}
	return model.FoodItem{}, false
}

func (s *AppState) ActiveStudents() []model.Student {
	out := make([]model.Student, 0, len(s.Students))
	for _, st := range s.Students {
		if st.Active {
			out = append(out, st)
		}
	}
	return out
}

// value: isi yang ditulis ke store untuk satu kunci
func (s *AppState) value(key string) any {
	switch key {
	case KeyUsers:
		return s.Users
	case KeyStudents:
		return s.Students
	case KeyParents:
		return s.Parents
	case KeyAttendance:
		return s.Attendance
	case KeyPayments:
		return s.Payments
	case KeyInventory:
		return s.Inventory
	case KeyMenus:
		return s.Menus
	case KeyTransactions:
		return s.Transactions
	case KeyConfig:
		return s.Config
	case KeyAuthUser:
		return s.AuthUser
	}
	return nil
}

// Clone: deep copy; slice kosong tetap non-nil supaya JSON-nya [] bukan null
func (s *AppState) Clone() AppState {
	out := AppState{
		Users:        append(make([]model.User, 0, len(s.Users)), s.Users...),
		Students:     append(make([]model.Student, 0, len(s.Students)), s.Students...),
		Parents:      append(make([]model.Parent, 0, len(s.Parents)), s.Parents...),
		Attendance:   append(make([]model.AttendanceRecord, 0, len(s.Attendance)), s.Attendance...),
		Payments:     append(make([]model.Payment, 0, len(s.Payments)), s.Payments...),
		Inventory:    append(make([]model.FoodItem, 0, len(s.Inventory)), s.Inventory...),
		Menus:        make([]model.DailyMenu, len(s.Menus)),
		Transactions: make([]model.InventoryTransaction, len(s.Transactions)),
		Config:       s.Config,
	}
	out.Config.Groups = append(make([]string, 0, len(s.Config.Groups)), s.Config.Groups...)
	for i, m := range s.Menus {
		m.ItemsUsed = append(make([]model.MenuItemUse, 0, len(m.ItemsUsed)), m.ItemsUsed...)
		out.Menus[i] = m
	}
	for i, tx := range s.Transactions {
		if tx.PricePerUnit != nil {
			p := *tx.PricePerUnit
			tx.PricePerUnit = &p
		}
		out.Transactions[i] = tx
	}
	if s.AuthUser != nil {
		u := *s.AuthUser
		out.AuthUser = &u
	}
	return out
}
