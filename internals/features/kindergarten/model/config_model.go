// file: internals/features/kindergarten/model/config_model.go
package model

type AppConfig struct {
	InstitutionName string   `json:"institutionName"`
	FoodCostPerDay  float64  `json:"foodCostPerDay"`
	Currency        string   `json:"currency"`
	Address         string   `json:"address"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Groups          []string `json:"groups"`
}

func (c AppConfig) HasGroup(name string) bool {
	for _, g := range c.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// DefaultGroup: grup pertama, dipakai saat import tanpa kolom grup
func (c AppConfig) DefaultGroup() string {
	if len(c.Groups) == 0 {
		return ""
	}
	return c.Groups[0]
}
