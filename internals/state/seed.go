package state

import (
	"edugest_backend/internals/features/kindergarten/model"
)

const (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "12345678"

	DefaultFoodCostPerDay = 25.0
	UnknownParentName     = "Parinte Nespecificat"
)

func DefaultConfig(foodCost float64) model.AppConfig {
	if foodCost <= 0 {
		foodCost = DefaultFoodCostPerDay
	}
	return model.AppConfig{
		InstitutionName: "GRADINITA NR. 9 „AMZA PELLEA” BĂILEȘTI",
		FoodCostPerDay:  foodCost,
		Currency:        "RON",
		Address:         "Str. Exemplu nr. 1, Băilești",
		Email:           "contact@gradinita9amzapellea.ro",
		Phone:           "0700 000 000",
		Groups:          []string{"Mică", "Mijlocie", "Mare", "Pregătitoare"},
	}
}

func seedAdmin(password string) model.User {
	return model.User{
		ID:       model.SeedAdminID,
		Username: SeedAdminUsername,
		Password: password,
		Name:     "Administrator Principal",
		Role:     model.RoleAdmin,
	}
}

func seedParents() []model.Parent {
	return []model.Parent{
		{ID: "p1", Name: "Andrei Popescu", Phone: "0722123456", Email: "andrei.p@example.com", Address: "Str. Libertății 10, București"},
		{ID: "p2", Name: "Maria Ionescu", Phone: "0733987654", Email: "maria.i@example.com", Address: "Bd. Unirii 5, București"},
	}
}

func seedStudents() []model.Student {
	return []model.Student{
		{ID: "s1", FirstName: "Luca", LastName: "Popescu", Group: "Mijlocie", CNP: "5180101123456", ParentID: "p1", Active: true},
		{ID: "s2", FirstName: "Sofia", LastName: "Ionescu", Group: "Mică", CNP: "6200202123456", ParentID: "p2", Active: true},
		{ID: "s3", FirstName: "David", LastName: "Popescu", Group: "Mare", CNP: "5170303123456", ParentID: "p1", Active: true},
	}
}

func seedFoodItems() []model.FoodItem {
	return []model.FoodItem{
		{ID: "f1", Name: "Lapte 3.5%", Unit: model.UnitLitre, Quantity: 45, MinStock: 10, LastPrice: 6.5},
		{ID: "f2", Name: "Pâine integrală", Unit: model.UnitPiece, Quantity: 12, MinStock: 5, LastPrice: 4.2},
		{ID: "f3", Name: "Mere roșii", Unit: model.UnitKg, Quantity: 8, MinStock: 15, LastPrice: 3.5},
		{ID: "f4", Name: "Piept de pui", Unit: model.UnitKg, Quantity: 20, MinStock: 5, LastPrice: 28.0},
		{ID: "f5", Name: "Făină Albă", Unit: model.UnitKg, Quantity: 3, MinStock: 5, LastPrice: 4.5},
		{ID: "f6", Name: "Drojdie", Unit: model.UnitPiece, Quantity: 2, MinStock: 5, LastPrice: 1.2},
	}
}
