package state

import "time"

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func ValidMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}
