package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/state"
)

// MonthQuery: ?month=YYYY-MM, kosong → bulan berjalan
func MonthQuery(c *fiber.Ctx, now time.Time) (string, error) {
	m := strings.TrimSpace(c.Query("month"))
	if m == "" {
		return now.Format("2006-01"), nil
	}
	if !state.ValidMonth(m) {
		return "", fiber.NewError(fiber.StatusBadRequest, "Parametrul month trebuie să fie YYYY-MM")
	}
	return m, nil
}

// DateParam: path/query tanggal YYYY-MM-DD
func DateParam(raw string) (string, error) {
	d := strings.TrimSpace(raw)
	if !state.ValidDate(d) {
		return "", fiber.NewError(fiber.StatusBadRequest, "Data trebuie să fie YYYY-MM-DD")
	}
	return d, nil
}

// Confirmed: ?confirm=true (atau field form "confirm")
func Confirmed(c *fiber.Ctx) bool {
	v := c.Query("confirm")
	if v == "" {
		v = c.FormValue("confirm")
	}
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return b
}
