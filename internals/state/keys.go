package state

// Kunci penyimpanan; sama dengan layout lama supaya data lama tetap terbaca.
const (
	KeyStudents     = "students"
	KeyParents      = "parents"
	KeyAttendance   = "attendance"
	KeyPayments     = "payments"
	KeyInventory    = "inventory"
	KeyMenus        = "menus"
	KeyTransactions = "transactions"
	KeyConfig       = "config"
	KeyUsers        = "app_users"
	KeyAuthUser     = "auth_user"
	KeyAutoBackup   = "auto_backup" // ditulis job backup terjadwal
)

// CollectionKeys: semua koleksi yang ikut backup (auth_user tidak)
var CollectionKeys = []string{
	KeyUsers,
	KeyStudents,
	KeyParents,
	KeyAttendance,
	KeyPayments,
	KeyInventory,
	KeyMenus,
	KeyTransactions,
	KeyConfig,
}

func Touches(keys []string, wanted ...string) bool {
	for _, k := range keys {
		for _, a := range wanted {
			if k == a {
				return true
			}
		}
	}
	return false
}
