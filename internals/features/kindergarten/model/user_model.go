// file: internals/features/kindergarten/model/user_model.go
package model

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleEducator  Role = "EDUCATOR"
	RoleAssistant Role = "ASISTENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEducator, RoleAssistant:
		return true
	}
	return false
}

// ID akun admin bawaan; tidak boleh dihapus
const SeedAdminID = "admin"

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// Public: salinan tanpa password
func (u User) Public() User {
	u.Password = ""
	return u
}
