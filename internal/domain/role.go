package domain

// Role es una posición de juego del conjunto cerrado de roles preferidos.
type Role string

const (
	RoleTopLane     Role = "TOP_LANE"
	RoleTopStudy    Role = "TOP_STUDY"
	RoleMiddle      Role = "MIDDLE"
	RoleBottomLane  Role = "BOTTOM_LANE"
	RoleBottomStudy Role = "BOTTOM_STUDY"
)

// Valid indica si el valor pertenece al conjunto cerrado de roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTopLane, RoleTopStudy, RoleMiddle, RoleBottomLane, RoleBottomStudy:
		return true
	}
	return false
}
