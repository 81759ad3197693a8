package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownRole роль не входит в закрытый набор
var ErrUnknownRole = errors.New("unknown user role")

// UserRole роль пользователя платформы
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleCTAdmin    UserRole = "CT_ADMIN"
	RoleEmployee   UserRole = "EMPLOYEE"
	RoleClient     UserRole = "CLIENT"
)

// ParseUserRole разбирает роль из токена
func ParseUserRole(s string) (UserRole, error) {
	switch r := UserRole(s); r {
	case RoleSuperAdmin, RoleCTAdmin, RoleEmployee, RoleClient:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Capability право на группу операций
type Capability uint16

const (
	CapReadSchedule Capability = 1 << iota
	CapManageSchedule
	CapRecordResults
	CapManageCatalog
	CapBookOwn
	CapManageNotifications
	CapAnyTenant
)

// roleCapabilities набор прав для каждой роли
var roleCapabilities = map[UserRole]Capability{
	RoleSuperAdmin: CapReadSchedule | CapManageSchedule | CapRecordResults | CapManageCatalog | CapManageNotifications | CapAnyTenant,
	RoleCTAdmin:    CapReadSchedule | CapManageSchedule | CapRecordResults | CapManageCatalog | CapManageNotifications,
	RoleEmployee:   CapReadSchedule | CapManageSchedule | CapRecordResults | CapManageNotifications,
	RoleClient:     CapReadSchedule | CapBookOwn | CapManageNotifications,
}

// Can есть ли у роли право
func (r UserRole) Can(c Capability) bool {
	return roleCapabilities[r]&c == c
}

// IsStaff сотрудник центра или администратор
func (r UserRole) IsStaff() bool {
	return r.Can(CapManageSchedule)
}

// Actor пользователь, выполняющий операцию
type Actor struct {
	UserID int64
	Role   UserRole
}

// IsClient операция выполняется клиентом от своего имени
func (a Actor) IsClient() bool {
	return a.Role == RoleClient
}
