package models

// UserRole роль пользователя в бэкенде
type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "super_admin"
)

// IsPortalAdmin доступ к админке есть только у admin и super_admin
func (r UserRole) IsPortalAdmin() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

// CanManageAdmins добавлять, блокировать и удалять администраторов
func (r UserRole) CanManageAdmins() bool {
	return r == UserRoleSuperAdmin
}

// UserStatus пустой статус бэкенд не присылает для старых учеток
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

func (s UserStatus) IsActive() bool {
	return s == "" || s == UserStatusActive
}

// Toggled статус после переключения блокировки
func (s UserStatus) Toggled() UserStatus {
	if s == UserStatusActive {
		return UserStatusInactive
	}
	return UserStatusActive
}
