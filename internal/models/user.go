package models

const (
	RoleEmployee = "employee"
	RoleIronhand = "ironhand"
	RoleClient   = "client"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
	StoreNumber  string `gorm:"not null"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleIronhand, RoleClient:
		return true
	default:
		return false
	}
}
