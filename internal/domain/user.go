package domain

import (
	"time"
)

type Role string

const (
	RoleObserver      Role = "observador"
	RolePlanner       Role = "planificador"
	RoleAdministrator Role = "administrador"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	FranchiseID  string    `json:"franchiseID"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
