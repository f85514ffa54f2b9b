package models

import "time"

type Role string

const (
	RoleDonor     Role = "doador"
	RoleCollector Role = "coletor"
)

// ValidRole reports whether s names one of the two account roles.
func ValidRole(s string) bool {
	return Role(s) == RoleDonor || Role(s) == RoleCollector
}

// Collector and Donor live in separate tables with separate serial id
// spaces, so an id alone never identifies an account; every lookup
// carries the role alongside it.
type Collector struct {
	ID                   int64     `json:"id" db:"id"`
	Name                 string    `json:"nome" db:"name"`
	Email                string    `json:"email" db:"email"`
	CPF                  *int64    `json:"cpf,omitempty" db:"cpf"`
	PasswordHash         string    `json:"-" db:"password_hash"`
	AcceptingCollections bool      `json:"coleta_aceita" db:"accepting_collections"`
	Rating               *float64  `json:"avaliacao" db:"rating"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

type Donor struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"nome" db:"name"`
	Email             string    `json:"email" db:"email"`
	CPF               *int64    `json:"cpf,omitempty" db:"cpf"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	DeliveryCompleted bool      `json:"entrega_realizada" db:"delivery_completed"`
	Rating            *float64  `json:"avaliacao" db:"rating"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type SignupRequest struct {
	UserType string `json:"tipo_usuario"`
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
	CPF      *int64 `json:"cpf"`
}

type LoginRequest struct {
	Name     string `json:"nome"`
	Password string `json:"senha"`
	Email    string `json:"email"`
}

// UserSummary is the account projection returned by the login routes.
type UserSummary struct {
	ID     int64    `json:"id"`
	Name   string   `json:"nome"`
	Email  string   `json:"email"`
	Rating *float64 `json:"avaliacao"`
}
