package models

import "time"

// HistoryEntry records that an account took part in a collection or a
// donation. The two flags are independent.
type HistoryEntry struct {
	ID            int64     `json:"id" db:"id"`
	CollectorID   *int64    `json:"coletor_id" db:"collector_id"`
	DonorID       *int64    `json:"doador_id" db:"donor_id"`
	WasCollection bool      `json:"coleta" db:"was_collection"`
	WasDonation   bool      `json:"doacao" db:"was_donation"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type Delivery struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"nome" db:"name"`
	StartLocation string    `json:"local_inicial" db:"start_location"`
	EndLocation   string    `json:"local_final" db:"end_location"`
	CollectorID   *int64    `json:"coletor_id" db:"collector_id"`
	DonorID       *int64    `json:"doador_id" db:"donor_id"`
	Note          string    `json:"historico" db:"note"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type Notification struct {
	ID          int64     `json:"id" db:"id"`
	DonorID     *int64    `json:"doador_id" db:"donor_id"`
	CollectorID *int64    `json:"coletor_id" db:"collector_id"`
	Message     string    `json:"mensagem" db:"message"`
	Seen        bool      `json:"visualizada" db:"seen"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
