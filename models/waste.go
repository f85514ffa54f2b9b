package models

import "time"

// WasteItem is a posted collection request. It is created with no
// collector assigned; a collector claims it exactly once.
type WasteItem struct {
	ID          int64     `json:"id" db:"id"`
	CollectorID *int64    `json:"coletor_id" db:"collector_id"`
	DonorID     int64     `json:"doador_id" db:"donor_id"`
	Type        string    `json:"tipo" db:"material_type"`
	Weight      float64   `json:"peso" db:"weight"`
	Unit        *string   `json:"unidade" db:"unit"`
	Quantity    *int64    `json:"quantidade" db:"quantity"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	Delivered   bool      `json:"entregue" db:"delivered"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateCollectionRequest uses pointer fields so a missing key is
// distinguishable from a zero value. Weight stays untyped because the
// contract accepts peso both as a JSON number and as a numeric string;
// the handler parses and rejects it separately from missing-field
// validation.
type CreateCollectionRequest struct {
	Type      *string     `json:"tipo"`
	Weight    interface{} `json:"peso"`
	Unit      *string     `json:"unidade"`
	Quantity  *int64      `json:"quantidade"`
	Latitude  *float64    `json:"latitude"`
	Longitude *float64    `json:"longitude"`
}

// AvailableCollection is the unclaimed-item projection served to collectors.
type AvailableCollection struct {
	ID        int64   `json:"id"`
	Type      string  `json:"tipo"`
	Weight    float64 `json:"peso"`
	Unit      *string `json:"unidade"`
	Quantity  *int64  `json:"quantidade"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	DonorID   int64   `json:"doador_id"`
}
