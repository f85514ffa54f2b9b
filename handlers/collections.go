package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"

	"ReciclaBackend/database"
	"ReciclaBackend/middleware"
	"ReciclaBackend/models"

	"github.com/gorilla/mux"
)

type CreateCollectionResponse struct {
	Message  string `json:"message"`
	ColetaID int64  `json:"coleta_id"`
}

// CreateCollection stores a new waste-collection request for the
// calling donor. The item starts unassigned and not delivered.
func CreateCollection(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok || identity.Role != models.RoleDonor {
		respondWithError(w, http.StatusForbidden, "Apenas doadores podem criar coletas")
		return
	}

	var req models.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	// Required fields, reported one at a time in a fixed order.
	missing := ""
	switch {
	case req.Type == nil || *req.Type == "":
		missing = "tipo"
	case req.Weight == nil:
		missing = "peso"
	case req.Latitude == nil:
		missing = "latitude"
	case req.Longitude == nil:
		missing = "longitude"
	}
	if missing != "" {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("campo obrigatorio faltando: %s", missing))
		return
	}

	if (req.Unit == nil || *req.Unit == "") && req.Quantity == nil {
		respondWithError(w, http.StatusBadRequest, "É necessário informar unidade ou quantidade")
		return
	}

	weight, err := parseWeight(req.Weight)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Peso inválido")
		return
	}
	if weight <= 0 {
		respondWithError(w, http.StatusBadRequest, "o peso deve ser maior que zero")
		return
	}

	var id int64
	err = database.DB.QueryRowContext(r.Context(),
		`INSERT INTO waste_items (donor_id, material_type, weight, unit, quantity, latitude, longitude, delivered)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, false)
		 RETURNING id`,
		identity.ID, *req.Type, weight, req.Unit, req.Quantity, *req.Latitude, *req.Longitude,
	).Scan(&id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao criar coleta")
		return
	}

	respondWithJSON(w, http.StatusCreated, CreateCollectionResponse{
		Message:  "Coleta criada com sucesso",
		ColetaID: id,
	})
}

func parseWeight(v interface{}) (float64, error) {
	var weight float64
	switch value := v.(type) {
	case float64:
		weight = value
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, err
		}
		weight = parsed
	default:
		return 0, fmt.Errorf("unsupported weight type %T", v)
	}

	// ParseFloat accepts "NaN" and "Inf"; neither is a weight.
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, fmt.Errorf("non-finite weight")
	}
	return weight, nil
}

// ListAvailableCollections returns every item no collector has claimed.
func ListAvailableCollections(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok || identity.Role != models.RoleCollector {
		respondWithError(w, http.StatusForbidden, "Apenas coletores podem acessar")
		return
	}

	rows, err := database.DB.QueryContext(r.Context(),
		`SELECT id, material_type, weight, unit, quantity, latitude, longitude, donor_id
		 FROM waste_items
		 WHERE collector_id IS NULL
		 ORDER BY id`,
	)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	available := []models.AvailableCollection{}
	for rows.Next() {
		var item models.AvailableCollection
		if err := rows.Scan(&item.ID, &item.Type, &item.Weight, &item.Unit,
			&item.Quantity, &item.Latitude, &item.Longitude, &item.DonorID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Erro ao ler coletas")
			return
		}
		available = append(available, item)
	}
	if err := rows.Err(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao ler coletas")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"coletas_disponiveis": available,
	})
}

// AcceptCollection claims an unassigned item for the calling collector.
// The claim is a conditional update so two collectors cannot both win;
// the loser gets 409 instead of silently reassigning the item.
func AcceptCollection(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok || identity.Role != models.RoleCollector {
		respondWithError(w, http.StatusForbidden, "Apenas coletores podem aceitar coletas")
		return
	}

	vars := mux.Vars(r)
	itemID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Coleta nao encontrada")
		return
	}

	var donorID int64
	var materialType string
	err = database.DB.QueryRowContext(r.Context(),
		"SELECT donor_id, material_type FROM waste_items WHERE id = $1",
		itemID,
	).Scan(&donorID, &materialType)
	if errors.Is(err, sql.ErrNoRows) {
		respondWithError(w, http.StatusNotFound, "Coleta nao encontrada")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	result, err := database.DB.ExecContext(r.Context(),
		`UPDATE waste_items
		 SET collector_id = $1, delivered = false
		 WHERE id = $2 AND collector_id IS NULL`,
		identity.ID, itemID,
	)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao aceitar coleta")
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		respondWithError(w, http.StatusConflict, "Coleta já aceita por outro coletor")
		return
	}

	recordAcceptance(r, identity.ID, donorID, itemID, materialType)

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Coleta aceita com sucesso"})
}

// recordAcceptance writes the bookkeeping rows for a claimed item:
// a notification for the donor, a history entry for each party, and a
// delivery record. Failures are logged, not surfaced; the claim itself
// already committed.
func recordAcceptance(r *http.Request, collectorID, donorID, itemID int64, materialType string) {
	ctx := r.Context()

	if _, err := database.DB.ExecContext(ctx,
		"INSERT INTO notifications (donor_id, message) VALUES ($1, $2)",
		donorID, fmt.Sprintf("Sua coleta #%d foi aceita por um coletor", itemID),
	); err != nil {
		log.Printf("failed to record notification for item %d: %v", itemID, err)
	}

	if _, err := database.DB.ExecContext(ctx,
		"INSERT INTO history_entries (collector_id, was_collection) VALUES ($1, true)",
		collectorID,
	); err != nil {
		log.Printf("failed to record collector history for item %d: %v", itemID, err)
	}

	if _, err := database.DB.ExecContext(ctx,
		"INSERT INTO history_entries (donor_id, was_donation) VALUES ($1, true)",
		donorID,
	); err != nil {
		log.Printf("failed to record donor history for item %d: %v", itemID, err)
	}

	if _, err := database.DB.ExecContext(ctx,
		`INSERT INTO deliveries (name, start_location, end_location, collector_id, donor_id, note)
		 VALUES ($1, '', '', $2, $3, $4)`,
		fmt.Sprintf("Coleta #%d", itemID), collectorID, donorID,
		fmt.Sprintf("Coleta de %s aceita", materialType),
	); err != nil {
		log.Printf("failed to record delivery for item %d: %v", itemID, err)
	}
}
