package handlers

import (
	"net/http"

	"ReciclaBackend/database"
	"ReciclaBackend/middleware"
	"ReciclaBackend/models"
)

// ListDeliveries returns delivery records referencing the caller,
// newest first.
func ListDeliveries(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	query := `SELECT id, name, start_location, end_location, collector_id, donor_id, note, created_at
	 FROM deliveries
	 WHERE donor_id = $1
	 ORDER BY created_at DESC, id DESC`
	if identity.Role == models.RoleCollector {
		query = `SELECT id, name, start_location, end_location, collector_id, donor_id, note, created_at
	 FROM deliveries
	 WHERE collector_id = $1
	 ORDER BY created_at DESC, id DESC`
	}

	rows, err := database.DB.QueryContext(r.Context(), query, identity.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	deliveries := []models.Delivery{}
	for rows.Next() {
		var d models.Delivery
		if err := rows.Scan(&d.ID, &d.Name, &d.StartLocation, &d.EndLocation,
			&d.CollectorID, &d.DonorID, &d.Note, &d.CreatedAt); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Erro ao ler entregas")
			return
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao ler entregas")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entregas": deliveries,
	})
}
