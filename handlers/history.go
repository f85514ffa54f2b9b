package handlers

import (
	"net/http"

	"ReciclaBackend/database"
	"ReciclaBackend/middleware"
	"ReciclaBackend/models"
)

// ListHistory returns the caller's history entries, newest first.
func ListHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	query := `SELECT id, collector_id, donor_id, was_collection, was_donation, created_at
	 FROM history_entries
	 WHERE donor_id = $1
	 ORDER BY created_at DESC, id DESC`
	if identity.Role == models.RoleCollector {
		query = `SELECT id, collector_id, donor_id, was_collection, was_donation, created_at
	 FROM history_entries
	 WHERE collector_id = $1
	 ORDER BY created_at DESC, id DESC`
	}

	rows, err := database.DB.QueryContext(r.Context(), query, identity.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.CollectorID, &e.DonorID, &e.WasCollection, &e.WasDonation, &e.CreatedAt); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Erro ao ler histórico")
			return
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao ler histórico")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"historico": entries,
	})
}
