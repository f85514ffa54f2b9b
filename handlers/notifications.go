package handlers

import (
	"net/http"
	"strconv"

	"ReciclaBackend/database"
	"ReciclaBackend/middleware"
	"ReciclaBackend/models"

	"github.com/gorilla/mux"
)

// ListNotifications returns the caller's notifications, newest first.
func ListNotifications(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	query := `SELECT id, donor_id, collector_id, message, seen, created_at
	 FROM notifications
	 WHERE donor_id = $1
	 ORDER BY created_at DESC, id DESC`
	if identity.Role == models.RoleCollector {
		query = `SELECT id, donor_id, collector_id, message, seen, created_at
	 FROM notifications
	 WHERE collector_id = $1
	 ORDER BY created_at DESC, id DESC`
	}

	rows, err := database.DB.QueryContext(r.Context(), query, identity.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.DonorID, &n.CollectorID, &n.Message, &n.Seen, &n.CreatedAt); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Erro ao ler notificações")
			return
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao ler notificações")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"notificacoes": notifications,
	})
}

// MarkNotificationSeen flags one of the caller's notifications as seen.
func MarkNotificationSeen(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	vars := mux.Vars(r)
	notificationID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Notificação não encontrada")
		return
	}

	query := "UPDATE notifications SET seen = true WHERE id = $1 AND donor_id = $2"
	if identity.Role == models.RoleCollector {
		query = "UPDATE notifications SET seen = true WHERE id = $1 AND collector_id = $2"
	}

	result, err := database.DB.ExecContext(r.Context(), query, notificationID, identity.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		respondWithError(w, http.StatusNotFound, "Notificação não encontrada")
		return
	}

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Notificação visualizada"})
}
