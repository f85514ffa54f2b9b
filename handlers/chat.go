package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"unicode/utf8"

	"ReciclaBackend/database"
	"ReciclaBackend/middleware"
	"ReciclaBackend/models"

	"github.com/gorilla/mux"
)

type SendMessageResponse struct {
	Message  string         `json:"message"`
	Mensagem models.Message `json:"mensagem"`
}

// SendMessage stores a direct message from the authenticated caller.
// The sender id always comes from the session, never from the body.
func SendMessage(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	if req.RecipientID == nil || req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "Destinatário ou texto ausente")
		return
	}

	// The limit counts characters, not bytes; accented text must not
	// burn through it twice as fast.
	if utf8.RuneCountInString(req.Text) > models.MaxMessageLength {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Texto excede o limite de %d caracteres", models.MaxMessageLength))
		return
	}

	message := models.Message{
		SenderID:    identity.ID,
		RecipientID: *req.RecipientID,
		Text:        req.Text,
	}

	err := database.DB.QueryRowContext(r.Context(),
		`INSERT INTO messages (sender_id, recipient_id, text)
		 VALUES ($1, $2, $3)
		 RETURNING id, sent_at`,
		message.SenderID, message.RecipientID, message.Text,
	).Scan(&message.ID, &message.SentAt)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao enviar mensagem")
		return
	}

	respondWithJSON(w, http.StatusOK, SendMessageResponse{
		Message:  "Mensagem enviada com sucesso",
		Mensagem: message,
	})
}

// ListMessages returns the full two-way conversation between the caller
// and the other party, oldest first.
func ListMessages(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	vars := mux.Vars(r)
	otherID, err := strconv.ParseInt(vars["destinatario_id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "destinatario_id inválido")
		return
	}

	rows, err := database.DB.QueryContext(r.Context(),
		`SELECT id, sender_id, recipient_id, text, sent_at
		 FROM messages
		 WHERE (sender_id = $1 AND recipient_id = $2)
		    OR (sender_id = $2 AND recipient_id = $1)
		 ORDER BY sent_at, id`,
		identity.ID, otherID,
	)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Text, &m.SentAt); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Erro ao ler mensagens")
			return
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao ler mensagens")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"mensagens": messages,
	})
}
