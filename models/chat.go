package models

import "time"

// MaxMessageLength caps chat message text.
const MaxMessageLength = 500

// Message is a direct chat message. Sender and recipient ids are plain
// numeric account ids with no role attached, as on the wire.
type Message struct {
	ID          int64     `json:"id" db:"id"`
	SenderID    int64     `json:"remetente_id" db:"sender_id"`
	RecipientID int64     `json:"destinatario_id" db:"recipient_id"`
	Text        string    `json:"texto" db:"text"`
	SentAt      time.Time `json:"data_envio" db:"sent_at"`
}

type SendMessageRequest struct {
	RecipientID *int64 `json:"destinatario_id"`
	Text        string `json:"texto"`
}
