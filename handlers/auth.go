package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"ReciclaBackend/database"
	"ReciclaBackend/middleware"
	"ReciclaBackend/models"

	"golang.org/x/crypto/bcrypt"
)

type LoginResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	User    *models.UserSummary `json:"user"`
	Token   string              `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// LoginDonor authenticates a donor by name. Both the password and the
// email must match the stored account.
func LoginDonor(w http.ResponseWriter, r *http.Request) {
	var login models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
		respondWithError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	donor, err := database.GetDonorByName(r.Context(), login.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithError(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(donor.PasswordHash), []byte(login.Password)) != nil ||
		login.Email != donor.Email {
		respondWithError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	token, err := middleware.GenerateToken(donor.ID, models.RoleDonor)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao gerar token")
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login realizado com sucesso",
		User: &models.UserSummary{
			ID:     donor.ID,
			Name:   donor.Name,
			Email:  donor.Email,
			Rating: donor.Rating,
		},
		Token: token,
	})
}

func LoginCollector(w http.ResponseWriter, r *http.Request) {
	var login models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
		respondWithError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	collector, err := database.GetCollectorByName(r.Context(), login.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithError(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(collector.PasswordHash), []byte(login.Password)) != nil ||
		login.Email != collector.Email {
		respondWithError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	token, err := middleware.GenerateToken(collector.ID, models.RoleCollector)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao gerar token")
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login realizado com sucesso",
		User: &models.UserSummary{
			ID:     collector.ID,
			Name:   collector.Name,
			Email:  collector.Email,
			Rating: collector.Rating,
		},
		Token: token,
	})
}

// Logout revokes the presented session token.
func Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	middleware.RevokeToken(identity.TokenID, identity.ExpiresAt)
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Logout realizado com sucesso"})
}

// GetMe returns the calling account without its password hash.
func GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	switch identity.Role {
	case models.RoleDonor:
		donor, err := database.GetDonorByID(r.Context(), identity.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondWithError(w, http.StatusNotFound, "Usuário não encontrado")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
			return
		}
		respondWithJSON(w, http.StatusOK, donor)
	case models.RoleCollector:
		collector, err := database.GetCollectorByID(r.Context(), identity.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondWithError(w, http.StatusNotFound, "Usuário não encontrado")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
			return
		}
		respondWithJSON(w, http.StatusOK, collector)
	default:
		respondWithError(w, http.StatusUnauthorized, "Não autenticado")
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, MessageResponse{Message: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
