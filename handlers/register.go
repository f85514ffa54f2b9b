package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ReciclaBackend/database"
	"ReciclaBackend/models"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Postgres error code for unique_violation.
const uniqueViolation = "23505"

// Signup creates a donor or collector account. The role arrives as an
// explicit tipo_usuario field rather than ambient session state.
func Signup(w http.ResponseWriter, r *http.Request) {
	var signup models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&signup); err != nil {
		respondWithError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	if !models.ValidRole(signup.UserType) {
		respondWithError(w, http.StatusBadRequest, "tipo_usuario inválido")
		return
	}

	if signup.Name == "" || signup.Email == "" || signup.Password == "" {
		respondWithError(w, http.StatusBadRequest, "nome, email e senha são obrigatórios")
		return
	}

	role := models.Role(signup.UserType)

	exists, err := database.EmailExists(r.Context(), role, signup.Email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	if exists {
		respondWithError(w, http.StatusConflict, "Email já cadastrado")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Erro ao processar a senha")
		return
	}

	var id int64
	switch role {
	case models.RoleDonor:
		err = database.DB.QueryRowContext(r.Context(),
			`INSERT INTO donors (name, email, cpf, password_hash)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			signup.Name, signup.Email, signup.CPF, string(hashedPassword),
		).Scan(&id)
	case models.RoleCollector:
		err = database.DB.QueryRowContext(r.Context(),
			`INSERT INTO collectors (name, email, cpf, password_hash)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			signup.Name, signup.Email, signup.CPF, string(hashedPassword),
		).Scan(&id)
	}
	if err != nil {
		// The EmailExists check above is only a fast path; a concurrent
		// signup can still trip the unique constraint on insert.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			respondWithError(w, http.StatusConflict, "Email já cadastrado")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Erro ao criar usuário")
		return
	}

	if role == models.RoleDonor {
		respondWithJSON(w, http.StatusCreated, MessageResponse{Message: "Cadastro de doador realizado com sucesso"})
		return
	}
	respondWithJSON(w, http.StatusCreated, MessageResponse{Message: "Cadastro de coletor realizado com sucesso"})
}
