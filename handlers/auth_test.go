package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ReciclaBackend/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var donorColumns = []string{
	"id", "name", "email", "cpf", "password_hash",
	"delivery_completed", "rating", "created_at", "updated_at",
}

var collectorColumns = []string{
	"id", "name", "email", "cpf", "password_hash",
	"accepting_collections", "rating", "created_at", "updated_at",
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginDonor(t *testing.T) {
	hash := hashPassword(t, "p1")
	now := time.Now()

	tests := []struct {
		name           string
		requestBody    string
		setupMocks     func(mock sqlmock.Sqlmock)
		expectedStatus int
	}{
		{
			name:        "successful login",
			requestBody: `{"nome":"Ana","senha":"p1","email":"a@x.com"}`,
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM donors WHERE name").
					WithArgs("Ana").
					WillReturnRows(sqlmock.NewRows(donorColumns).
						AddRow(1, "Ana", "a@x.com", nil, hash, false, nil, now, now))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "wrong password",
			requestBody: `{"nome":"Ana","senha":"wrong","email":"a@x.com"}`,
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM donors WHERE name").
					WithArgs("Ana").
					WillReturnRows(sqlmock.NewRows(donorColumns).
						AddRow(1, "Ana", "a@x.com", nil, hash, false, nil, now, now))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "wrong email",
			requestBody: `{"nome":"Ana","senha":"p1","email":"other@x.com"}`,
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM donors WHERE name").
					WithArgs("Ana").
					WillReturnRows(sqlmock.NewRows(donorColumns).
						AddRow(1, "Ana", "a@x.com", nil, hash, false, nil, now, now))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "unknown name",
			requestBody: `{"nome":"Zoe","senha":"p1","email":"z@x.com"}`,
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM donors WHERE name").
					WithArgs("Zoe").
					WillReturnError(sql.ErrNoRows)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := newMockDB(t)
			tc.setupMocks(mock)

			req := httptest.NewRequest(http.MethodPost, "/login/Doador", bytes.NewReader([]byte(tc.requestBody)))
			rr := httptest.NewRecorder()

			LoginDonor(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.NoError(t, mock.ExpectationsWereMet())

			if tc.expectedStatus == http.StatusOK {
				var resp LoginResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
				assert.NotEmpty(t, resp.Token)
				require.NotNil(t, resp.User)
				assert.Equal(t, int64(1), resp.User.ID)
				assert.Equal(t, "Ana", resp.User.Name)
			}
		})
	}
}

func TestLoginCollector(t *testing.T) {
	hash := hashPassword(t, "p2")
	now := time.Now()

	mock := newMockDB(t)
	mock.ExpectQuery("FROM collectors WHERE name").
		WithArgs("Bruno").
		WillReturnRows(sqlmock.NewRows(collectorColumns).
			AddRow(2, "Bruno", "b@x.com", nil, hash, false, nil, now, now))

	body := []byte(`{"nome":"Bruno","senha":"p2","email":"b@x.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/login/Coletor", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	LoginCollector(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(2), resp.User.ID)
}

func TestLogoutRevokesToken(t *testing.T) {
	identity := donorIdentity(1)
	identity.TokenID = "test-jti-logout"
	identity.ExpiresAt = time.Now().Add(time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	rr := httptest.NewRecorder()

	Logout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, middleware.IsTokenRevoked("test-jti-logout"))
}

func TestLogoutWithoutSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rr := httptest.NewRecorder()

	Logout(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
