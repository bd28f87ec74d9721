package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lluisEvan/ProjetoAppFiscal/internal/auth"
	"github.com/lluisEvan/ProjetoAppFiscal/internal/config"
	"github.com/lluisEvan/ProjetoAppFiscal/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

const testJWTSecret = "test-secret-key-12345678901234567890123456789012"

func newMockedServer(userRepo *MockUserRepository) *Server {
	return &Server{
		config:   &config.Config{JWTSecret: testJWTSecret},
		tokens:   auth.NewTokenIssuer(testJWTSecret),
		userRepo: userRepo,
	}
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "password123",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmailOrUsername", mock.Anything, "test@example.com", "testuser").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*models.User).ID = 1
				})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Email is normalized before lookup",
			body: map[string]string{
				"username": "testuser",
				"email":    "  Test@Example.COM ",
				"password": "password123",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmailOrUsername", mock.Anything, "test@example.com", "testuser").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*models.User).ID = 2
				})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing fields",
			body:           map[string]string{"email": "test@example.com"},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid email shape",
			body: map[string]string{
				"username": "testuser",
				"email":    "not-an-email",
				"password": "password123",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Username too short",
			body: map[string]string{
				"username": "ab",
				"email":    "test@example.com",
				"password": "password123",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Password too short",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "short",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate identifier",
			body: map[string]string{
				"username": "testuser",
				"email":    "exists@example.com",
				"password": "password123",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmailOrUsername", mock.Anything, "exists@example.com", "testuser").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Insert race maps conflict to 400",
			body: map[string]string{
				"username": "testuser",
				"email":    "race@example.com",
				"password": "password123",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmailOrUsername", mock.Anything, "race@example.com", "testuser").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(models.NewConflictError("Email or username already in use"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := newMockedServer(mockRepo)

			app := fiber.New()
			app.Post("/register", s.Register)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				payload := decodeBody(t, resp)
				assert.NotEmpty(t, payload["token"])
				user := payload["user"].(map[string]any)
				assert.NotContains(t, user, "password")
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRegister_NoMutationOnValidationFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	s := newMockedServer(mockRepo)

	app := fiber.New()
	app.Post("/register", s.Register)

	body, _ := json.Marshal(map[string]string{
		"username": "testuser",
		"email":    "bad-email",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	digest, err := auth.HashPassword("correct-password")
	require.NoError(t, err)
	stored := &models.User{ID: 7, Email: "ana@example.com", Username: "ana", Password: digest}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			body: map[string]string{"email": "ana@example.com", "password": "correct-password"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "ana@example.com").Return(stored, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing password",
			body:           map[string]string{"email": "ana@example.com"},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown email",
			body: map[string]string{"email": "ghost@example.com", "password": "whatever123"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid credentials",
		},
		{
			name: "Wrong password",
			body: map[string]string{"email": "ana@example.com", "password": "wrong-password"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "ana@example.com").Return(stored, nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := newMockedServer(mockRepo)

			app := fiber.New()
			app.Post("/login", s.Login)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			payload := decodeBody(t, resp)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, payload["error"])
			}
			if tt.expectedStatus == http.StatusOK {
				assert.NotEmpty(t, payload["token"])
				user := payload["user"].(map[string]any)
				assert.Equal(t, "ana", user["username"])
				assert.NotContains(t, user, "password")
			}
		})
	}
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	digest, err := auth.HashPassword("correct-password")
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "known@example.com").
		Return(&models.User{ID: 1, Email: "known@example.com", Password: digest}, nil)
	mockRepo.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, nil)

	s := newMockedServer(mockRepo)
	app := fiber.New()
	app.Post("/login", s.Login)

	responses := make([]map[string]any, 0, 2)
	for _, email := range []string{"known@example.com", "unknown@example.com"} {
		body, _ := json.Marshal(map[string]string{"email": email, "password": "bad-guess-99"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		responses = append(responses, decodeBody(t, resp))
		_ = resp.Body.Close()
	}

	assert.Equal(t, responses[0]["error"], responses[1]["error"])
}

func TestGetProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	user := &models.User{ID: 3, Email: "mara@example.com", Username: "mara"}
	mockRepo.On("GetByID", mock.Anything, uint(3)).Return(user, nil)

	s := newMockedServer(mockRepo)
	app := fiber.New()
	app.Get("/profile", s.AuthRequired(), s.GetProfile)

	token, err := s.tokens.Issue(3)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp)
	got := payload["user"].(map[string]any)
	assert.Equal(t, "mara", got["username"])
	assert.NotContains(t, got, "password")
}

func TestUpdateProfile_LoginSurvivesRename(t *testing.T) {
	s, app, db := newDBServer(t)
	_, token := registerDBUser(t, s, db, "rename@example.com", "before")

	body, contentType := multipartImage(t, map[string]string{"username": "after"}, "", "")
	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	login, err := json.Marshal(map[string]string{"email": "rename@example.com", "password": "password123"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")

	resp, err = app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp)
	got := payload["user"].(map[string]any)
	assert.Equal(t, "after", got["username"])
}
