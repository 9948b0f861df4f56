package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"healthrecord/internal/analyzer"
	"healthrecord/internal/auth"
	"healthrecord/internal/middleware"
	"healthrecord/internal/mocks"
	"healthrecord/internal/models"
	"healthrecord/internal/repository"
	"healthrecord/internal/services"
	"healthrecord/internal/storage"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func addUserAuthMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file here"))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

type reportMocks struct {
	repo     *mocks.MockReportRepository
	store    *mocks.MockObjectStore
	analyzer *mocks.MockAnalyzer
}

func setupReportRouter(production bool) (*gin.Engine, *reportMocks) {
	m := &reportMocks{
		repo:     new(mocks.MockReportRepository),
		store:    new(mocks.MockObjectStore),
		analyzer: new(mocks.MockAnalyzer),
	}
	svc := services.NewReportService(m.repo, m.store, m.analyzer, nil, "reports", zap.NewNop())
	controller := NewReportController(svc, production)

	router := setupTestRouter()
	group := router.Group("/report", addUserAuthMiddleware(5))
	group.POST("/upload", controller.UploadReport)
	group.GET("/myreports", controller.MyReports)
	group.GET("/insights", controller.Insights)
	group.GET("/:id", controller.GetReport)
	group.DELETE("/:id", controller.DeleteReport)
	return router, m
}

func TestUploadReport(t *testing.T) {
	obj := &storage.Object{URL: "https://cdn.example.com/reports/a.pdf", Handle: "reports/a.pdf"}

	tests := []struct {
		name           string
		field          string
		data           []byte
		production     bool
		setupMocks     func(*reportMocks)
		expectedStatus int
		expectedMsg    string
		expectedError  string
		storePuts      int
		storeDeletes   int
	}{
		{
			name:  "successful upload",
			field: "file",
			data:  pdfBytes,
			setupMocks: func(m *reportMocks) {
				m.analyzer.On("Analyze", mock.Anything, pdfBytes, services.MimePDF).
					Return(&analyzer.Result{OK: true, Fields: &analyzer.Fields{Title: "CBC"}}, nil)
				m.store.On("Put", mock.Anything, pdfBytes, mock.Anything).Return(obj, nil)
				m.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Report uploaded successfully",
			storePuts:      1,
		},
		{
			name:           "missing file",
			setupMocks:     func(m *reportMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "File is required",
		},
		{
			name:           "six megabyte file",
			field:          "file",
			data:           bytes.Repeat([]byte("a"), 6<<20),
			setupMocks:     func(m *reportMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "File size exceeds 5MB limit",
		},
		{
			name:           "unsupported type",
			field:          "file",
			data:           []byte("plain text is not a report"),
			setupMocks:     func(m *reportMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Only PDF, PNG and JPEG files are allowed",
		},
		{
			name:  "analyzer failure",
			field: "file",
			data:  pdfBytes,
			setupMocks: func(m *reportMocks) {
				m.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).
					Return(&analyzer.Result{OK: false, Message: "No structured data found."}, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "No structured data found.",
		},
		{
			name:  "provider error shown outside production",
			field: "file",
			data:  pdfBytes,
			setupMocks: func(m *reportMocks) {
				m.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).
					Return(analyzer.Failed(errors.New("googleapi: Error 403: API key AIzaTEST not valid")), nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    analyzer.MessageAnalysisError,
			expectedError:  "googleapi: Error 403: API key AIzaTEST not valid",
		},
		{
			name:       "provider error hidden in production",
			field:      "file",
			data:       pdfBytes,
			production: true,
			setupMocks: func(m *reportMocks) {
				m.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).
					Return(analyzer.Failed(errors.New("googleapi: Error 403: API key AIzaTEST not valid")), nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    analyzer.MessageAnalysisError,
		},
		{
			name:  "storage failure",
			field: "file",
			data:  pdfBytes,
			setupMocks: func(m *reportMocks) {
				m.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).
					Return(&analyzer.Result{OK: true, Fields: &analyzer.Fields{}}, nil)
				m.store.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("bucket unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Error uploading file to storage",
			expectedError:  "bucket unavailable",
			storePuts:      1,
		},
		{
			name:  "persistence failure compensates",
			field: "file",
			data:  pdfBytes,
			setupMocks: func(m *reportMocks) {
				m.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).
					Return(&analyzer.Result{OK: true, Fields: &analyzer.Fields{}}, nil)
				m.store.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(obj, nil)
				m.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
				m.store.On("Delete", mock.Anything, "reports/a.pdf").Return(nil)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Error saving report to database",
			expectedError:  "connection reset",
			storePuts:      1,
			storeDeletes:   1,
		},
		{
			name:       "persistence failure hides cause in production",
			field:      "file",
			data:       pdfBytes,
			production: true,
			setupMocks: func(m *reportMocks) {
				m.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).
					Return(&analyzer.Result{OK: true, Fields: &analyzer.Fields{}}, nil)
				m.store.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(obj, nil)
				m.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
				m.store.On("Delete", mock.Anything, "reports/a.pdf").Return(errors.New("still down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Error saving report to database",
			expectedError:  "Internal server error",
			storePuts:      1,
			storeDeletes:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := setupReportRouter(tt.production)
			tt.setupMocks(m)

			body, contentType := multipartBody(t, tt.field, "report.pdf", "application/pdf", tt.data)
			req := httptest.NewRequest(http.MethodPost, "/report/upload", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.production {
				assert.NotContains(t, w.Body.String(), "AIzaTEST")
			}
			resp := decodeBody(t, w)
			assert.Equal(t, tt.expectedStatus == http.StatusOK, resp["success"])
			assert.Equal(t, tt.expectedMsg, resp["message"])
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, resp["error"])
			} else {
				assert.NotContains(t, resp, "error")
			}
			if tt.expectedStatus == http.StatusOK {
				report := resp["report"].(map[string]interface{})
				assert.Equal(t, "CBC", report["title"])
				assert.Equal(t, obj.URL, report["file_url"])
			}

			m.store.AssertNumberOfCalls(t, "Put", tt.storePuts)
			m.store.AssertNumberOfCalls(t, "Delete", tt.storeDeletes)
			if tt.expectedStatus == http.StatusBadRequest {
				m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestGetReport(t *testing.T) {
	router, m := setupReportRouter(false)
	m.repo.On("FindOwned", mock.Anything, uint(3), uint(5)).Return(&models.Report{ID: 3, UserID: 5, Title: "CBC"}, nil)
	m.repo.On("FindOwned", mock.Anything, uint(4), uint(5)).Return(nil, repository.ErrNotFound)

	tests := []struct {
		path   string
		status int
		msg    string
	}{
		{"/report/3", http.StatusOK, ""},
		{"/report/4", http.StatusNotFound, "Report not found"},
		{"/report/abc", http.StatusBadRequest, "Invalid report ID"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

		assert.Equal(t, tt.status, w.Code, tt.path)
		if tt.msg != "" {
			assert.Equal(t, tt.msg, decodeBody(t, w)["message"])
		}
	}
}

func TestMyReportsAndInsights(t *testing.T) {
	router, m := setupReportRouter(false)
	m.repo.On("ListByUser", mock.Anything, uint(5)).Return([]models.Report{
		{ID: 2, UserID: 5, Filename: "b.pdf"},
		{ID: 1, UserID: 5, Title: "CBC", Summary: "Blood"},
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report/myreports", nil))
	require.Equal(t, http.StatusOK, w.Code)
	reports := decodeBody(t, w)["reports"].([]interface{})
	require.Len(t, reports, 2)
	assert.Equal(t, float64(2), reports[0].(map[string]interface{})["id"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report/insights", nil))
	require.Equal(t, http.StatusOK, w.Code)
	insights := decodeBody(t, w)["insights"].([]interface{})
	require.Len(t, insights, 2)
	first := insights[0].(map[string]interface{})
	assert.Equal(t, "b.pdf", first["report_title"])
	assert.Equal(t, "No summary available", first["summary"])
}

func TestDeleteReport(t *testing.T) {
	router, m := setupReportRouter(false)
	m.repo.On("FindOwned", mock.Anything, uint(3), uint(5)).Return(&models.Report{ID: 3, UserID: 5, StorageHandle: "reports/a.pdf"}, nil)
	m.store.On("Delete", mock.Anything, "reports/a.pdf").Return(errors.New("forbidden"))
	m.repo.On("Delete", mock.Anything, uint(3), uint(5)).Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/report/3", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["object_removed"])
	m.repo.AssertExpectations(t)
}

func setupAuthRouter() (*gin.Engine, *mocks.MockUserRepository) {
	users := new(mocks.MockUserRepository)
	svc := services.NewAuthService(users, auth.NewTokenManager("test-secret", time.Hour), bcrypt.MinCost, zap.NewNop())
	authController := NewAuthController(svc, false)
	profileController := NewProfileController(svc, false)

	router := setupTestRouter()
	router.POST("/auth/signup", authController.Signup)
	router.POST("/auth/login", authController.Login)
	router.POST("/auth/logout", addUserAuthMiddleware(4), authController.Logout)
	router.GET("/profile/getuser", addUserAuthMiddleware(4), profileController.GetUser)
	router.GET("/profile/getallusers", addUserAuthMiddleware(4), profileController.GetAllUsers)
	return router, users
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
		expectedMsg    string
		checkToken     bool
	}{
		{
			name: "successful signup",
			requestBody: map[string]interface{}{
				"firstname": "John", "lastname": "Smith", "email": "john@example.com", "password": "Str0ng!Pass",
			},
			setupMocks: func(users *mocks.MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "john@example.com").Return(nil, repository.ErrNotFound)
				users.On("Create", mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) { args.Get(1).(*models.User).ID = 4 }).
					Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "User signed up successfully",
			checkToken:     true,
		},
		{
			name: "weak password",
			requestBody: map[string]interface{}{
				"firstname": "John", "lastname": "Smith", "email": "john@example.com", "password": "password",
			},
			setupMocks:     func(users *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Password must be strong (min 8 chars, uppercase, lowercase, number, symbol)",
		},
		{
			name: "email taken",
			requestBody: map[string]interface{}{
				"firstname": "John", "lastname": "Smith", "email": "john@example.com", "password": "Str0ng!Pass",
			},
			setupMocks: func(users *mocks.MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "john@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, users := setupAuthRouter()
			tt.setupMocks(users)

			w := postJSON(router, "/auth/signup", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.expectedMsg, body["message"])
			if tt.checkToken {
				assert.NotEmpty(t, body["token"])
				user := body["user"].(map[string]interface{})
				assert.NotContains(t, user, "password")
			} else {
				assert.NotContains(t, body, "token")
				users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestLoginAndLogout(t *testing.T) {
	router, users := setupAuthRouter()
	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!Pass"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("FindByEmail", mock.Anything, "john@example.com").Return(&models.User{ID: 4, Email: "john@example.com", Password: string(hash)}, nil)

	w := postJSON(router, "/auth/login", map[string]string{"email": "john@example.com", "password": "Str0ng!Pass"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = postJSON(router, "/auth/login", map[string]string{"email": "john@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["message"])

	w = postJSON(router, "/auth/login", map[string]string{"email": "john@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(router, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logout successful", decodeBody(t, w)["message"])
}

func TestProfile(t *testing.T) {
	router, users := setupAuthRouter()
	users.On("FindByID", mock.Anything, uint(4)).Return(&models.User{ID: 4, Firstname: "John", Email: "john@example.com", Password: "hash"}, nil)
	users.On("FindAll", mock.Anything).Return([]models.User{{ID: 4}, {ID: 5}}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile/getuser", nil))
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "John", user["firstname"])
	assert.NotContains(t, user, "password")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile/getallusers", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["users"], 2)
}

func setupVitalsRouter() (*gin.Engine, *mocks.MockVitalsRepository) {
	repo := new(mocks.MockVitalsRepository)
	controller := NewVitalsController(services.NewVitalsService(repo), false)

	router := setupTestRouter()
	group := router.Group("/vitals", addUserAuthMiddleware(2))
	group.POST("/add", controller.AddVitals)
	group.GET("/myvitals", controller.MyVitals)
	group.DELETE("/:id", controller.DeleteVitals)
	return router, repo
}

func TestVitals(t *testing.T) {
	router, repo := setupVitalsRouter()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("ListByUser", mock.Anything, uint(2)).Return([]models.Vitals{{ID: 1, UserID: 2, BP: "120/80"}}, nil)
	repo.On("FindByID", mock.Anything, uint(7)).Return(&models.Vitals{ID: 7, UserID: 3}, nil)
	repo.On("FindByID", mock.Anything, uint(8)).Return(&models.Vitals{ID: 8, UserID: 2}, nil)
	repo.On("Delete", mock.Anything, uint(8)).Return(nil)

	w := postJSON(router, "/vitals/add", map[string]string{"sugar": "95"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Vital added successfully", decodeBody(t, w)["message"])

	w = postJSON(router, "/vitals/add", map[string]string{"note": "nothing measured"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "At least one vital is required", decodeBody(t, w)["message"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vitals/myvitals", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["vitals"], 1)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/vitals/7", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/vitals/8", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertCalled(t, "Delete", mock.Anything, uint(8))
}
