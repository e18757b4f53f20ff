package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"examforge/internal/config"
	"examforge/internal/domain"
	"examforge/internal/dto"
	"examforge/internal/logger"
	"examforge/internal/middleware"
	"examforge/internal/service"
	"examforge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "info"}); err != nil {
		panic("Failed to initialize logger for handler tests: " + err.Error())
	}
	exitCode := m.Run()
	_ = logger.Sync()
	os.Exit(exitCode)
}

// MockExamService is a mock implementation of service.ExamService
type MockExamService struct {
	mock.Mock
}

func (m *MockExamService) Generate(ctx context.Context, params domain.GenerationParams) (*service.GeneratedExam, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GeneratedExam), args.Error(1)
}

func (m *MockExamService) BankFacets(ctx context.Context) (*domain.BankFacets, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankFacets), args.Error(1)
}

func (m *MockExamService) BankBytes(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newTestApp(svc service.ExamService) *fiber.App {
	cfg := &config.Config{
		Exam: config.ExamConfig{
			MaxExercises:       50,
			DefaultCount:       5,
			DefaultTotalPoints: 10,
			SeedMax:            999999,
		},
	}
	h := NewExamHandler(svc, validation.NewValidator(cfg.Exam.MaxExercises, cfg.Exam.SeedMax), cfg)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Post("/api/exams", h.GenerateExam)
	app.Get("/api/bank/facets", h.GetBankFacets)
	app.Get("/api/bank/download", h.DownloadBank)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func sampleGenerated() *service.GeneratedExam {
	return &service.GeneratedExam{
		DocumentID: "01HTESTDOC",
		Exam: &domain.Exam{
			Title: "Exam",
			Seed:  42,
			Variants: []domain.Variant{{
				Label: domain.VariantA,
				Questions: []domain.Question{
					{ID: "q1", Statement: "s", Topic: "T", Difficulty: "easy", Answer: "a"},
				},
			}},
		},
		PDF: []byte("%PDF-stub"),
	}
}

func TestGenerateExam_ReturnsPDF(t *testing.T) {
	svc := new(MockExamService)
	svc.On("Generate", mock.Anything, mock.Anything).Return(sampleGenerated(), nil)
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/exams", dto.GenerateExamRequest{
		Count:    1,
		SeedMode: domain.SeedModeFixed,
		Seed:     42,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "exam_42.pdf")
	assert.Equal(t, "42", resp.Header.Get("X-Exam-Seed"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-stub", string(body))
	svc.AssertExpectations(t)
}

func TestGenerateExam_JSONPreview(t *testing.T) {
	svc := new(MockExamService)
	svc.On("Generate", mock.Anything, mock.Anything).Return(sampleGenerated(), nil)
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/exams?format=json", dto.GenerateExamRequest{
		Count:    1,
		SeedMode: domain.SeedModeFixed,
		Seed:     42,
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var preview dto.GenerateExamResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&preview))
	assert.Equal(t, "01HTESTDOC", preview.DocumentID)
	assert.Equal(t, int64(42), preview.Seed)
	require.Len(t, preview.Variants, 1)
	assert.Equal(t, "q1", preview.Variants[0].Questions[0].ID)
	assert.Empty(t, preview.Variants[0].Questions[0].Answer,
		"answers stay hidden unless solutions were requested")
}

func TestGenerateExam_AppliesDefaults(t *testing.T) {
	svc := new(MockExamService)
	svc.On("Generate", mock.Anything, mock.MatchedBy(func(p domain.GenerationParams) bool {
		return p.Count == 5 && p.SeedMode == domain.SeedModeRandom
	})).Return(sampleGenerated(), nil)
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/exams", dto.GenerateExamRequest{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestGenerateExam_ValidationFailure(t *testing.T) {
	svc := new(MockExamService)
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/exams", dto.GenerateExamRequest{
		Count:    -3,
		SeedMode: "dice",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp middleware.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, string(domain.CodeValidation), errResp.Code)
	assert.Len(t, errResp.Errors, 2)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateExam_InsufficientPool(t *testing.T) {
	svc := new(MockExamService)
	svc.On("Generate", mock.Anything, mock.Anything).
		Return(nil, domain.NewInsufficientPoolError(6, 10, 0))
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/exams", dto.GenerateExamRequest{Count: 5})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var errResp middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, string(domain.CodeInsufficientPool), errResp.Code)
	assert.EqualValues(t, 6, errResp.Details["available"])
	assert.EqualValues(t, 10, errResp.Details["needed"])
	assert.NotEmpty(t, errResp.Suggestions)
}

func TestGetBankFacets(t *testing.T) {
	svc := new(MockExamService)
	svc.On("BankFacets", mock.Anything).Return(&domain.BankFacets{
		Topics:       []string{"Electricity", "Mechanisms"},
		Difficulties: []string{"easy", "hard"},
	}, nil)
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/bank/facets", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var facets domain.BankFacets
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&facets))
	assert.Equal(t, []string{"Electricity", "Mechanisms"}, facets.Topics)
}

func TestDownloadBank(t *testing.T) {
	svc := new(MockExamService)
	svc.On("BankBytes", mock.Anything).Return([]byte("- id: q1\n"), nil)
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/bank/download", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/yaml", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "- id: q1\n", string(body))
}
