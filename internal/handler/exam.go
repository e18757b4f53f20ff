package handler

import (
	"fmt"

	"examforge/internal/config"
	"examforge/internal/dto"
	"examforge/internal/service"
	"examforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ExamHandler handles exam-generation HTTP requests
type ExamHandler struct {
	service   service.ExamService
	validator *validation.Validator
	cfg       *config.Config
}

// NewExamHandler creates a new ExamHandler instance
func NewExamHandler(svc service.ExamService, validator *validation.Validator, cfg *config.Config) *ExamHandler {
	return &ExamHandler{
		service:   svc,
		validator: validator,
		cfg:       cfg,
	}
}

// GenerateExam godoc
// @Summary Generate an exam
// @Description Generates a randomized exam document from the question bank.
// @Description Returns PDF bytes by default; pass ?format=json for a preview.
// @Tags exams
// @Accept json
// @Produce application/pdf
// @Produce json
// @Param request body dto.GenerateExamRequest true "Generation parameters"
// @Success 200 {object} dto.GenerateExamResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /exams [post]
func (h *ExamHandler) GenerateExam(c *fiber.Ctx) error {
	var req dto.GenerateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateGenerateExamRequest(req); len(errs) > 0 {
		return errs
	}

	params := req.ToParams(h.cfg.Exam.DefaultCount, h.cfg.Exam.DefaultTotalPoints)

	generated, err := h.service.Generate(c.Context(), params)
	if err != nil {
		return err
	}

	if c.Query("format") == "json" {
		return c.JSON(dto.NewGenerateExamResponse(generated.DocumentID, generated.Exam, params.IncludeSolutions))
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="exam_%d.pdf"`, generated.Exam.Seed))
	c.Set("X-Document-Id", generated.DocumentID)
	c.Set("X-Exam-Seed", fmt.Sprintf("%d", generated.Exam.Seed))
	return c.Send(generated.PDF)
}

// GetBankFacets godoc
// @Summary List bank facets
// @Description Returns the distinct topics and difficulties in the bank
// @Tags bank
// @Produce json
// @Success 200 {object} domain.BankFacets
// @Failure 500 {object} middleware.ErrorResponse
// @Router /bank/facets [get]
func (h *ExamHandler) GetBankFacets(c *fiber.Ctx) error {
	facets, err := h.service.BankFacets(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(facets)
}

// DownloadBank godoc
// @Summary Download the bank source
// @Tags bank
// @Produce plain
// @Success 200 {string} string
// @Failure 500 {object} middleware.ErrorResponse
// @Router /bank/download [get]
func (h *ExamHandler) DownloadBank(c *fiber.Ctx) error {
	data, err := h.service.BankBytes(c.Context())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/yaml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="bank.yml"`)
	return c.Send(data)
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *ExamHandler) Health(c *fiber.Ctx) error {
	if _, err := h.service.BankFacets(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
