package service

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"examforge/internal/config"
	"examforge/internal/domain"
	"examforge/internal/logger"
	"examforge/internal/util"

	"go.uber.org/zap"
)

// GeneratedExam is the result of one generation request: the assembled exam
// structure plus its rendered document.
type GeneratedExam struct {
	DocumentID string
	Exam       *domain.Exam
	PDF        []byte
}

// ExamService runs one synchronous exam-generation request end to end:
// resolve the seed, load the bank, filter, assemble, allocate points (scored
// mode) and render.
type ExamService interface {
	Generate(ctx context.Context, params domain.GenerationParams) (*GeneratedExam, error)
	BankFacets(ctx context.Context) (*domain.BankFacets, error)
	BankBytes(ctx context.Context) ([]byte, error)
}

type examService struct {
	repo     domain.BankRepository
	renderer domain.Renderer
	cfg      *config.Config
}

func NewExamService(repo domain.BankRepository, renderer domain.Renderer, cfg *config.Config) ExamService {
	return &examService{
		repo:     repo,
		renderer: renderer,
		cfg:      cfg,
	}
}

func (s *examService) Generate(ctx context.Context, params domain.GenerationParams) (*GeneratedExam, error) {
	start := time.Now()

	seed := params.Seed
	if params.SeedMode == domain.SeedModeRandom {
		seed = rand.New(rand.NewSource(time.Now().UnixNano())).Int63n(s.cfg.Exam.SeedMax + 1)
	}

	title := params.Title
	if title == "" {
		title = s.cfg.PDF.DefaultTitle
	}

	bank, err := s.repo.GetBank(ctx)
	if err != nil {
		return nil, err
	}

	candidates := FilterBank(bank, params.Topic, params.Difficulty)

	// The variant draws and the point allocation consume one seeded stream
	// sequentially; that ordering is part of the reproducibility contract.
	rng := rand.New(rand.NewSource(seed))
	variants, err := AssembleRand(candidates, rng, params.Count,
		params.TwoVariants, params.AllowRepeat, params.DiverseTopics)
	if err != nil {
		return nil, err
	}

	if params.Scored {
		for i := range variants {
			variants[i].Questions = AllocatePoints(variants[i].Questions, rng, params.TotalPoints)
		}
	}

	exam := &domain.Exam{
		Title:       title,
		Seed:        seed,
		Scored:      params.Scored,
		TotalPoints: params.TotalPoints,
		Variants:    variants,
	}

	pdfBytes, err := s.renderer.Render(exam, params.IncludeSolutions)
	if err != nil {
		return nil, domain.NewRenderError(err)
	}

	docID := util.NewULID()
	logger.Get().Info("Exam generated",
		zap.String("document_id", docID),
		zap.Int64("seed", seed),
		zap.Int("variants", len(variants)),
		zap.Int("questions_per_variant", params.Count),
		zap.Bool("scored", params.Scored),
		zap.Duration("duration", time.Since(start)),
	)

	return &GeneratedExam{
		DocumentID: docID,
		Exam:       exam,
		PDF:        pdfBytes,
	}, nil
}

// BankFacets returns the sorted distinct topics and difficulties of the bank,
// for selection UIs.
func (s *examService) BankFacets(ctx context.Context) (*domain.BankFacets, error) {
	bank, err := s.repo.GetBank(ctx)
	if err != nil {
		return nil, err
	}

	topicSet := make(map[string]struct{})
	difficultySet := make(map[string]struct{})
	for _, q := range bank {
		topicSet[q.Topic] = struct{}{}
		if q.Difficulty != "" {
			difficultySet[q.Difficulty] = struct{}{}
		}
	}

	facets := &domain.BankFacets{
		Topics:       make([]string, 0, len(topicSet)),
		Difficulties: make([]string, 0, len(difficultySet)),
	}
	for t := range topicSet {
		facets.Topics = append(facets.Topics, t)
	}
	for d := range difficultySet {
		facets.Difficulties = append(facets.Difficulties, d)
	}
	sort.Strings(facets.Topics)
	sort.Strings(facets.Difficulties)
	return facets, nil
}

func (s *examService) BankBytes(ctx context.Context) ([]byte, error) {
	return s.repo.BankBytes(ctx)
}
