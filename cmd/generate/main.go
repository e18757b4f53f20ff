package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"examforge/internal/config"
	"examforge/internal/domain"
	"examforge/internal/logger"
	"examforge/internal/pdf"
	"examforge/internal/repository"
	"examforge/internal/service"
)

// One-shot generation: bank in, PDF out. Useful for scripting and for
// smoke-testing a bank file without running the server.
func main() {
	bankPath := flag.String("bank", "bank.yml", "Path to the question bank YAML file")
	output := flag.String("out", "", "Output PDF path (defaults to exam_<seed>.pdf)")
	title := flag.String("title", "Exam", "Exam title printed on the document")
	count := flag.Int("n", 5, "Questions per variant")
	topic := flag.String("topic", domain.FilterAll, "Topic filter, or 'all'")
	difficulty := flag.String("difficulty", domain.FilterAll, "Difficulty filter, or 'all'")
	twoVariants := flag.Bool("two-variants", false, "Also draw a variant B")
	allowRepeat := flag.Bool("allow-repeat", false, "Variants may share questions")
	solutions := flag.Bool("solutions", false, "Include solutions in the document")
	scored := flag.Bool("scored", false, "Distribute a total score across questions")
	points := flag.Float64("points", 10, "Total points (scored mode)")
	diverse := flag.Bool("diverse", false, "Prefer topic variety within a variant")
	seed := flag.Int64("seed", -1, "Seed (negative draws a fresh random seed)")

	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	defer logger.Sync()

	params := domain.GenerationParams{
		Title:            *title,
		Topic:            *topic,
		Difficulty:       *difficulty,
		Count:            *count,
		TwoVariants:      *twoVariants,
		AllowRepeat:      *allowRepeat,
		IncludeSolutions: *solutions,
		Scored:           *scored,
		DiverseTopics:    *diverse,
		TotalPoints:      *points,
		SeedMode:         domain.SeedModeFixed,
		Seed:             *seed,
	}
	if *seed < 0 {
		params.SeedMode = domain.SeedModeRandom
		params.Seed = 0
	}

	repo := repository.NewFileBankRepository(*bankPath)
	examService := service.NewExamService(repo, pdf.NewRenderer(), cfg)

	generated, err := examService.Generate(context.Background(), params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try reducing -n, removing filters, allowing repeats, or adding questions to the bank.")
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		outPath = fmt.Sprintf("exam_%d.pdf", generated.Exam.Seed)
	}
	if err := os.WriteFile(outPath, generated.PDF, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (seed %d, %d variant(s), document %s)\n",
		outPath, generated.Exam.Seed, len(generated.Exam.Variants), generated.DocumentID)
}
