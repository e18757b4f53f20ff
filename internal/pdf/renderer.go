// Package pdf renders assembled exams to paginated A4 documents.
package pdf

import (
	"bytes"
	"fmt"

	"examforge/internal/domain"

	"github.com/go-pdf/fpdf"
)

const (
	marginX     = 20.0 // mm
	marginY     = 20.0
	lineHeight  = 5.5
	bottomGuard = 25.0
)

// Renderer implements domain.Renderer on top of fpdf. It is layout only:
// selection and scoring arrive final and are never changed here.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(exam *domain.Exam, includeSolutions bool) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(marginX, marginY, marginX)
	doc.SetAutoPageBreak(true, bottomGuard)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := doc.GetPageSize()
	contentWidth := pageWidth - 2*marginX

	// Redrawn at the top of every page, including auto page breaks.
	currentVariant := ""
	doc.SetHeaderFunc(func() {
		doc.SetFont("Helvetica", "B", 14)
		doc.SetXY(marginX, marginY-8)
		doc.CellFormat(contentWidth*0.75, 8,
			tr(fmt.Sprintf("%s — Version %s", exam.Title, currentVariant)), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(contentWidth*0.25, 8,
			fmt.Sprintf("seed: %d", exam.Seed), "", 1, "R", false, 0, "")
		doc.SetLineWidth(0.2)
		doc.Line(marginX, marginY+1, pageWidth-marginX, marginY+1)
		doc.SetY(marginY + 5)
	})

	for _, variant := range exam.Variants {
		currentVariant = variant.Label
		doc.AddPage()

		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(contentWidth, lineHeight, tr(r.instructions(exam)), "", "L", false)
		doc.Ln(3)

		for i, q := range variant.Questions {
			r.renderQuestion(doc, tr, exam, i+1, q, contentWidth, includeSolutions)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) instructions(exam *domain.Exam) string {
	if exam.Scored {
		return fmt.Sprintf("Instructions: answer ALL questions. The exam is scored out of %g points.", exam.TotalPoints)
	}
	return "Instructions: answer ALL questions."
}

func (r *Renderer) renderQuestion(doc *fpdf.Fpdf, tr func(string) string, exam *domain.Exam, number int, q domain.Question, contentWidth float64, includeSolutions bool) {
	doc.SetFont("Helvetica", "B", 11)
	if exam.Scored {
		doc.MultiCell(contentWidth, lineHeight,
			tr(fmt.Sprintf("%d. %s (%s pts)", number, q.Heading(), formatPoints(q.Points))), "", "L", false)
	} else {
		doc.MultiCell(contentWidth, lineHeight,
			tr(fmt.Sprintf("%d. [%s | %s]", number, q.Topic, q.Difficulty)), "", "L", false)
	}

	doc.SetFont("Helvetica", "", 11)
	if !exam.Scored || q.Title != "" {
		if q.Statement != "" {
			doc.MultiCell(contentWidth, lineHeight, tr(q.Statement), "", "L", false)
		}
	}

	for i, part := range q.Parts {
		label := fmt.Sprintf("%c) %s", 'a'+i, part.Statement)
		if exam.Scored {
			label = fmt.Sprintf("%c) %s (%s pts)", 'a'+i, part.Statement, formatPoints(part.Points))
		}
		doc.SetX(marginX + 5)
		doc.MultiCell(contentWidth-5, lineHeight, tr(label), "", "L", false)
	}

	if includeSolutions && q.Answer != "" {
		doc.Ln(1)
		doc.SetFont("Helvetica", "I", 10)
		doc.MultiCell(contentWidth, lineHeight-0.5, tr("Suggested answer: "+q.Answer), "", "L", false)
		doc.SetFont("Helvetica", "", 11)
	}

	doc.Ln(4)
}

// formatPoints prints quarter-aligned values without trailing zeros.
func formatPoints(v float64) string {
	return fmt.Sprintf("%g", v)
}
