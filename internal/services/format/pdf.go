package format

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// writePDF lays out the markdown rendition of the extracted text as an A4
// PDF artifact.
func (s *Service) writePDF(path string, markdown string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 9)

	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	renderer := &pdfRenderer{
		pdf:    pdf,
		source: source,
		font:   "Arial",
		size:   9,
	}

	if err := renderer.render(doc); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := pdf.Output(f); err != nil {
		return fmt.Errorf("generate pdf output: %w", err)
	}
	return nil
}

// pdfRenderer walks the markdown AST and writes it through fpdf. OCR output
// is mostly plain paragraphs; headings, emphasis, lists and code blocks are
// enough structure for the artifact.
type pdfRenderer struct {
	pdf    *fpdf.Fpdf
	source []byte
	font   string
	size   float64
	bold   bool
	italic bool
}

func (r *pdfRenderer) render(node ast.Node) error {
	return ast.Walk(node, r.walk)
}

func (r *pdfRenderer) updateFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont(r.font, style, r.size)
}

func (r *pdfRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			size := 14.0 - float64(node.Level)
			if size < 10 {
				size = 10
			}
			r.pdf.Ln(6)
			r.pdf.SetFont(r.font, "B", size)
		} else {
			r.pdf.Ln(6)
			r.updateFont()
		}
	case *ast.Paragraph:
		if !entering {
			r.pdf.Ln(7)
		}
	case *ast.Text:
		if entering {
			r.pdf.Write(5, string(node.Text(r.source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				r.pdf.Ln(5)
			}
		}
	case *ast.Emphasis:
		if node.Level == 2 {
			r.bold = entering
		} else {
			r.italic = entering
		}
		r.updateFont()
	case *ast.ListItem:
		if entering {
			r.pdf.Ln(5)
			r.pdf.SetX(15)
			r.pdf.Write(5, "- ")
		}
	case *ast.FencedCodeBlock:
		if entering {
			r.renderCodeBlock(node.Lines())
			return ast.WalkSkipChildren, nil
		}
	case *ast.CodeBlock:
		if entering {
			r.renderCodeBlock(node.Lines())
			return ast.WalkSkipChildren, nil
		}
	case *ast.ThematicBreak:
		if entering {
			r.pdf.Ln(2)
			r.pdf.Line(15, r.pdf.GetY(), 195, r.pdf.GetY())
			r.pdf.Ln(2)
		}
	}
	return ast.WalkContinue, nil
}

func (r *pdfRenderer) renderCodeBlock(lines *text.Segments) {
	r.pdf.Ln(2)
	r.pdf.SetFont("Courier", "", 9)
	r.pdf.SetFillColor(245, 245, 245)

	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		r.pdf.MultiCell(0, 5, string(line.Value(r.source)), "", "L", true)
	}

	r.pdf.SetFillColor(255, 255, 255)
	r.updateFont()
	r.pdf.Ln(2)
}
