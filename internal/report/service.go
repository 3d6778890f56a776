package report

import (
	"bytes"
	"fmt"

	"github.com/signintech/gopdf"

	"pet-care-advisor/internal/assessment"
)

const (
	contentWidth = 500.0
	lineHeight   = 12.0
	topMargin    = 40.0
	// bottomLimit is the lowest Y a line may start at on an A4 page (842pt).
	bottomLimit = 800.0
)

type Service struct {
	fontPaths []string
}

func NewService() *Service {
	return &Service{
		// Common DejaVuSans locations (Alpine and Debian based images).
		fontPaths: []string{
			"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		},
	}
}

// Generate renders a completed assessment as a PDF document.
func (s *Service) Generate(a *assessment.Assessment) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := s.render(&pdf, a); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) render(pdf *gopdf.GoPdf, a *assessment.Assessment) error {
	var fontErr error
	fontLoaded := false
	for _, path := range s.fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return err
	}
	pdf.Cell(nil, "Pet Care Assessment Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", a.CreatedAt.Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Assessment ID: %s", a.ID))
	pdf.Br(15)
	petLine := fmt.Sprintf("Pet: %s (%s", a.Pet.Name, a.Pet.Species)
	if a.Pet.Breed != "" {
		petLine += ", " + a.Pet.Breed
	}
	if a.Pet.AgeYears > 0 {
		petLine += fmt.Sprintf(", %.1f years", a.Pet.AgeYears)
	}
	petLine += ")"
	pdf.Cell(nil, petLine)
	pdf.Br(25)

	if a.Result.Emergency {
		s.breakPage(pdf)
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return err
		}
		pdf.Cell(nil, "EMERGENCY: seek immediate veterinary attention.")
		pdf.Br(15)
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return err
		}
		for _, alert := range a.Result.EmergencyAlerts {
			s.writeWrapped(pdf, "- "+alert)
		}
		pdf.Br(10)
	}

	s.breakPage(pdf)
	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return err
	}
	pdf.Cell(nil, "Possible conditions:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return err
	}
	if len(a.Result.Conditions) == 0 {
		pdf.Cell(nil, "- No specific conditions identified.")
		pdf.Br(15)
	}
	for _, c := range a.Result.Conditions {
		line := fmt.Sprintf("%d. %s - confidence %.0f%%, severity %s", c.Rank, c.Name, c.Confidence*100, c.Severity)
		s.writeWrapped(pdf, line)
		pdf.Br(5)
	}
	pdf.Br(15)

	if len(a.Result.Recommendations) > 0 {
		s.breakPage(pdf)
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return err
		}
		pdf.Cell(nil, "Recommendations:")
		pdf.Br(15)
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return err
		}
		for _, rec := range a.Result.Recommendations {
			s.writeWrapped(pdf, "- "+rec)
			pdf.Br(3)
		}
	}

	// Disclaimer footer sits at the bottom of the last page; when the content
	// already reaches that far, it moves to a fresh page instead of colliding.
	if err := pdf.SetFont("DejaVu", "", 9); err != nil {
		return err
	}
	lines, _ := pdf.SplitText(a.Result.Disclaimer, contentWidth)
	footerTop := bottomLimit + 2*lineHeight - lineHeight*float64(len(lines))
	if pdf.GetY() > footerTop {
		pdf.AddPage()
	}
	pdf.SetY(footerTop)
	for _, l := range lines {
		pdf.Cell(nil, l)
		pdf.Br(lineHeight)
	}
	return nil
}

// breakPage starts a new page when the cursor is too close to the bottom to
// fit another section heading.
func (s *Service) breakPage(pdf *gopdf.GoPdf) {
	if pdf.GetY() > bottomLimit-2*lineHeight {
		pdf.AddPage()
		pdf.SetY(topMargin)
	}
}

func (s *Service) writeWrapped(pdf *gopdf.GoPdf, text string) {
	lines, _ := pdf.SplitText(text, contentWidth)
	for _, l := range lines {
		if pdf.GetY() > bottomLimit {
			pdf.AddPage()
			pdf.SetY(topMargin)
		}
		pdf.Cell(nil, l)
		pdf.Br(lineHeight)
	}
}
