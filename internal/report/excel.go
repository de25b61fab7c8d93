package report

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/personarium/personarium/internal/model"
)

const sheetName = "Persona"

// maxColumnWidth caps the auto-sized columns so wrapped claim text
// stays readable instead of producing one enormous column.
const maxColumnWidth = 50

// RenderExcel writes the record as a styled workbook and returns the
// path written.
func (r *Renderer) RenderExcel(rec *model.PersonaRecord) (string, error) {
	path, err := r.filePath(rec, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	s, err := newPersonaSheet(f)
	if err != nil {
		return "", fmt.Errorf("excel styles: %w", err)
	}

	s.title(fmt.Sprintf("Persona Analysis - u/%s", rec.Username))

	s.section("🔹 BASIC INFORMATION")
	s.kv("Username:", "u/"+rec.Username)
	s.kv("Age:", rec.PersonalInfo.Age)
	s.kv("Location:", rec.PersonalInfo.Location)
	s.kv("Occupation:", rec.PersonalInfo.Occupation)
	s.kv("Relationship Status:", rec.PersonalInfo.RelationshipStatus)
	s.blank()

	s.section("🧠 PERSONALITY & ARCHETYPE")
	s.kv("Archetype:", rec.Archetype)
	s.kv("Personality:", rec.Personality)
	s.kv("Overall Sentiment:", sentimentLine(rec))
	s.blank()

	for _, group := range rec.ClaimGroups() {
		s.section(groupEmoji(group.Heading) + " " + strings.ToUpper(group.Heading))
		for i, c := range group.Claims {
			s.kv(fmt.Sprintf("%d.", i+1), c.Text)
		}
		s.blank()
	}

	s.section("📊 ACTIVITY SUMMARY")
	s.kv("Activity Level:", rec.ActivityLevel)
	s.kv("Total Comments:", strconv.Itoa(rec.TotalComments))
	s.kv("Total Posts:", strconv.Itoa(rec.TotalPosts))

	if len(rec.TopSubreddits) > 0 {
		s.blank()
		s.section("🏆 TOP SUBREDDITS")
		for i, sub := range rec.TopSubreddits {
			s.kv(fmt.Sprintf("%d. r/%s", i+1, sub.Name),
				fmt.Sprintf("%d interactions", sub.Count))
		}
	}

	if err := s.finish(); err != nil {
		return "", fmt.Errorf("build sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save Excel: %w", err)
	}
	return path, nil
}

// personaSheet lays the record out as two columns of key/value rows
// with merged section banners. Errors stick to the first failure so the
// builder calls read linearly.
type personaSheet struct {
	f    *excelize.File
	row  int
	maxA int
	maxB int
	err  error

	titleStyle   int
	sectionStyle int
	keyStyle     int
	valueStyle   int
}

func newPersonaSheet(f *excelize.File) (*personaSheet, error) {
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	s := &personaSheet{f: f, row: 1}

	var err error
	s.titleStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "1F4E78"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thin,
	})
	if err != nil {
		return nil, err
	}
	s.sectionStyle, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 12, Color: "1F4E78"},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
		Border: thin,
	})
	if err != nil {
		return nil, err
	}
	s.keyStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "top"},
		Border:    thin,
	})
	if err != nil {
		return nil, err
	}
	s.valueStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thin,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *personaSheet) title(text string) {
	s.merged(text, s.titleStyle)
	s.row++ // leave a spacer under the title
}

func (s *personaSheet) section(text string) {
	s.merged(text, s.sectionStyle)
}

func (s *personaSheet) merged(text string, style int) {
	if s.err != nil {
		return
	}
	a := fmt.Sprintf("A%d", s.row)
	b := fmt.Sprintf("B%d", s.row)
	if s.err = s.f.SetCellValue(sheetName, a, text); s.err != nil {
		return
	}
	if s.err = s.f.MergeCell(sheetName, a, b); s.err != nil {
		return
	}
	s.err = s.f.SetCellStyle(sheetName, a, b, style)
	s.noteWidth(text, "")
	s.row++
}

func (s *personaSheet) kv(key, value string) {
	if s.err != nil {
		return
	}
	a := fmt.Sprintf("A%d", s.row)
	b := fmt.Sprintf("B%d", s.row)
	if s.err = s.f.SetCellValue(sheetName, a, key); s.err != nil {
		return
	}
	if s.err = s.f.SetCellValue(sheetName, b, value); s.err != nil {
		return
	}
	if s.err = s.f.SetCellStyle(sheetName, a, a, s.keyStyle); s.err != nil {
		return
	}
	s.err = s.f.SetCellStyle(sheetName, b, b, s.valueStyle)
	s.noteWidth(key, value)
	s.row++
}

func (s *personaSheet) blank() {
	s.row++
}

func (s *personaSheet) noteWidth(a, b string) {
	if n := utf8.RuneCountInString(a); n > s.maxA {
		s.maxA = n
	}
	if n := utf8.RuneCountInString(b); n > s.maxB {
		s.maxB = n
	}
}

func (s *personaSheet) finish() error {
	if s.err != nil {
		return s.err
	}
	if err := s.f.SetColWidth(sheetName, "A", "A", float64(min(s.maxA+2, maxColumnWidth))); err != nil {
		return err
	}
	return s.f.SetColWidth(sheetName, "B", "B", float64(min(s.maxB+2, maxColumnWidth)))
}
