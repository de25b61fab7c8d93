package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/personarium/personarium/internal/model"
)

func sampleRecord() *model.PersonaRecord {
	return &model.PersonaRecord{
		Username:    "alice",
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		PersonalInfo: model.PersonalInfo{
			Age:                "28 years old",
			Location:           "Texas",
			Occupation:         "Teacher",
			RelationshipStatus: model.NotSpecified,
		},
		Archetype:      "The Helper",
		Personality:    "Direct or critical",
		SentimentScore: -0.42,
		SentimentLabel: "negative",
		Motivations: []model.Claim{
			{Text: "No explicit motivations mentioned recently", Citation: model.SentinelCitation},
		},
		Goals: []model.Claim{
			{Text: "Not explicitly mentioned in recent activity", Citation: model.SentinelCitation},
		},
		Behaviors: []model.Claim{
			{Text: "Habit: i always grade on sunday nights...", Citation: "Comment in r/teaching"},
		},
		Frustrations: []model.Claim{
			{Text: "Frustrated by: long commutes...", Citation: "Comment in r/teaching"},
		},
		ActivityLevel: "Casual",
		TotalComments: 12,
		TotalPosts:    3,
		TopSubreddits: []model.SubredditCount{
			{Name: "teaching", Count: 9},
			{Name: "austin", Count: 3},
		},
		TopWords: []model.WordCount{
			{Word: "teaching", Count: 7},
			{Word: "students", Count: 5},
		},
		Coverage: model.Coverage{
			Index:      55,
			Confidence: "medium",
			Signals: []model.Signal{
				{Type: "corpus_depth", Severity: model.SeverityInfo, Description: "Corpus holds 15 items of ~15 requested"},
			},
		},
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)
	rec := sampleRecord()

	path, err := r.RenderJSON(rec)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "persona_alice_") || !strings.HasSuffix(base, ".json") {
		t.Errorf("unexpected file name %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got model.PersonaRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Username != rec.Username || got.PersonalInfo != rec.PersonalInfo {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Coverage.Index != 55 || len(got.Frustrations) != 1 {
		t.Errorf("round trip lost coverage or claims: %+v", got)
	}
}

func TestRenderJSONCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	r := NewRenderer(dir, false)

	path, err := r.RenderJSON(sampleRecord())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestRenderCSVRows(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)

	path, err := r.RenderCSV(sampleRecord())
	if err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	if len(rows) < 15 {
		t.Fatalf("got %d rows, want a full card", len(rows))
	}

	header := rows[0]
	want := []string{"Section", "Field", "Value", "Source"}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header = %v", header)
		}
	}

	found := false
	for _, row := range rows {
		if row[0] == "Frustrations" && row[1] == "1" &&
			row[2] == "Frustrated by: long commutes..." && row[3] == "Comment in r/teaching" {
			found = true
		}
	}
	if !found {
		t.Error("frustration claim row missing")
	}

	foundWord := false
	for _, row := range rows {
		if row[0] == "Top Words" && row[1] == "teaching" && row[2] == "7" {
			foundWord = true
		}
	}
	if !foundWord {
		t.Error("top words row missing")
	}
}

func TestRenderExcelLayout(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)

	path, err := r.RenderExcel(sampleRecord())
	if err != nil {
		t.Fatalf("RenderExcel: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	cells := map[string]string{
		"A1":  "Persona Analysis - u/alice",
		"A4":  "Username:",
		"B4":  "u/alice",
		"A5":  "Age:",
		"B5":  "28 years old",
		"B6":  "Texas",
		"B7":  "Teacher",
		"B13": "42.0% negative",
		"B28": "Casual",
		"A33": "1. r/teaching",
		"B33": "9 interactions",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}

	width, err := f.GetColWidth(sheetName, "B")
	if err != nil {
		t.Fatalf("GetColWidth: %v", err)
	}
	if width <= 0 || width > maxColumnWidth {
		t.Errorf("column B width = %v, want within (0, %d]", width, maxColumnWidth)
	}
}

func TestRenderMarkdownContent(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)

	path, err := r.RenderMarkdown(sampleRecord())
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	md := string(data)

	for _, want := range []string{
		"# Persona: u/alice",
		"| Age | 28 years old |",
		"- **Archetype:** The Helper",
		"## Frustrations",
		"- Source: Comment in r/teaching",
		"| 1 | r/teaching | 9 |",
		"teaching (7), students (5)",
		"- **Index:** 55/100 (medium confidence)",
		"not verified facts",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	// Sentinel claims carry no source line.
	if strings.Contains(md, "- Source: N/A") {
		t.Error("sentinel claim must not render a source")
	}
}

func TestRenderMarkdownFooterToggle(t *testing.T) {
	r := NewRenderer(t.TempDir(), false)

	path, err := r.RenderMarkdown(sampleRecord())
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Built with") {
		t.Error("footer rendered despite being disabled")
	}
}

func TestRenderLLMMarkdown(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)
	path := filepath.Join(t.TempDir(), "persona_alice.llm.md")

	if err := r.RenderLLMMarkdown("# LLM Summary\n\ncontent\n", path); err != nil {
		t.Fatalf("RenderLLMMarkdown: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "# LLM Summary") {
		t.Errorf("content = %q", data)
	}
}

func TestRenderConsoleSections(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(t.TempDir(), true).RenderConsole(&buf, sampleRecord())
	out := buf.String()

	for _, want := range []string{
		"PERSONA ANALYSIS: u/alice",
		"Basic Information",
		"28 years old",
		"Personality & Archetype",
		"42.0% negative",
		"Frustrations",
		"Comment in r/teaching",
		"Activity Summary",
		"Most Active Communities",
		"r/teaching",
		"██████████", // the top community fills the bar
		"Coverage",
		"55/100",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q", want)
		}
	}
}

func TestActivityBar(t *testing.T) {
	tests := []struct {
		name  string
		count int
		max   int
		want  string
	}{
		{"full scale", 9, 9, "██████████"},
		{"third", 3, 9, "███"},
		{"rounds down", 1, 3, "███"},
		{"tiny share truncates to empty", 1, 100, ""},
		{"zero max", 5, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := activityBar(tt.count, tt.max); got != tt.want {
				t.Errorf("activityBar(%d, %d) = %q, want %q", tt.count, tt.max, got, tt.want)
			}
		})
	}
}
