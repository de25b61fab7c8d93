package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/personarium/personarium/internal/model"
)

// RenderCSV writes the record as Section/Field/Value/Source rows and
// returns the path written. The flat shape keeps the file greppable and
// trivially importable into a spreadsheet.
func (r *Renderer) RenderCSV(rec *model.PersonaRecord) (string, error) {
	path, err := r.filePath(rec, "csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := func(section, field, value, source string) {
		// Write errors surface once via w.Error() after Flush.
		_ = w.Write([]string{section, field, value, source})
	}

	row("Section", "Field", "Value", "Source")

	row("Basic Information", "Username", "u/"+rec.Username, "")
	row("Basic Information", "Generated", rec.GeneratedAt.Format(time.RFC3339), "")
	row("Basic Information", "Age", rec.PersonalInfo.Age, "")
	row("Basic Information", "Location", rec.PersonalInfo.Location, "")
	row("Basic Information", "Occupation", rec.PersonalInfo.Occupation, "")
	row("Basic Information", "Relationship Status", rec.PersonalInfo.RelationshipStatus, "")

	row("Personality", "Archetype", rec.Archetype, "")
	row("Personality", "Personality", rec.Personality, "")
	row("Personality", "Overall Sentiment", sentimentLine(rec), "")

	for _, group := range rec.ClaimGroups() {
		for i, c := range group.Claims {
			row(group.Heading, strconv.Itoa(i+1), c.Text, c.Citation)
		}
	}

	row("Activity Summary", "Activity Level", rec.ActivityLevel, "")
	row("Activity Summary", "Total Comments", strconv.Itoa(rec.TotalComments), "")
	row("Activity Summary", "Total Posts", strconv.Itoa(rec.TotalPosts), "")

	for i, sub := range rec.TopSubreddits {
		row("Top Subreddits",
			fmt.Sprintf("%d. r/%s", i+1, sub.Name),
			fmt.Sprintf("%d interactions", sub.Count), "")
	}
	for _, wc := range rec.TopWords {
		row("Top Words", wc.Word, strconv.Itoa(wc.Count), "")
	}

	row("Coverage", "Index", fmt.Sprintf("%d/100", rec.Coverage.Index), "")
	row("Coverage", "Confidence", rec.Coverage.Confidence, "")
	for _, sig := range rec.Coverage.Signals {
		row("Coverage", sig.Type, sig.Description, string(sig.Severity))
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write CSV: %w", err)
	}
	return path, nil
}
