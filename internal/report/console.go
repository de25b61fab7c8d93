package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/personarium/personarium/internal/model"
)

// maxBarLength is the widest community activity bar.
const maxBarLength = 10

// RenderConsole prints the persona card. Sections mirror the export
// layout so the console, spreadsheet and markdown views stay in step.
func (r *Renderer) RenderConsole(w io.Writer, rec *model.PersonaRecord) {
	fmt.Fprintf(w, "\n🔍 PERSONA ANALYSIS: u/%s\n\n", rec.Username)

	basics := newSection(w, "📋 Basic Information")
	basics.AppendRow(table.Row{"Username", "u/" + rec.Username})
	basics.AppendRow(table.Row{"Age", rec.PersonalInfo.Age})
	basics.AppendRow(table.Row{"Location", rec.PersonalInfo.Location})
	basics.AppendRow(table.Row{"Occupation", rec.PersonalInfo.Occupation})
	basics.AppendRow(table.Row{"Relationship Status", rec.PersonalInfo.RelationshipStatus})
	basics.Render()

	tone := newSection(w, "🧠 Personality & Archetype")
	tone.AppendRow(table.Row{"Archetype", rec.Archetype})
	tone.AppendRow(table.Row{"Personality", rec.Personality})
	tone.AppendRow(table.Row{"Overall Sentiment", sentimentLine(rec)})
	tone.Render()

	for _, group := range rec.ClaimGroups() {
		claims := newSection(w, groupEmoji(group.Heading)+" "+group.Heading)
		claims.AppendHeader(table.Row{"#", "Claim", "Source"})
		claims.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: 60},
		})
		for i, c := range group.Claims {
			claims.AppendRow(table.Row{i + 1, c.Text, c.Citation})
		}
		claims.Render()
	}

	activity := newSection(w, "📊 Activity Summary")
	activity.AppendRow(table.Row{"Activity Level", rec.ActivityLevel})
	activity.AppendRow(table.Row{"Total Comments", rec.TotalComments})
	activity.AppendRow(table.Row{"Total Posts", rec.TotalPosts})
	activity.AppendRow(table.Row{"Total Activity", rec.TotalComments + rec.TotalPosts})
	activity.Render()

	if len(rec.TopSubreddits) > 0 {
		top := newSection(w, "🏆 Most Active Communities")
		top.AppendHeader(table.Row{"#", "Community", "", "Interactions"})
		// The table is sorted by count, so the first row sets the scale.
		max := rec.TopSubreddits[0].Count
		for i, sub := range rec.TopSubreddits {
			top.AppendRow(table.Row{i + 1, "r/" + sub.Name, activityBar(sub.Count, max), sub.Count})
		}
		top.Render()
	}

	coverage := newSection(w, "🧭 Coverage")
	coverage.AppendRow(table.Row{"Index", fmt.Sprintf("%d/100", rec.Coverage.Index)})
	coverage.AppendRow(table.Row{"Confidence", rec.Coverage.Confidence})
	for _, sig := range rec.Coverage.Signals {
		coverage.AppendRow(table.Row{string(sig.Severity), sig.Description})
	}
	coverage.Render()
	fmt.Fprintln(w)
}

func newSection(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	return t
}

func sentimentLine(rec *model.PersonaRecord) string {
	return fmt.Sprintf("%.1f%% %s", math.Abs(rec.SentimentScore)*100, rec.SentimentLabel)
}

func groupEmoji(heading string) string {
	switch heading {
	case "Motivations":
		return "💡"
	case "Goals & Needs":
		return "🎯"
	case "Behaviors & Habits":
		return "📝"
	case "Frustrations":
		return "😡"
	default:
		return "•"
	}
}

// activityBar renders count against the table maximum as a block bar,
// truncating like integer division so a tiny share still shows empty.
func activityBar(count, max int) string {
	if max <= 0 {
		return ""
	}
	n := int(float64(count) / float64(max) * maxBarLength)
	if n > maxBarLength {
		n = maxBarLength
	}
	return strings.Repeat("█", n)
}
