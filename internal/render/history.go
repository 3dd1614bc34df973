package render

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/abhisek/interviewkit/internal/llm"
	"github.com/abhisek/interviewkit/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	tableHeader = lipgloss.NewStyle().Bold(true).Foreground(Primary).Padding(0, 1)
	tableCell   = lipgloss.NewStyle().Padding(0, 1)
	tableNum    = tableCell.Align(lipgloss.Right)
	failed      = lipgloss.NewStyle().Foreground(Warn)
	label       = lipgloss.NewStyle().Foreground(TextDim).Width(10)
)

// newTable returns a bordered table; numeric columns are right aligned.
func newTable(numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Rule).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeader
			case right[col]:
				return tableNum
			default:
				return tableCell
			}
		})
}

// EventList renders recorded LLM requests, one row each.
func EventList(events []store.LLMRequestEvent) string {
	if len(events) == 0 {
		return Subtitle.Render("No LLM events found.")
	}

	t := newTable(0, 4, 5, 6).Headers("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	for _, e := range events {
		ok := "yes"
		if !e.Success {
			ok = failed.Render("no")
		}
		t.Row(
			strconv.Itoa(e.ID),
			e.Timestamp.Local().Format(timeLayout),
			e.Purpose,
			truncate(e.Model, 32),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
		)
	}
	return t.String()
}

// EventDetail renders a single event with its captured request and response.
func EventDetail(e *store.LLMRequestEvent) string {
	var b strings.Builder

	field := func(name, value string) {
		b.WriteString(label.Render(name))
		b.WriteString(value)
		b.WriteByte('\n')
	}
	field("ID", strconv.Itoa(e.ID))
	field("Time", e.Timestamp.Local().Format(timeLayout))
	field("Provider", e.Provider)
	field("Model", e.Model)
	field("Purpose", e.Purpose)
	field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	if usd, ok := llm.EstimateCost(e.Model, llm.Usage{InputTokens: e.InputTokens, OutputTokens: e.OutputTokens}); ok {
		field("Cost", formatCost(usd))
	}
	field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
	if e.Success {
		field("Success", "yes")
	} else {
		field("Success", failed.Render("no"))
	}
	if e.ErrorMessage != "" {
		field("Error", failed.Render(e.ErrorMessage))
	}

	section := func(name, body string) {
		b.WriteByte('\n')
		b.WriteString(Title.Render(name))
		b.WriteByte('\n')
		b.WriteString(Rule.Render(strings.Repeat("─", 60)))
		b.WriteByte('\n')
		if body == "" {
			body = Subtitle.Render("(not captured)")
		}
		b.WriteString(strings.TrimRight(body, "\n"))
		b.WriteByte('\n')
	}
	section("REQUEST", e.RequestBody)
	section("RESPONSE", e.ResponseBody)

	return b.String()
}

// UsageReport renders token usage per purpose and estimated cost per model.
// Models missing from the price table are listed but left out of the total.
func UsageReport(purposes []store.PurposeUsage, models []store.ModelUsage) string {
	if len(purposes) == 0 {
		return Subtitle.Render("No LLM usage recorded yet.")
	}

	var b strings.Builder

	byPurpose := newTable(1, 2, 3, 4, 5).Headers("Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	var calls, in, out int
	for _, u := range purposes {
		byPurpose.Row(
			u.Purpose,
			strconv.Itoa(u.Calls),
			strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens),
			strconv.Itoa(u.InputTokens+u.OutputTokens),
			strconv.FormatInt(u.AvgLatencyMs, 10),
		)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	byPurpose.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), strconv.Itoa(in+out), "")

	b.WriteString(Title.Render("Usage by purpose"))
	b.WriteByte('\n')
	b.WriteString(byPurpose.String())
	b.WriteByte('\n')

	if len(models) == 0 {
		return b.String()
	}

	byModel := newTable(1, 2, 3, 4).Headers("Model", "Calls", "Input", "Output", "Cost")
	var total float64
	var unknown []string
	for _, u := range models {
		cost := "?"
		if usd, ok := llm.EstimateCost(u.Model, llm.Usage{InputTokens: u.InputTokens, OutputTokens: u.OutputTokens}); ok {
			total += usd
			cost = formatCost(usd)
		} else {
			unknown = append(unknown, u.Model)
		}
		byModel.Row(
			truncate(u.Model, 32),
			strconv.Itoa(u.Calls),
			strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens),
			cost,
		)
	}
	totalLabel := "TOTAL"
	if len(unknown) > 0 {
		totalLabel = "TOTAL (partial)"
	}
	byModel.Row(totalLabel, "", "", "", formatCost(total))

	b.WriteByte('\n')
	b.WriteString(Title.Render("Estimated cost (USD)"))
	b.WriteByte('\n')
	b.WriteString(byModel.String())
	b.WriteByte('\n')
	if len(unknown) > 0 {
		b.WriteString(Subtitle.Render("Pricing unavailable for: " + strings.Join(unknown, ", ")))
		b.WriteByte('\n')
	}

	return b.String()
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
