// Package render writes interview kits for people (styled text) and for
// tools (JSON, YAML).
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/interviewkit/internal/interviewkit"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a format name. Empty means FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Write encodes kit to w in the given format.
func Write(w io.Writer, kit *interviewkit.Kit, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(kit)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(kit); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		_, err := lipgloss.Fprint(w, Text(kit))
		return err
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// Text renders kit as styled terminal text. Colors are downsampled or
// stripped by Write depending on the destination.
func Text(kit *interviewkit.Kit) string {
	var b strings.Builder

	b.WriteString(Title.Render("Interview kit"))
	b.WriteString(" ")
	b.WriteString(Subtitle.Render(fmt.Sprintf("%d questions", len(kit.Questions))))
	b.WriteString("\n")
	b.WriteString(Rule.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	for i, q := range kit.Questions {
		b.WriteString(Number.Render(fmt.Sprintf("Q%d.", i+1)))
		b.WriteString(" ")
		b.WriteString(styleOrPlaceholder(Question, q.Question, interviewkit.MissingQuestion))
		b.WriteString("\n")
		b.WriteString(ID.Render("id: " + q.ID))
		b.WriteString("\n\n")
		b.WriteString(styleOrPlaceholder(Answer, strings.TrimSpace(q.ModelAnswer), interviewkit.MissingModelAnswer))
		b.WriteString("\n\n")
	}

	return b.String()
}

func styleOrPlaceholder(style lipgloss.Style, s, placeholder string) string {
	if s == placeholder {
		return style.Foreground(Warn).Italic(true).Render(s)
	}
	return style.Render(s)
}
