package llm

import (
	"fmt"
	"strings"
)

// attachmentsAsText renders attachments as a text block for providers that
// cannot take documents inline. Returns "" when there are none.
func attachmentsAsText(atts []Attachment) string {
	if len(atts) == 0 {
		return ""
	}

	var b strings.Builder
	for i, a := range atts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		name := a.Name
		if name == "" {
			name = "document"
		}
		fmt.Fprintf(&b, "[attachment: %s (%s)]\n", name, a.MIMEType)
		if a.Text != "" {
			b.WriteString(a.Text)
		} else {
			b.WriteString("(no text could be extracted from this document)")
		}
	}
	return b.String()
}

// withAttachmentText returns msgs with the text rendering of atts appended
// to the last user message. msgs is not modified.
func withAttachmentText(msgs []Message, atts []Attachment) []Message {
	text := attachmentsAsText(atts)
	if text == "" {
		return msgs
	}

	out := make([]Message, len(msgs))
	copy(out, msgs)

	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Role == RoleUser {
			out[i].Content = out[i].Content + "\n\n" + text
			return out
		}
	}
	return append(out, Message{Role: RoleUser, Content: text})
}
