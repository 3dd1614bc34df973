// Package resume turns the candidate resume reference of an interview kit
// request into a document the LLM can read.
//
// Resumes arrive as data URIs (data:<mime>[;base64],<payload>). Decode keeps
// the raw bytes for providers with native document input and extracts plain
// text for the ones without it.
package resume

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/interviewkit/internal/llm"
	"github.com/vincent-petithory/dataurl"
)

// Document is a decoded resume.
type Document struct {
	// FileName is the display name supplied by the caller. May be empty.
	FileName string

	// MIMEType is the media type declared in the data URI, without parameters.
	MIMEType string

	// Data is the decoded payload.
	Data []byte

	// Text is the extracted plain text. Empty when extraction failed or the
	// type is not supported.
	Text string

	// ExtractErr records why Text is empty, if it is.
	ExtractErr error
}

// ErrInvalidDataURI is returned when the resume reference is not a data URI
// or its payload cannot be decoded.
var ErrInvalidDataURI = errors.New("invalid resume data URI")

// Decode parses a data URI and extracts its text. A malformed URI is an
// error; an extraction failure is not, it is recorded on the Document.
func Decode(uri, fileName string) (*Document, error) {
	if !strings.HasPrefix(strings.TrimSpace(uri), "data:") {
		return nil, fmt.Errorf("%w: missing data: scheme", ErrInvalidDataURI)
	}

	du, err := dataurl.DecodeString(strings.TrimSpace(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	if len(du.Data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidDataURI)
	}

	doc := &Document{
		FileName: fileName,
		MIMEType: du.MediaType.ContentType(),
		Data:     du.Data,
	}
	doc.Text, doc.ExtractErr = ExtractText(doc.MIMEType, doc.Data)
	return doc, nil
}

// Attachment converts the document to an LLM request attachment.
func (d *Document) Attachment() llm.Attachment {
	name := d.FileName
	if name == "" {
		name = "resume"
	}
	return llm.Attachment{
		Name:     name,
		MIMEType: d.MIMEType,
		Data:     d.Data,
		Text:     d.Text,
	}
}

// extensionTypes covers document types that are often missing from the
// system MIME table.
var extensionTypes = map[string]string{
	".pdf":  MIMEPDF,
	".docx": MIMEDocx,
	".txt":  MIMEPlain,
	".md":   MIMEMarkdown,
}

// Load reads a local file and returns it as a data URI, with the MIME type
// guessed from the extension.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("resume file %s is empty", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	mediaType, ok := extensionTypes[ext]
	if !ok {
		mediaType = mime.TypeByExtension(ext)
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}

	return dataurl.New(data, mediaType).String(), nil
}
