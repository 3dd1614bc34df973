package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/interviewkit/internal/interviewkit"
	"github.com/abhisek/interviewkit/internal/resume"
)

// maxJobDescriptionBytes caps job descriptions read from URLs or stdin.
const maxJobDescriptionBytes = 1 << 20

// inputFlags holds the raw generate flags before they are resolved.
type inputFlags struct {
	inputFile  string
	jdSource   string
	jdText     string
	profile    string
	resumePath string
	experience string
}

// decodeInput parses a request file strictly: unknown fields and trailing
// data are errors, so a misspelled key cannot silently drop a value.
func decodeInput(data []byte, in *interviewkit.Input) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(in); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after the request object")
	}
	return nil
}

// buildInput assembles an Input from an optional JSON request file and
// the individual flags. Flags win over the file.
func buildInput(ctx context.Context, f inputFlags, stdin io.Reader, client *http.Client) (interviewkit.Input, error) {
	var in interviewkit.Input

	if f.inputFile != "" {
		data, err := os.ReadFile(f.inputFile)
		if err != nil {
			return in, fmt.Errorf("read input file: %w", err)
		}
		if err := decodeInput(data, &in); err != nil {
			return in, fmt.Errorf("parse input file %s: %w", f.inputFile, err)
		}
	}

	switch {
	case f.jdText != "" && f.jdSource != "":
		return in, fmt.Errorf("use either --job-description or --job-description-text, not both")
	case f.jdText != "":
		in.JobDescription = f.jdText
	case f.jdSource != "":
		jd, err := loadJobDescription(ctx, f.jdSource, stdin, client)
		if err != nil {
			return in, err
		}
		in.JobDescription = jd
	}

	if f.profile != "" {
		in.UnstopProfileLink = f.profile
	}
	if f.experience != "" {
		in.CandidateExperienceContext = f.experience
	}

	if f.resumePath != "" {
		uri, err := resume.Load(f.resumePath)
		if err != nil {
			return in, err
		}
		in.CandidateResumeDataURI = uri
		in.CandidateResumeFileName = filepath.Base(f.resumePath)
	}

	return in, nil
}

// loadJobDescription reads a job description from "-" (stdin), an
// http(s) URL or a local file.
func loadJobDescription(ctx context.Context, source string, stdin io.Reader, client *http.Client) (string, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case source == "-":
		data, err = io.ReadAll(io.LimitReader(stdin, maxJobDescriptionBytes))
		if err != nil {
			return "", fmt.Errorf("read job description from stdin: %w", err)
		}
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		data, err = fetchURL(ctx, client, source)
		if err != nil {
			return "", err
		}
	default:
		data, err = os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("read job description: %w", err)
		}
	}

	jd := strings.TrimSpace(string(data))
	if jd == "" {
		return "", fmt.Errorf("job description from %s is empty", source)
	}
	return jd, nil
}

func fetchURL(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/plain, text/markdown, text/html;q=0.9, */*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch job description: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch job description: %s returned %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxJobDescriptionBytes))
	if err != nil {
		return nil, fmt.Errorf("read job description body: %w", err)
	}
	return data, nil
}
