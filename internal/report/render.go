package report

import (
	"embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/scrylabs/scry/pkg/models"
)

//go:embed template.html
var templateFS embed.FS

// WriteJSON writes the full report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes the smell list as CSV, one row per smell.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"file", "line", "type", "severity", "node", "description"}); err != nil {
		return err
	}
	for _, s := range r.Smells {
		row := []string{
			s.File,
			strconv.Itoa(s.Line),
			string(s.Type),
			string(s.Severity),
			s.NodeName,
			s.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Renderer handles HTML report generation.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer with the embedded template.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"scoreClass": func(score float64) string {
			if score >= 7 {
				return "good"
			}
			if score >= 4 {
				return "warning"
			}
			return "danger"
		},
		"sevClass": func(sev models.Severity) string {
			return string(sev)
		},
		"lower": strings.ToLower,
		"title": cases.Title(language.English).String,
		"num": func(n int) string {
			return message.NewPrinter(language.English).Sprintf("%d", n)
		},
		"score": func(v any) string {
			switch x := v.(type) {
			case float64:
				return fmt.Sprintf("%.2f", x)
			case *float64:
				if x != nil {
					return fmt.Sprintf("%.2f", *x)
				}
			}
			return "0.00"
		},
		"truncatePath": func(s string, n int) string {
			if len(s) <= n {
				return s
			}
			parts := strings.Split(s, "/")
			name := parts[len(parts)-1]
			if len(name) >= n-3 {
				return "..." + name[len(name)-n+3:]
			}
			return ".../" + name
		},
		"limit": func(smells []models.Smell, n int) []models.Smell {
			if len(smells) > n {
				return smells[:n]
			}
			return smells
		},
	}

	content, err := templateFS.ReadFile("template.html")
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("report").Funcs(funcMap).Parse(string(content))
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the HTML report.
func (r *Renderer) Render(rep *Report, w io.Writer) error {
	return r.tmpl.Execute(w, rep)
}

// WriteAll writes the JSON, CSV, and HTML artifacts into dir, creating it
// if needed, and returns the written paths.
func WriteAll(rep *Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := fn(f); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := write("report.json", rep.WriteJSON); err != nil {
		return nil, err
	}
	if err := write("smells.csv", rep.WriteCSV); err != nil {
		return nil, err
	}

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	if err := write("report.html", func(w io.Writer) error {
		return renderer.Render(rep, w)
	}); err != nil {
		return nil, err
	}
	return written, nil
}
