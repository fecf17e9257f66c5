package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrylabs/scry/pkg/models"
)

func sampleProject() models.ProjectMetrics {
	smell := models.Smell{
		Type:        models.SmellLongMethod,
		File:        "app.py",
		NodeName:    "handler",
		Line:        10,
		Severity:    models.SeverityHigh,
		Description: "Method 'handler' has 40 statements (max. 20)",
	}
	return models.ProjectMetrics{
		ProjectMI:       72.5,
		AvgQualityScore: 3.1,
		TotalFiles:      2,
		TotalSmells:     1,
		SeverityDistribution: map[models.Severity]int{
			models.SeverityHigh: 1,
		},
		Files: map[string]models.FileMetrics{
			"app.py": {
				Path:         "app.py",
				LOC:          60,
				MI:           65.0,
				Smells:       []models.Smell{smell},
				QualityScore: 1.75,
			},
			"util.py": {
				Path:         "util.py",
				LOC:          10,
				MI:           90.0,
				QualityScore: 4.5,
			},
		},
	}
}

func TestNewDerivesSmellsFromFiles(t *testing.T) {
	rep := New("proj", "1.2.3", sampleProject())
	require.Len(t, rep.Smells, 1)
	assert.Equal(t, "app.py", rep.Smells[0].File)
	assert.Equal(t, "proj", rep.Metadata.Root)
	assert.Equal(t, "1.2.3", rep.Metadata.ScryVersion)
	assert.False(t, rep.Metadata.GeneratedAt.IsZero())
}

func TestFileRowsWorstFirst(t *testing.T) {
	rows := New("proj", "dev", sampleProject()).FileRows()
	require.Len(t, rows, 2)
	assert.Equal(t, "app.py", rows[0].Path)
	assert.Equal(t, "util.py", rows[1].Path)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("proj", "dev", sampleProject()).WriteJSON(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Project.TotalFiles)
	assert.Len(t, decoded.Smells, 1)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("proj", "dev", sampleProject()).WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"file", "line", "type", "severity", "node", "description"}, records[0])
	assert.Equal(t, "app.py", records[1][0])
	assert.Equal(t, "10", records[1][1])
	assert.Equal(t, "long_method", records[1][2])
}

func TestRenderHTML(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(New("proj", "dev", sampleProject()), &buf))

	html := buf.String()
	assert.Contains(t, html, "Code Quality Report")
	assert.Contains(t, html, "app.py")
	assert.Contains(t, html, "long_method")
}

func TestRenderHTMLWithDocstringCoverage(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	pm := sampleProject()
	cov := 81.25
	pm.DocstringCoverage = &cov

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(New("proj", "dev", pm), &buf))
	assert.Contains(t, buf.String(), "81.25")
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	written, err := WriteAll(New("proj", "dev", sampleProject()), dir)
	require.NoError(t, err)
	require.Len(t, written, 3)

	for _, name := range []string{"report.json", "smells.csv", "report.html"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
