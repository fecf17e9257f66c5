package report

import (
	"sort"
	"time"

	"github.com/scrylabs/scry/pkg/models"
)

// Metadata contains report generation metadata.
type Metadata struct {
	Root        string    `json:"root"`
	GeneratedAt time.Time `json:"generated_at"`
	ScryVersion string    `json:"scry_version"`
}

// Report bundles everything a single analysis run produced.
type Report struct {
	Metadata Metadata              `json:"metadata"`
	Project  models.ProjectMetrics `json:"project"`
	Smells   []models.Smell        `json:"smells"`
}

// New assembles a report from project metrics. The smell list is derived
// from the per-file results so the report can never disagree with them.
func New(root, version string, project models.ProjectMetrics) *Report {
	paths := make([]string, 0, len(project.Files))
	for p := range project.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var smells []models.Smell
	for _, p := range paths {
		smells = append(smells, project.Files[p].Smells...)
	}

	return &Report{
		Metadata: Metadata{
			Root:        root,
			GeneratedAt: time.Now().UTC(),
			ScryVersion: version,
		},
		Project: project,
		Smells:  smells,
	}
}

// FileRows returns per-file metrics ordered by ascending quality score, so
// the worst files lead the report.
func (r *Report) FileRows() []models.FileMetrics {
	rows := make([]models.FileMetrics, 0, len(r.Project.Files))
	for _, fm := range r.Project.Files {
		rows = append(rows, fm)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].QualityScore != rows[j].QualityScore {
			return rows[i].QualityScore < rows[j].QualityScore
		}
		return rows[i].Path < rows[j].Path
	})
	return rows
}
