package models

// FileMetrics holds the quality metrics for one analyzed file. It is
// immutable after the analysis of the file completes.
type FileMetrics struct {
	Path         string  `json:"file_path"`
	LOC          int     `json:"loc"` // logical statement count
	MI           float64 `json:"mi"`  // maintainability index, 0-100
	Smells       []Smell `json:"smells"`
	QualityScore float64 `json:"quality_score"`
}

// ProjectMetrics aggregates all analyzed files. It is a pure function of
// the current file set, computed on demand.
type ProjectMetrics struct {
	ProjectMI            float64                `json:"project_mi"`        // statement-count-weighted mean of file MIs
	AvgQualityScore      float64                `json:"avg_quality_score"` // unweighted mean of file quality scores
	TotalFiles           int                    `json:"total_files"`
	TotalSmells          int                    `json:"total_smells"`
	SeverityDistribution map[Severity]int       `json:"severity_distribution"`
	P50QualityScore      float64                `json:"p50_quality_score"`
	P95QualityScore      float64                `json:"p95_quality_score"`
	Files                map[string]FileMetrics `json:"files"`
	DocstringCoverage    *float64               `json:"docstring_coverage,omitempty"`
}

// CountBySeverity returns the number of smells at the given severity.
func (p *ProjectMetrics) CountBySeverity(sev Severity) int {
	if p.SeverityDistribution == nil {
		return 0
	}
	return p.SeverityDistribution[sev]
}
