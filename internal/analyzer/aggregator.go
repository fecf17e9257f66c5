package analyzer

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/scrylabs/scry/pkg/models"
	"github.com/scrylabs/scry/pkg/syntax"
)

// Aggregator accumulates per-file results and rolls them up into project
// metrics. It is safe for concurrent use, so parallel file workers can feed
// a single instance directly.
type Aggregator struct {
	mu    sync.Mutex
	files map[string]models.FileMetrics
}

func NewAggregator() *Aggregator {
	return &Aggregator{files: make(map[string]models.FileMetrics)}
}

// AnalyzeFile computes metrics and smells for one parsed module and records
// the result. Analyzing the same path again replaces the previous result.
func (a *Aggregator) AnalyzeFile(path string, mod *syntax.Module) models.FileMetrics {
	loc := CountStatements(mod.Body)
	volume := Volume(mod.Body)
	complexity := CyclomaticComplexity(mod.Body)
	mi := MaintainabilityIndex(volume, complexity, loc)
	smells := Detect(path, mod)

	fm := models.FileMetrics{
		Path:         path,
		LOC:          loc,
		MI:           mi,
		Smells:       smells,
		QualityScore: QualityScore(mi, smells),
	}

	a.mu.Lock()
	a.files[path] = fm
	a.mu.Unlock()
	return fm
}

// QualityScore converts a maintainability index and a smell list into a
// 0-10 score. The maintainability index contributes up to 5 points and each
// smell subtracts half its severity weight.
func QualityScore(mi float64, smells []models.Smell) float64 {
	penalty := 0.0
	for _, s := range smells {
		penalty += float64(s.Severity.Weight()) * 0.5
	}
	score := mi/20 - penalty
	if score < 0 {
		return 0
	}
	return score
}

// Files returns the recorded per-file metrics keyed by path.
func (a *Aggregator) Files() map[string]models.FileMetrics {
	a.mu.Lock()
	defer a.mu.Unlock()
	files := make(map[string]models.FileMetrics, len(a.files))
	for k, v := range a.files {
		files[k] = v
	}
	return files
}

// Smells returns every recorded smell ordered by file path, then line.
func (a *Aggregator) Smells() []models.Smell {
	a.mu.Lock()
	defer a.mu.Unlock()

	paths := make([]string, 0, len(a.files))
	for p := range a.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var smells []models.Smell
	for _, p := range paths {
		smells = append(smells, a.files[p].Smells...)
	}
	return smells
}

// ProjectMetrics rolls the recorded files up into project-level metrics.
// The project maintainability index weights each file by its statement
// count; the quality score average is unweighted. An empty project reports
// zeros across the board.
func (a *Aggregator) ProjectMetrics(docstringCoverage *float64) models.ProjectMetrics {
	a.mu.Lock()
	defer a.mu.Unlock()

	pm := models.ProjectMetrics{
		TotalFiles:           len(a.files),
		SeverityDistribution: make(map[models.Severity]int),
		Files:                make(map[string]models.FileMetrics, len(a.files)),
		DocstringCoverage:    docstringCoverage,
	}
	for _, sev := range models.Severities() {
		pm.SeverityDistribution[sev] = 0
	}
	if len(a.files) == 0 {
		return pm
	}

	totalLOC := 0
	weightedMI := 0.0
	scores := make([]float64, 0, len(a.files))
	for path, fm := range a.files {
		pm.Files[path] = fm
		totalLOC += fm.LOC
		weightedMI += fm.MI * float64(fm.LOC)
		scores = append(scores, fm.QualityScore)
		pm.TotalSmells += len(fm.Smells)
		for _, s := range fm.Smells {
			pm.SeverityDistribution[s.Severity]++
		}
	}

	if totalLOC > 0 {
		pm.ProjectMI = weightedMI / float64(totalLOC)
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	pm.AvgQualityScore = sum / float64(len(scores))

	sort.Float64s(scores)
	pm.P50QualityScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	pm.P95QualityScore = stat.Quantile(0.95, stat.Empirical, scores, nil)
	return pm
}
