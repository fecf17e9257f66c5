package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrylabs/scry/pkg/models"
)

func TestAggregatorEmptyProject(t *testing.T) {
	pm := NewAggregator().ProjectMetrics(nil)
	assert.Zero(t, pm.ProjectMI)
	assert.Zero(t, pm.AvgQualityScore)
	assert.Zero(t, pm.TotalFiles)
	assert.Zero(t, pm.TotalSmells)
	assert.Empty(t, pm.Files)
	for _, sev := range models.Severities() {
		assert.Zero(t, pm.SeverityDistribution[sev])
	}
}

func TestAggregatorSingleFile(t *testing.T) {
	agg := NewAggregator()
	mod := parseSource(t, "def f(a: int) -> int:\n    return a + 1\n")
	fm := agg.AnalyzeFile("a.py", mod)

	assert.Equal(t, "a.py", fm.Path)
	assert.Equal(t, 2, fm.LOC)
	assert.Empty(t, fm.Smells)

	pm := agg.ProjectMetrics(nil)
	assert.Equal(t, 1, pm.TotalFiles)
	assert.InDelta(t, fm.MI, pm.ProjectMI, 1e-9)
	assert.InDelta(t, fm.QualityScore, pm.AvgQualityScore, 1e-9)
}

func TestAggregatorWeightsProjectMIByFileSize(t *testing.T) {
	agg := NewAggregator()
	big := agg.AnalyzeFile("big.py", parseSource(t, functionWithStatements("f", 15)+nestedIfs(3)))
	small := agg.AnalyzeFile("small.py", parseSource(t, "x = 1\n"))
	require.Greater(t, big.LOC, small.LOC)

	pm := agg.ProjectMetrics(nil)
	expected := (big.MI*float64(big.LOC) + small.MI*float64(small.LOC)) / float64(big.LOC+small.LOC)
	assert.InDelta(t, expected, pm.ProjectMI, 1e-9)
}

func TestAggregatorReanalysisReplaces(t *testing.T) {
	agg := NewAggregator()
	long := "def f() -> None:\n" + strings.Repeat("    g(1)\n", 24)
	agg.AnalyzeFile("a.py", parseSource(t, long))
	first := agg.ProjectMetrics(nil)
	require.Equal(t, 1, first.TotalSmells)

	// The long method was fixed and the file re-analyzed.
	agg.AnalyzeFile("a.py", parseSource(t, "def f() -> int:\n    return 1\n"))
	second := agg.ProjectMetrics(nil)
	assert.Equal(t, 1, second.TotalFiles)
	assert.Zero(t, second.TotalSmells)
	assert.Empty(t, agg.Smells())
}

func TestAggregatorSeverityDistribution(t *testing.T) {
	agg := NewAggregator()
	agg.AnalyzeFile("a.py", parseSource(t, "import os\nimport sys\n"))
	agg.AnalyzeFile("b.py", parseSource(t, "def f(a, b, c, d, e):\n    pass\n"))

	pm := agg.ProjectMetrics(nil)
	assert.Equal(t, 1, pm.SeverityDistribution[models.SeverityLow])
	// Long parameter list plus missing type hints.
	assert.Equal(t, 2, pm.SeverityDistribution[models.SeverityMedium])
	assert.Equal(t, 3, pm.TotalSmells)
}

func TestAggregatorSmellsOrderedByPath(t *testing.T) {
	agg := NewAggregator()
	agg.AnalyzeFile("b.py", parseSource(t, "import os\n"))
	agg.AnalyzeFile("a.py", parseSource(t, "import sys\n"))

	smells := agg.Smells()
	require.Len(t, smells, 2)
	assert.Equal(t, "a.py", smells[0].File)
	assert.Equal(t, "b.py", smells[1].File)
}

func TestAggregatorQuantiles(t *testing.T) {
	agg := NewAggregator()
	agg.AnalyzeFile("a.py", parseSource(t, "x = 1\n"))
	agg.AnalyzeFile("b.py", parseSource(t, functionWithStatements("f", 25)))

	pm := agg.ProjectMetrics(nil)
	assert.LessOrEqual(t, pm.P50QualityScore, pm.P95QualityScore)
}

func TestAggregatorDocstringCoverage(t *testing.T) {
	cov := 75.0
	pm := NewAggregator().ProjectMetrics(&cov)
	require.NotNil(t, pm.DocstringCoverage)
	assert.Equal(t, 75.0, *pm.DocstringCoverage)
}

func TestMeasureDocstrings(t *testing.T) {
	src := `def documented() -> None:
    """Does things."""
    pass

def bare() -> None:
    pass

class Widget:
    """A widget."""

    def method(self) -> None:
        pass
`
	stats := MeasureDocstrings(parseSource(t, src))
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Documented)
	assert.InDelta(t, 50.0, stats.Coverage(), 1e-9)
}

func TestDocstringCoverageEmptyModule(t *testing.T) {
	stats := MeasureDocstrings(parseSource(t, "x = 1\n"))
	assert.Zero(t, stats.Total)
	assert.Equal(t, 100.0, stats.Coverage())
}
