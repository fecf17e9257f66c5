// Package review turns detected smells into human-readable review
// comments, either from built-in rule templates or from an AI model.
package review

import (
	"github.com/scrylabs/scry/pkg/models"
)

// Source identifies where a review comment came from.
type Source string

const (
	SourceRules Source = "rules"
	SourceAI    Source = "ai"
)

// Review is a single reviewed smell. Fingerprint keys the finding so
// consumers can correlate reviews across runs.
type Review struct {
	Smell       models.Smell `json:"smell"`
	Fingerprint uint64       `json:"fingerprint"`
	Title       string       `json:"title"`
	Explanation string       `json:"explanation"`
	Suggestion  string       `json:"suggestion"`
	Source      Source       `json:"source"`
}

// Engine produces a review for a smell.
type Engine interface {
	Review(smell models.Smell) (Review, error)
}
