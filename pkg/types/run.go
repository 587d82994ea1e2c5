// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// OutputRecord describes one generated packet file.
type OutputRecord struct {
	File  string `json:"file" yaml:"file"`
	Pages int    `json:"pages" yaml:"pages"`
}

// RunRecord summarizes one completed collation run. It is written to the
// run manifest and appended to the ledger.
type RunRecord struct {
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time      `json:"finished_at" yaml:"finished_at"`
	Students   int            `json:"students" yaml:"students"`
	Questions  int            `json:"questions" yaml:"questions"`
	Outputs    []OutputRecord `json:"outputs" yaml:"outputs"`
}

// TotalPages returns the number of composed pages across all outputs.
func (r RunRecord) TotalPages() int {
	total := 0
	for _, o := range r.Outputs {
		total += o.Pages
	}
	return total
}
