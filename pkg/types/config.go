package types

// CollationConfig holds settings for a collation run.
type CollationConfig struct {
	// InputsDir is the base directory for inputs (contains mark-scheme/,
	// question-paper/, page-mapping/, student-responses/).
	InputsDir string `json:"inputs_dir" yaml:"inputs_dir"`

	// OutputsDir is the directory for generated packets (Q1.pdf, ...,
	// Extra_space.pdf, manifest.yaml). Created if absent.
	OutputsDir string `json:"outputs_dir" yaml:"outputs_dir"`
}

// LedgerConfig holds settings for the run-history ledger.
type LedgerConfig struct {
	// LedgerDir is the directory holding the SQLite run database.
	LedgerDir string `json:"ledger_dir" yaml:"ledger_dir"`

	// Disabled turns off run recording entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Collation CollationConfig `json:"collation" yaml:"collation"`
	Ledger    LedgerConfig    `json:"ledger" yaml:"ledger"`
}
