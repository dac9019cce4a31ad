package cfg

type Cfg struct {
	// Aggregation window
	Hours int

	// Sources configuration
	SourcesFile string

	// Enrichment
	FetchContent    bool
	SkipTranscripts bool
	Languages       []string

	// HTTP behavior
	Timeout     int
	MaxAttempts int
	UserAgent   string

	// Output
	JSON  bool
	Debug bool

	Version string
}
