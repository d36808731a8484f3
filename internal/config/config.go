// Package config provides configuration structures and loading for nlplaces.
package config

// Config represents the complete application configuration.
type Config struct {
	Sources      SourcesConfig      `yaml:"sources" mapstructure:"sources"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Reconcile    ReconcileConfig    `yaml:"reconcile" mapstructure:"reconcile"`
	Capital      CapitalConfig      `yaml:"capital" mapstructure:"capital"`
	Verification VerificationConfig `yaml:"verification" mapstructure:"verification"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// SourcesConfig holds the URLs of the live open-data sources.
type SourcesConfig struct {
	Neighbourhoods string `yaml:"neighbourhoods" mapstructure:"neighbourhoods"` // CBS OData WijkenEnBuurten
	Municipalities string `yaml:"municipalities" mapstructure:"municipalities"` // Wikipedia municipality list
	Capital        string `yaml:"capital" mapstructure:"capital"`               // city-scoped CSV feed
}

// OutputConfig controls where artifacts are written.
type OutputConfig struct {
	Root         string `yaml:"root" mapstructure:"root"`
	ArtifactName string `yaml:"artifact_name" mapstructure:"artifact_name"`
	Country      string `yaml:"country" mapstructure:"country"`
}

// HTTPConfig represents transport settings shared by all fetchers.
type HTTPConfig struct {
	UserAgent      string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"` // 0 keeps the transport default
}

// ReconcileConfig points at an optional replacement for the embedded reconciliation tables.
type ReconcileConfig struct {
	TablesFile string `yaml:"tables_file" mapstructure:"tables_file"`
}

// CapitalConfig represents settings for the capital-city variant.
type CapitalConfig struct {
	Artifact       string   `yaml:"artifact" mapstructure:"artifact"`
	Suffix         string   `yaml:"suffix" mapstructure:"suffix"`
	CodePrefix     string   `yaml:"code_prefix" mapstructure:"code_prefix"`
	CodeLabels     []string `yaml:"code_labels" mapstructure:"code_labels"`
	NameLabels     []string `yaml:"name_labels" mapstructure:"name_labels"`
	MinCardinality int      `yaml:"min_cardinality" mapstructure:"min_cardinality"`
}

// VerificationConfig represents output verification settings.
type VerificationConfig struct {
	Method           string `yaml:"method" mapstructure:"method"` // "count", "sha256" or "skip"
	ExpectedSHA256   string `yaml:"expected_sha256" mapstructure:"expected_sha256"`
	SkipVerification bool   `yaml:"skip_verification" mapstructure:"skip_verification"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with the hardcoded source URLs and output layout.
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			Neighbourhoods: "https://opendata.cbs.nl/ODataApi/odata/84583NED/WijkenEnBuurten?$top=20000",
			Municipalities: "https://nl.wikipedia.org/wiki/Lijst_van_Nederlandse_gemeenten",
			Capital:        "https://api.data.amsterdam.nl/v1/gebieden/buurten/?_format=csv",
		},
		Output: OutputConfig{
			Root:         "out/locations",
			ArtifactName: "LOCATIONS.js",
			Country:      "Netherlands",
		},
		HTTP: HTTPConfig{
			UserAgent: "Mozilla/5.0",
		},
		Capital: CapitalConfig{
			Artifact:       "AMSTERDAM_LOCATIONS.js",
			Suffix:         "Amsterdam, North Holland, Netherlands",
			CodePrefix:     "BU0363",
			CodeLabels:     []string{"code", "cbs_code", "cbscode", "identificatie"},
			NameLabels:     []string{"naam", "name", "buurt", "buurtnaam"},
			MinCardinality: 20,
		},
		Verification: VerificationConfig{
			Method: "count",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
