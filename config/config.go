package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/darianmavgo/mksql/converters/common"
)

// Config represents the application configuration.
type Config struct {
	Dialect     string `hcl:"dialect,optional"`
	BatchSize   int    `hcl:"batch_size,optional"`
	PreviewRows int    `hcl:"preview_rows,optional"`
	SampleRows  int    `hcl:"sample_rows,optional"`
	OutputDir   string `hcl:"output_dir,optional"`
	DateFormat  string `hcl:"date_format,optional"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dialect:     "postgres",
		BatchSize:   common.DefaultBatchSize,
		PreviewRows: common.DefaultPreviewRows,
		SampleRows:  common.DefaultSampleRows,
		OutputDir:   ".",
		DateFormat:  "%d.%m.%Y",
	}
}

// Load reads the configuration from the given HCL file.
// Attributes missing from the file keep their default values.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	cfg := DefaultConfig()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Export writes the configuration to the specified file in HCL format.
func Export(path string, cfg *Config) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("dialect", cty.StringVal(cfg.Dialect))
	root.SetAttributeValue("batch_size", cty.NumberIntVal(int64(cfg.BatchSize)))
	root.SetAttributeValue("preview_rows", cty.NumberIntVal(int64(cfg.PreviewRows)))
	root.SetAttributeValue("sample_rows", cty.NumberIntVal(int64(cfg.SampleRows)))
	root.SetAttributeValue("output_dir", cty.StringVal(cfg.OutputDir))
	root.SetAttributeValue("date_format", cty.StringVal(cfg.DateFormat))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(f.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write config to file: %w", err)
	}

	return nil
}

// Validate checks the values a conversion depends on.
func (c *Config) Validate() error {
	_, err := c.Conversion().Validate()
	return err
}

// Conversion builds the per-run conversion settings from the file settings.
func (c *Config) Conversion() *common.ConversionConfig {
	return &common.ConversionConfig{
		Dialect:     c.Dialect,
		BatchSize:   c.BatchSize,
		PreviewRows: c.PreviewRows,
		SampleRows:  c.SampleRows,
	}
}
