package hook

import (
	"fmt"

	"gpucrash/internal/catalog"
	"gpucrash/internal/classify"
	"gpucrash/internal/collect"
	"gpucrash/internal/config"
	"gpucrash/internal/gpu"
	"gpucrash/internal/logging"
	"gpucrash/internal/report"
	"gpucrash/internal/signature"
	"gpucrash/internal/suppress"
)

// NewMatcher builds the hardware catalog from the built-in profiles and the
// configured override file
func NewMatcher(cfg config.CatalogConfig) (*catalog.Matcher, error) {
	profiles := catalog.DefaultProfiles()
	if cfg.ExtraProfiles != "" {
		extra, err := catalog.LoadProfiles(cfg.ExtraProfiles)
		if err != nil {
			return nil, err
		}
		profiles = catalog.Combine(profiles, extra, cfg.Placement == config.PlacementPrepend)
	}
	return catalog.New(profiles)
}

// Wire builds the production dependencies from a loaded configuration
func Wire(cfg config.Config, logger *logging.Logger) (Dependencies, error) {
	matcher, err := NewMatcher(cfg.Catalog)
	if err != nil {
		return Dependencies{}, fmt.Errorf("failed to build hardware catalog: %w", err)
	}

	alg, err := signature.ParseAlgorithm(cfg.Signature.Hash)
	if err != nil {
		return Dependencies{}, err
	}

	sink, err := report.NewSink(cfg.Report, logger)
	if err != nil {
		return Dependencies{}, fmt.Errorf("failed to configure report sink: %w", err)
	}

	collectCfg := collect.NewConfig(cfg.Collect)
	runner := collect.ExecRunner{}

	return Dependencies{
		PCI:         collect.NewPCIProvider(collectCfg, runner, logger),
		Dumps:       collect.NewDumpProvider(collectCfg, runner, logger),
		Devices:     gpu.NewDetector(logger),
		Attachments: collect.NewCollector(collectCfg, runner, logger),
		Classifier:  classify.New(matcher, signature.New(alg), logger),
		Algorithm:   alg,
		Sink:        sink,
		Gate:        suppress.New(cfg.Suppress, logger),
	}, nil
}
