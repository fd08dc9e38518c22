package suppress

import (
	"errors"
	"time"

	"gpucrash/internal/config"
	"gpucrash/internal/logging"
)

// Chain applies several gates in order; the first refusal wins
type Chain []Gate

// Allow implements Gate
func (c Chain) Allow() error {
	for _, g := range c {
		if err := g.Allow(); err != nil {
			return err
		}
	}
	return nil
}

// AllowSignature implements Gate
func (c Chain) AllowSignature(signature string) error {
	for _, g := range c {
		if err := g.AllowSignature(signature); err != nil {
			return err
		}
	}
	return nil
}

// Record implements Gate; every gate is recorded even if one fails
func (c Chain) Record(signature, reportPath string) error {
	var errs []error
	for _, g := range c {
		if err := g.Record(signature, reportPath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New builds the gate chain described by cfg
func New(cfg config.SuppressConfig, logger *logging.Logger) Chain {
	chain := Chain{
		NewLeaseGate(cfg.StateDir, time.Duration(cfg.WindowSeconds)*time.Second, logger),
	}
	if cfg.Ledger {
		chain = append(chain, NewLedger(cfg.StateDir, logger))
	}
	return chain
}
