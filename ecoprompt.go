package ecoprompt

import (
	"github.com/omegabytes/ecoprompt/refdata"
	"github.com/omegabytes/ecoprompt/report"
)

// New returns a calculator backed by the embedded reference data.
func New(opts ...report.Option) (*report.Calculator, error) {
	store, err := refdata.Default()
	if err != nil {
		return nil, err
	}
	return report.NewCalculator(store, opts...), nil
}

// NewFromDir returns a calculator backed by the reference documents in dir.
func NewFromDir(dir string, opts ...report.Option) (*report.Calculator, error) {
	store, err := refdata.Load(dir)
	if err != nil {
		return nil, err
	}
	return report.NewCalculator(store, opts...), nil
}
