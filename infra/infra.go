// Package infra models the datacenter infrastructure that hosts a model: how much overhead the
// facility adds to IT energy (PUE), how much water it consumes per kWh (WUE), and how carbon
// intensive its electricity is (CIF).
package infra

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fastjson"

	"github.com/omegabytes/ecoprompt/common"
)

// ProviderID identifies an infrastructure provider in infrastructure.json.
type ProviderID string

const (
	MicrosoftAzure ProviderID = "microsoft_azure"
	AWS            ProviderID = "aws"
	DeepSeek       ProviderID = "deepseek"
	GoogleCloud    ProviderID = "google_cloud"
)

// ErrUnknownHost is returned when a hosting platform name has no provider mapping.
var ErrUnknownHost = errors.New("unknown hosting provider")

var hostProviders = map[string]ProviderID{
	"Microsoft Azure": MicrosoftAzure,
	"AWS":             AWS,
	"DeepSeek":        DeepSeek,
	"Google Cloud":    GoogleCloud,
}

// ProviderForHost maps a hosting platform name, as written in model_benchmarks.json, to its provider.
func ProviderForHost(host string) (ProviderID, error) {
	id, ok := hostProviders[host]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHost, host)
	}
	return id, nil
}

// Provider holds the infrastructure multipliers of one provider.
type Provider struct {
	ID   ProviderID `json:"id"`
	Name string     `json:"name"`

	// PUE is the Power Usage Effectiveness: facility energy divided by IT energy.
	PUE float64 `json:"pue"`

	// WUEOnsite is on-site cooling water in L/kWh of IT energy.
	WUEOnsite float64 `json:"wue_onsite_l_per_kwh"`

	// WUEOffsite is water consumed generating the electricity, in L/kWh.
	WUEOffsite float64 `json:"wue_offsite_l_per_kwh"`

	// CIF is the Carbon Intensity Factor of the electricity in kgCO2e/kWh.
	CIF float64 `json:"cif_kgco2e_per_kwh"`
}

// Validate checks that the multipliers are usable in the impact formulas.
func (p *Provider) Validate() error {
	switch {
	case p.PUE <= 0:
		return fmt.Errorf("provider %s: pue must be greater than 0", p.ID)
	case p.WUEOnsite < 0 || p.WUEOffsite < 0:
		return fmt.Errorf("provider %s: wue values must be non-negative", p.ID)
	case p.CIF < 0:
		return fmt.Errorf("provider %s: cif must be non-negative", p.ID)
	}
	return nil
}

// NodeEnergyKWH returns the facility energy in kWh of running a node drawing powerKW for the
// given number of seconds.
func (p *Provider) NodeEnergyKWH(seconds, powerKW float64) (float64, error) {
	if seconds < 0 {
		return 0, fmt.Errorf("seconds must be non-negative")
	}
	if powerKW <= 0 {
		return 0, fmt.Errorf("power must be greater than 0")
	}
	return (seconds / 3600) * powerKW * p.PUE, nil
}

// OnsiteWaterL returns the on-site cooling water in liters for energyKWH of facility energy.
// Cooling scales with IT energy, so PUE overhead is removed first.
func (p *Provider) OnsiteWaterL(energyKWH float64) float64 {
	return (energyKWH / p.PUE) * p.WUEOnsite
}

// OffsiteWaterL returns the water consumed generating energyKWH of electricity, in liters.
func (p *Provider) OffsiteWaterL(energyKWH float64) float64 {
	return energyKWH * p.WUEOffsite
}

// CarbonKg returns the emissions of energyKWH of electricity in kgCO2e.
func (p *Provider) CarbonKg(energyKWH float64) float64 {
	return energyKWH * p.CIF
}

// FetchProviders reads and parses an infrastructure.json document.
func FetchProviders(source string) (map[ProviderID]Provider, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseProviders(data)
}

// ParseProviders parses an infrastructure document of the form {"providers": {"<id>": {...}}}.
func ParseProviders(data []byte) (map[ProviderID]Provider, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse infrastructure: %w", err)
	}

	pv := v.Get("providers")
	if pv == nil {
		return nil, fmt.Errorf("%w: missing field %q", common.ErrInvalidDocument, "providers")
	}
	obj, err := pv.Object()
	if err != nil {
		return nil, fmt.Errorf("%w: providers: %v", common.ErrInvalidDocument, err)
	}

	providers := make(map[ProviderID]Provider, obj.Len())
	obj.Visit(func(key []byte, pv *fastjson.Value) {
		if err != nil {
			return
		}
		var provider Provider
		provider, err = parseProvider(ProviderID(key), pv)
		if err == nil {
			providers[provider.ID] = provider
		}
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int("count", len(providers)).Msg("loaded infrastructure providers")
	return providers, nil
}

func parseProvider(id ProviderID, v *fastjson.Value) (Provider, error) {
	p := Provider{ID: id, Name: common.OptionalString(v, "name")}
	if p.Name == "" {
		p.Name = string(id)
	}

	var err error
	if p.PUE, err = common.RequiredFloat(v, "pue"); err != nil {
		return Provider{}, fmt.Errorf("provider %s: %w", id, err)
	}
	if p.WUEOnsite, err = common.RequiredFloat(v, "wue_onsite_l_per_kwh"); err != nil {
		return Provider{}, fmt.Errorf("provider %s: %w", id, err)
	}
	if p.WUEOffsite, err = common.RequiredFloat(v, "wue_offsite_l_per_kwh"); err != nil {
		return Provider{}, fmt.Errorf("provider %s: %w", id, err)
	}
	if p.CIF, err = common.RequiredFloat(v, "cif_kgco2e_per_kwh"); err != nil {
		return Provider{}, fmt.Errorf("provider %s: %w", id, err)
	}
	if err := p.Validate(); err != nil {
		return Provider{}, fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}
	return p, nil
}
