// Package aimodel holds the benchmark records of the AI models whose footprint can be estimated.
package aimodel

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fastjson"

	"github.com/omegabytes/ecoprompt/common"
	"github.com/omegabytes/ecoprompt/infra"
	"github.com/omegabytes/ecoprompt/request"
)

// ErrDuplicateModel is returned when two records share a model id.
var ErrDuplicateModel = errors.New("duplicate model id")

// ErrMissingCategory is returned when a model has no benchmark for a prompt category.
var ErrMissingCategory = errors.New("missing benchmark category")

type AIModelIface interface {
	ID() string
	Name() string
	Provider() string
	Host() string
	ProviderID() infra.ProviderID
	SizeClass() string
	CriticalPowerKW() float64
	Performance(request.Category) (Performance, error)
	Sources() []string
}

var _ AIModelIface = &AIModel{}

// AIModel is the immutable benchmark record of one model deployment.
type AIModel struct {
	id         string
	name       string
	provider   string
	host       string
	providerID infra.ProviderID
	sizeClass  string

	// criticalPowerKW: total power draw of the inference node in kW.
	criticalPowerKW float64

	performance map[request.Category]Performance
	sources     []string
}

// Performance is the measured behavior of a model for one prompt category.
type Performance struct {
	EnergyWhMean float64 `json:"energy_wh_mean"`
	EnergyWhStd  float64 `json:"energy_wh_std"`

	// LatencyP50 is the median time to first token in seconds.
	LatencyP50 float64 `json:"latency_p50"`

	// TPSP50 is the median output tokens per second.
	TPSP50 float64 `json:"tps_p50"`
}

type ModelsData struct {
	Models []AIModel
}

func (a *AIModel) ID() string {
	return a.id
}

func (a *AIModel) Name() string {
	return a.name
}

// Provider is the vendor that trained the model, e.g. "OpenAI".
func (a *AIModel) Provider() string {
	return a.provider
}

// Host is the platform serving the model, e.g. "Microsoft Azure".
func (a *AIModel) Host() string {
	return a.host
}

// ProviderID is the infrastructure provider resolved from Host at load time.
func (a *AIModel) ProviderID() infra.ProviderID {
	return a.providerID
}

func (a *AIModel) SizeClass() string {
	return a.sizeClass
}

func (a *AIModel) CriticalPowerKW() float64 {
	return a.criticalPowerKW
}

func (a *AIModel) Sources() []string {
	return a.sources
}

// Performance returns the benchmark for the given category.
func (a *AIModel) Performance(category request.Category) (Performance, error) {
	perf, ok := a.performance[category]
	if !ok {
		return Performance{}, fmt.Errorf("%w: model %s has no %q benchmark", ErrMissingCategory, a.id, category)
	}
	return perf, nil
}

// FetchAIModels reads and parses a model_benchmarks.json document.
func FetchAIModels(source string) (*ModelsData, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseAIModels(data)
}

// ParseAIModels parses a benchmark document of the form {"models": [...]}.
func ParseAIModels(data []byte) (*ModelsData, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse models: %w", err)
	}

	mv := v.Get("models")
	if mv == nil {
		return nil, fmt.Errorf("%w: missing field %q", common.ErrInvalidDocument, "models")
	}
	entries, err := mv.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: models: %v", common.ErrInvalidDocument, err)
	}
	models := make([]AIModel, 0, len(entries))
	for i, entry := range entries {
		model, err := parseAIModel(entry)
		if err != nil {
			return nil, fmt.Errorf("models[%d]: %w", i, err)
		}
		models = append(models, model)
	}

	log.Debug().Int("count", len(models)).Msg("loaded AI model benchmarks")
	return &ModelsData{Models: models}, nil
}

// CreateModelsMap indexes models by id. Every id must be unique.
func CreateModelsMap(models *ModelsData) (map[string]AIModel, error) {
	modelsMap := make(map[string]AIModel, len(models.Models))
	for _, model := range models.Models {
		if _, ok := modelsMap[model.id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModel, model.id)
		}
		modelsMap[model.id] = model
	}
	return modelsMap, nil
}

// SortedIDs returns the keys of a models map in lexical order.
func SortedIDs(models map[string]AIModel) []string {
	ids := make([]string, 0, len(models))
	for id := range models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func parseAIModel(v *fastjson.Value) (AIModel, error) {
	var (
		m   AIModel
		err error
	)
	if m.id, err = common.RequiredString(v, "model_id"); err != nil {
		return AIModel{}, err
	}
	if m.name, err = common.RequiredString(v, "name"); err != nil {
		return AIModel{}, fmt.Errorf("model %s: %w", m.id, err)
	}
	if m.host, err = common.RequiredString(v, "host"); err != nil {
		return AIModel{}, fmt.Errorf("model %s: %w", m.id, err)
	}
	if m.providerID, err = infra.ProviderForHost(m.host); err != nil {
		return AIModel{}, fmt.Errorf("model %s: %w", m.id, err)
	}
	m.provider = common.OptionalString(v, "provider")
	m.sizeClass = common.OptionalString(v, "size_class")
	if m.criticalPowerKW, err = common.RequiredFloat(v, "critical_power_kw"); err != nil {
		return AIModel{}, fmt.Errorf("model %s: %w", m.id, err)
	}

	if m.performance, err = parsePerformance(v.Get("performance")); err != nil {
		return AIModel{}, fmt.Errorf("model %s: %w", m.id, err)
	}
	m.sources = parseStringArray(v.GetArray("sources"))
	return m, nil
}

func parsePerformance(v *fastjson.Value) (map[request.Category]Performance, error) {
	if v == nil || v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: performance must be an object", common.ErrInvalidDocument)
	}

	perf := make(map[request.Category]Performance, len(request.Categories))
	for _, category := range request.Categories {
		pv := v.Get(string(category))
		if pv == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingCategory, category)
		}
		p, err := parseCategoryPerformance(pv)
		if err != nil {
			return nil, fmt.Errorf("performance %s: %w", category, err)
		}
		perf[category] = p
	}
	return perf, nil
}

func parseCategoryPerformance(v *fastjson.Value) (Performance, error) {
	var (
		p   Performance
		err error
	)
	if p.EnergyWhMean, err = common.RequiredFloat(v, "energy_wh_mean"); err != nil {
		return Performance{}, err
	}
	if p.EnergyWhStd, err = common.OptionalFloat(v, "energy_wh_std", 0); err != nil {
		return Performance{}, err
	}
	if p.LatencyP50, err = common.RequiredFloat(v, "latency_p50"); err != nil {
		return Performance{}, err
	}
	if p.TPSP50, err = common.RequiredFloat(v, "tps_p50"); err != nil {
		return Performance{}, err
	}
	if p.EnergyWhMean < 0 || p.EnergyWhStd < 0 {
		return Performance{}, fmt.Errorf("%w: energy values must be non-negative", common.ErrInvalidDocument)
	}
	return p, nil
}

func parseStringArray(arr []*fastjson.Value) []string {
	result := make([]string, 0, len(arr))
	for _, v := range arr {
		if b, err := v.StringBytes(); err == nil {
			result = append(result, string(b))
		}
	}
	return result
}
