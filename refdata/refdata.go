// Package refdata loads the reference documents the calculators read from: model benchmarks,
// infrastructure multipliers and conversion factors. A Store is immutable once built and safe
// for concurrent readers.
package refdata

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/omegabytes/ecoprompt/aimodel"
	"github.com/omegabytes/ecoprompt/common"
	"github.com/omegabytes/ecoprompt/conversion"
	"github.com/omegabytes/ecoprompt/infra"
)

const (
	ModelsFile         = "model_benchmarks.json"
	InfrastructureFile = "infrastructure.json"
	ConversionsFile    = "conversion_factors.json"
)

var (
	// ErrModelNotFound is returned when a model id has no benchmark record.
	ErrModelNotFound = errors.New("model not found")
	// ErrProviderNotFound is returned when a provider id has no infrastructure record.
	ErrProviderNotFound = errors.New("provider not found")
)

//go:embed data/*.json
var embedded embed.FS

// Store indexes the reference documents for lookup by id.
type Store struct {
	source      string
	models      map[string]aimodel.AIModel
	ids         []string
	providers   map[infra.ProviderID]infra.Provider
	conversions conversion.Factors
}

// Load reads the three reference documents from dir.
func Load(dir string) (*Store, error) {
	models, err := aimodel.FetchAIModels(filepath.Join(dir, ModelsFile))
	if err != nil {
		return nil, wrapLoadErr(ModelsFile, err)
	}
	providers, err := infra.FetchProviders(filepath.Join(dir, InfrastructureFile))
	if err != nil {
		return nil, wrapLoadErr(InfrastructureFile, err)
	}
	factors, err := conversion.FetchFactors(filepath.Join(dir, ConversionsFile))
	if err != nil {
		return nil, wrapLoadErr(ConversionsFile, err)
	}
	return newStore(dir, models, providers, factors)
}

// Default builds a Store from the reference documents compiled into the binary.
func Default() (*Store, error) {
	read := func(name string) ([]byte, error) {
		return embedded.ReadFile("data/" + name)
	}

	data, err := read(ModelsFile)
	if err != nil {
		return nil, wrapLoadErr(ModelsFile, err)
	}
	models, err := aimodel.ParseAIModels(data)
	if err != nil {
		return nil, wrapLoadErr(ModelsFile, err)
	}

	if data, err = read(InfrastructureFile); err != nil {
		return nil, wrapLoadErr(InfrastructureFile, err)
	}
	providers, err := infra.ParseProviders(data)
	if err != nil {
		return nil, wrapLoadErr(InfrastructureFile, err)
	}

	if data, err = read(ConversionsFile); err != nil {
		return nil, wrapLoadErr(ConversionsFile, err)
	}
	factors, err := conversion.ParseFactors(data)
	if err != nil {
		return nil, wrapLoadErr(ConversionsFile, err)
	}
	return newStore("embedded", models, providers, factors)
}

func wrapLoadErr(file string, err error) error {
	if errors.Is(err, infra.ErrUnknownHost) {
		return fmt.Errorf("failed to load %s: %w: %w", file, ErrProviderNotFound, err)
	}
	return fmt.Errorf("failed to load %s: %w", file, err)
}

func newStore(
	source string,
	models *aimodel.ModelsData,
	providers map[infra.ProviderID]infra.Provider,
	factors conversion.Factors,
) (*Store, error) {
	if len(models.Models) == 0 {
		return nil, fmt.Errorf("%w: %s lists no models", common.ErrInvalidDocument, ModelsFile)
	}
	modelsMap, err := aimodel.CreateModelsMap(models)
	if err != nil {
		return nil, fmt.Errorf("failed to index models: %w", err)
	}
	for id, model := range modelsMap {
		if _, ok := providers[model.ProviderID()]; !ok {
			return nil, fmt.Errorf("model %s: %w: %s", id, ErrProviderNotFound, model.ProviderID())
		}
	}

	s := &Store{
		source:      source,
		models:      modelsMap,
		ids:         aimodel.SortedIDs(modelsMap),
		providers:   providers,
		conversions: factors,
	}
	log.Debug().
		Str("source", source).
		Int("models", len(s.models)).
		Int("providers", len(s.providers)).
		Msg("reference data loaded")
	return s, nil
}

// Source is the directory the store was loaded from, or "embedded".
func (s *Store) Source() string {
	return s.source
}

// Model returns the benchmark record of a model.
func (s *Store) Model(id string) (*aimodel.AIModel, error) {
	model, ok := s.models[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, id)
	}
	return &model, nil
}

// Provider returns the infrastructure record of a provider.
func (s *Store) Provider(id infra.ProviderID) (*infra.Provider, error) {
	provider, ok := s.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, id)
	}
	return &provider, nil
}

// ProviderForModel returns a model together with the provider hosting it.
func (s *Store) ProviderForModel(modelID string) (*aimodel.AIModel, *infra.Provider, error) {
	model, err := s.Model(modelID)
	if err != nil {
		return nil, nil, err
	}
	provider, err := s.Provider(model.ProviderID())
	if err != nil {
		return nil, nil, fmt.Errorf("model %s: %w", modelID, err)
	}
	return model, provider, nil
}

// Conversions returns the conversion factors.
func (s *Store) Conversions() conversion.Factors {
	return s.conversions
}

// ModelIDs returns every model id in lexical order.
func (s *Store) ModelIDs() []string {
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// Models returns every model record ordered by id.
func (s *Store) Models() []aimodel.AIModel {
	models := make([]aimodel.AIModel, 0, len(s.ids))
	for _, id := range s.ids {
		models = append(models, s.models[id])
	}
	return models
}
