// Package camtrans turns English text into a broad phonetic transcription.
//
// An Engine ties together the lexicon sources (an SQLite database, a YAML
// seed and the online Cambridge dictionary behind a badger cache), the
// registry of varieties and word classes and the preferred variety:
//
//	engine, err := camtrans.Open(ctx, &camtrans.Config{Seed: "configs/seed.yaml"}, logger)
//	if err != nil {
//		return err
//	}
//	defer engine.Close(ctx)
//	text, err := engine.Transcribe(ctx, "The cat sat on the mat.")
//	// text == "/ ðə kæt sæt ɒn ðə mæt /"
package camtrans

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/darkclainer/camtrans/pkg/lexicon"
	"github.com/darkclainer/camtrans/pkg/querier"
	"github.com/darkclainer/camtrans/pkg/transcriber"
)

const DefaultVariety = "BrE"

var (
	ErrUnknownVariety = errors.New("unknown variety")
	ErrReadOnly       = errors.New("lexicon has no writable database")
)

type RemoteConfig struct {
	// Enabled turns lookups in the online dictionary on
	Enabled        bool
	querier.Config `mapstructure:",squash"`
}

// Config selects the lexicon sources. Sources are asked in the order
// SQLite, Seed, Remote; the registry comes from the first of SQLite and
// Seed that is set, else the built-in one.
type Config struct {
	// Variety is the abbreviation or name of the preferred variety
	Variety string
	// Seed is a path to a YAML lexicon
	Seed string
	// SQLite is a path to a lexicon database, created if missing
	SQLite string

	Remote RemoteConfig
	Cached querier.CachedConfig
}

type Engine struct {
	logger   *zap.Logger
	registry *lexicon.Registry
	prefs    lexicon.StaticPreferences
	source   lexicon.Chain
	db       *querier.SQLite
	closers  []func(context.Context) error
}

func Open(ctx context.Context, conf *Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:   logger,
		registry: lexicon.DefaultRegistry(),
	}
	if err := e.open(ctx, conf); err != nil {
		if closeErr := e.Close(ctx); closeErr != nil {
			logger.Warn("Can not release lexicon sources", zap.Error(closeErr))
		}
		return nil, err
	}
	logger.Info("Lexicon opened",
		zap.Int("sources", len(e.source)),
		zap.String("variety", e.prefs.Variety.Abbreviation),
	)
	return e, nil
}

func (e *Engine) open(ctx context.Context, conf *Config) error {
	if conf.SQLite != "" {
		db, err := querier.OpenSQLite(ctx, conf.SQLite)
		if err != nil {
			return err
		}
		e.closers = append(e.closers, db.Close)
		registry, err := db.LoadRegistry(ctx)
		if err != nil {
			return err
		}
		e.registry = registry
		e.db = db
		e.source = append(e.source, db)
	}
	if conf.Seed != "" {
		registry, memory, err := lexicon.LoadSeedFile(conf.Seed)
		if err != nil {
			return err
		}
		if conf.SQLite == "" {
			e.registry = registry
		}
		e.source = append(e.source, memory)
	}
	if conf.Remote.Enabled {
		remoteConf := conf.Remote.Config
		var q querier.Querier = querier.NewRemote(nil, nil, e.registry, &remoteConf)
		if conf.Cached.Path != "" || conf.Cached.InMemory {
			storage, err := querier.OpenStorage(&conf.Cached)
			if err != nil {
				_ = q.Close(ctx)
				return err
			}
			q = querier.NewCached(q, storage, e.logger)
		}
		e.closers = append(e.closers, q.Close)
		e.source = append(e.source, q)
	}

	name := conf.Variety
	if name == "" {
		name = DefaultVariety
	}
	variety, ok := e.registry.Variety(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariety, name)
	}
	e.prefs = lexicon.StaticPreferences{Variety: variety}
	return nil
}

func (e *Engine) Registry() *lexicon.Registry {
	return e.registry
}

func (e *Engine) PreferredVariety() lexicon.Variety {
	return e.prefs.Variety
}

// WithVariety returns an engine sharing the sources of e with another
// preferred variety.
func (e *Engine) WithVariety(name string) (*Engine, error) {
	variety, ok := e.registry.Variety(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariety, name)
	}
	derived := *e
	derived.prefs = lexicon.StaticPreferences{Variety: variety}
	derived.closers = nil
	return &derived, nil
}

func (e *Engine) Lexicon() lexicon.Lexicon {
	return lexicon.FromSource(e.source, e.prefs)
}

// Transcriber returns a transcriber over the engine's lexicon. The engine
// logger is used unless opts replace it.
func (e *Engine) Transcriber(opts ...transcriber.Option) *transcriber.Transcriber {
	opts = append([]transcriber.Option{transcriber.WithLogger(e.logger)}, opts...)
	return transcriber.New(e.Lexicon(), e.prefs, e.registry, opts...)
}

// Transcribe returns the rendered transcription of text.
func (e *Engine) Transcribe(ctx context.Context, text string, opts ...transcriber.Option) (string, error) {
	segments, err := e.Transcriber(opts...).Transcribe(ctx, text)
	if err != nil {
		return "", err
	}
	return transcriber.Render(segments), nil
}

func (e *Engine) Lookup(ctx context.Context, lemma string) (*lexicon.Entry, error) {
	return e.Lexicon().Query(ctx, lemma)
}

// Suggest proposes known lemmas for an unknown one.
func (e *Engine) Suggest(lemma string, limit int) []string {
	return e.source.Suggest(lemma, limit)
}

// AddTranscription stores c in the lexicon database.
func (e *Engine) AddTranscription(ctx context.Context, c lexicon.Candidate) (lexicon.Candidate, error) {
	if e.db == nil {
		return lexicon.Candidate{}, ErrReadOnly
	}
	return e.db.AddTranscription(ctx, c)
}

func (e *Engine) DeleteTranscription(ctx context.Context, id int64) error {
	if e.db == nil {
		return ErrReadOnly
	}
	return e.db.DeleteTranscription(ctx, id)
}

func (e *Engine) Close(ctx context.Context) error {
	var reasons []string
	for _, closer := range e.closers {
		if err := closer(ctx); err != nil {
			reasons = append(reasons, err.Error())
		}
	}
	e.closers = nil
	if len(reasons) > 0 {
		return fmt.Errorf("close failed because: %s", strings.Join(reasons, " AND "))
	}
	return nil
}
