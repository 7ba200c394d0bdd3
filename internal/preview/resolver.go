package preview

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/schemer/internal/logging"
)

// ErrStale is returned when a newer request for the same slot started
// while this one was in flight.
var ErrStale = errors.New("preview request superseded")

// Source records where a resolved document came from.
type Source string

const (
	SourceStored Source = "stored"
	SourceRemote Source = "remote"
	SourceSample Source = "sample"
	SourceEmpty  Source = "empty"
)

// DocumentStore persists preview documents per language.
type DocumentStore interface {
	Preview(ctx context.Context, alias string) (string, bool, error)
	SetPreview(ctx context.Context, alias, document string) error
}

// Document is a resolved preview document.
type Document struct {
	Slot       string
	Alias      string
	Text       string
	Source     Source
	Generation uint64
}

// Resolver finds the document to show for a language: the stored copy,
// then a remote fetch (cached on success), then the embedded sample, then
// an empty document. Each slot keeps a generation counter so only the
// latest request for it is accepted.
type Resolver struct {
	store     DocumentStore
	fetcher   *Fetcher
	languages *Languages
	logger    zerolog.Logger

	mu    sync.Mutex
	slots map[string]uint64
}

// NewResolver creates a resolver. store and fetcher may be nil.
func NewResolver(store DocumentStore, fetcher *Fetcher, languages *Languages) *Resolver {
	return &Resolver{
		store:     store,
		fetcher:   fetcher,
		languages: languages,
		logger:    logging.Component("preview"),
		slots:     make(map[string]uint64),
	}
}

// Begin starts a new request for slot, superseding any in flight.
func (r *Resolver) Begin(slot string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slot]++
	return r.slots[slot]
}

// Current reports whether generation is still the latest for slot.
func (r *Resolver) Current(slot string, generation uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots[slot] == generation
}

// Resolve begins a request for slot and resolves it.
func (r *Resolver) Resolve(ctx context.Context, slot, alias string) (Document, error) {
	return r.ResolveGeneration(ctx, slot, alias, r.Begin(slot))
}

// ResolveGeneration resolves alias for a request already started with
// Begin. It returns ErrStale when the request was superseded.
func (r *Resolver) ResolveGeneration(ctx context.Context, slot, alias string, generation uint64) (Document, error) {
	doc := Document{Slot: slot, Alias: alias, Generation: generation}

	if r.store != nil {
		text, ok, err := r.store.Preview(ctx, alias)
		if err != nil {
			r.logger.Warn().Err(err).Str("language", alias).Msg("failed to read stored preview")
		} else if ok {
			doc.Text, doc.Source = text, SourceStored
			return r.finish(doc)
		}
	}

	if r.fetcher.Enabled() {
		text, err := r.fetcher.Fetch(ctx, alias)
		if err == nil {
			if !r.Current(slot, generation) {
				return doc, ErrStale
			}
			if r.store != nil {
				if err := r.store.SetPreview(ctx, alias, text); err != nil {
					r.logger.Warn().Err(err).Str("language", alias).Msg("failed to cache preview")
				}
			}
			doc.Text, doc.Source = text, SourceRemote
			return r.finish(doc)
		}
		r.logger.Debug().Err(err).Str("language", alias).Msg("remote preview unavailable")
	}

	if lang, ok := r.languages.Get(alias); ok && lang.Sample != "" {
		doc.Text, doc.Source = lang.Sample, SourceSample
		return r.finish(doc)
	}

	doc.Source = SourceEmpty
	return r.finish(doc)
}

func (r *Resolver) finish(doc Document) (Document, error) {
	if !r.Current(doc.Slot, doc.Generation) {
		return doc, ErrStale
	}
	return doc, nil
}
