package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/darkclainer/camtrans"
	"github.com/darkclainer/camtrans/pkg/transcriber"
)

const suggestionLimit = 3

type result struct {
	Text          string              `json:"text"`
	Transcription string              `json:"transcription"`
	Unknown       map[string][]string `json:"unknown,omitempty"`
	Conflicts     []string            `json:"conflicts,omitempty"`
}

// transcribeAll transcribes texts with at most workers running at once and
// returns the results in input order.
func transcribeAll(ctx context.Context, engine *camtrans.Engine, texts []string, workers int) ([]*result, error) {
	results := make([]*result, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			r, err := transcribeOne(gctx, engine, text)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func transcribeOne(ctx context.Context, engine *camtrans.Engine, text string) (*result, error) {
	segments, err := engine.Transcriber().Transcribe(ctx, text)
	if err != nil {
		return nil, err
	}
	r := &result{
		Text:          text,
		Transcription: transcriber.Render(segments),
	}
	for _, segment := range segments {
		for _, item := range segment.Entries() {
			lemma := item.Entry.Lemma()
			if item.Entry.IsEmpty() {
				if r.Unknown == nil {
					r.Unknown = make(map[string][]string)
				}
				if _, ok := r.Unknown[lemma]; !ok {
					r.Unknown[lemma] = engine.Suggest(lemma, suggestionLimit)
				}
				continue
			}
			if item.Conflict {
				r.Conflicts = append(r.Conflicts, lemma)
			}
		}
	}
	return r, nil
}
