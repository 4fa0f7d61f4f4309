package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/darkclainer/camtrans"
	"github.com/darkclainer/camtrans/pkg/lexicon"
	"github.com/darkclainer/camtrans/pkg/querier"
	"github.com/darkclainer/camtrans/pkg/transcriber"
)

const suggestionLimit = 5

type ResponseStatus int

const (
	ResponseOK ResponseStatus = iota
	ResponseSuggestions
	ResponseBadRequest
	ResponseError
	ResponseDuplicate
)

type ItemView struct {
	Lemma     string `json:"lemma,omitempty"`
	Phonetic  string `json:"phonetic,omitempty"`
	Delimiter string `json:"delimiter,omitempty"`
	Conflict  bool   `json:"conflict,omitempty"`
}

type SegmentView struct {
	Lemma   string     `json:"lemma,omitempty"`
	Items   []ItemView `json:"items"`
	Reading string     `json:"reading,omitempty"`
}

type ResponseTranscribe struct {
	Transcription string         `json:"transcription,omitempty"`
	Segments      []SegmentView  `json:"segments,omitempty"`
	Status        ResponseStatus `json:"status"`
}

type ResponseLemma struct {
	Lemma       string              `json:"lemma,omitempty"`
	Selected    *lexicon.Candidate  `json:"selected,omitempty"`
	Candidates  []lexicon.Candidate `json:"candidates,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
	Status      ResponseStatus      `json:"status"`
}

type RequestTranscription struct {
	Lemma     string                    `json:"lemma"`
	Phonetic  string                    `json:"phonetic"`
	Type      lexicon.TranscriptionType `json:"type"`
	WordClass string                    `json:"word_class"`
	Variety   string                    `json:"variety"`
}

type ResponseTranscription struct {
	Candidate *lexicon.Candidate `json:"candidate,omitempty"`
	Status    ResponseStatus     `json:"status"`
}

// engineFor returns the engine for the variety query parameter.
func (s *Server) engineFor(r *http.Request) (*camtrans.Engine, error) {
	variety := r.URL.Query().Get("variety")
	if variety == "" {
		return s.engine, nil
	}
	return s.engine.WithVariety(variety)
}

func segmentViews(segments []*transcriber.Segment) []SegmentView {
	views := make([]SegmentView, 0, len(segments))
	for _, segment := range segments {
		view := SegmentView{Lemma: segment.Lemma, Items: make([]ItemView, 0, len(segment.Items))}
		if segment.Readings != nil {
			view.Reading = segment.Readings.Active.String()
		}
		for _, item := range segment.Items {
			if item.IsDelimiter() {
				view.Items = append(view.Items, ItemView{Delimiter: string(item.Delimiter)})
				continue
			}
			phonetic, _ := item.Phonetic()
			view.Items = append(view.Items, ItemView{
				Lemma:    item.Entry.Lemma(),
				Phonetic: phonetic,
				Conflict: item.Conflict,
			})
		}
		views = append(views, view)
	}
	return views
}

func (s *Server) handleTranscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		query, ok := r.URL.Query()["q"]
		if !ok || len(query) < 1 {
			s.respondJSON(w, &ResponseTranscribe{Status: ResponseBadRequest}, http.StatusBadRequest)
			return
		}
		engine, err := s.engineFor(r)
		if err != nil {
			s.respondJSON(w, &ResponseTranscribe{Status: ResponseBadRequest}, http.StatusBadRequest)
			return
		}
		var opts []transcriber.Option
		switch r.URL.Query().Get("reading") {
		case "", transcriber.ReadingYear.String():
		case transcriber.ReadingCommon.String():
			opts = append(opts, transcriber.WithDefaultReading(transcriber.ReadingCommon))
		default:
			s.respondJSON(w, &ResponseTranscribe{Status: ResponseBadRequest}, http.StatusBadRequest)
			return
		}
		segments, err := engine.Transcriber(opts...).Transcribe(r.Context(), query[0])
		if err != nil {
			s.logger.Error("Transcription failed",
				zap.Error(err),
				zap.String("query", query[0]),
			)
			s.respondJSON(w, &ResponseTranscribe{Status: ResponseError}, http.StatusOK)
			return
		}
		s.respondJSON(w, &ResponseTranscribe{
			Transcription: transcriber.Render(segments),
			Segments:      segmentViews(segments),
		}, http.StatusOK)
	}
}

func (s *Server) handleLemma() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		query, ok := r.URL.Query()["q"]
		if !ok || len(query) < 1 {
			s.respondJSON(w, &ResponseLemma{Status: ResponseBadRequest}, http.StatusBadRequest)
			return
		}
		engine, err := s.engineFor(r)
		if err != nil {
			s.respondJSON(w, &ResponseLemma{Status: ResponseBadRequest}, http.StatusBadRequest)
			return
		}
		entry, err := engine.Lookup(r.Context(), query[0])
		if err != nil {
			s.logger.Error("Lexicon lookup returned error",
				zap.Error(err),
				zap.String("query", query[0]),
			)
			s.respondJSON(w, &ResponseLemma{Status: ResponseError}, http.StatusOK)
			return
		}
		response := ResponseLemma{
			Lemma:      entry.Lemma(),
			Candidates: entry.Candidates(),
		}
		if selected, ok := entry.Selected(); ok {
			response.Selected = &selected
		} else {
			response.Status = ResponseSuggestions
			response.Suggestions = engine.Suggest(entry.Lemma(), suggestionLimit)
		}
		s.respondJSON(w, &response, http.StatusOK)
	}
}

func (s *Server) handleTranscription() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.addTranscription(w, r)
		case http.MethodDelete:
			s.deleteTranscription(w, r)
		default:
			http.NotFound(w, r)
		}
	}
}

func (s *Server) addTranscription(w http.ResponseWriter, r *http.Request) {
	var request RequestTranscription
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondJSON(w, &ResponseTranscription{Status: ResponseBadRequest}, http.StatusBadRequest)
		return
	}
	registry := s.engine.Registry()
	wordClass, ok := registry.WordClass(request.WordClass)
	if !ok {
		s.respondJSON(w, &ResponseTranscription{Status: ResponseBadRequest}, http.StatusBadRequest)
		return
	}
	variety, ok := registry.Variety(request.Variety)
	if !ok {
		s.respondJSON(w, &ResponseTranscription{Status: ResponseBadRequest}, http.StatusBadRequest)
		return
	}
	c, err := s.engine.AddTranscription(r.Context(), lexicon.Candidate{
		Lemma:     request.Lemma,
		Phonetic:  request.Phonetic,
		Type:      request.Type,
		WordClass: wordClass,
		Variety:   variety,
	})
	switch {
	case errors.Is(err, querier.ErrDuplicate):
		s.respondJSON(w, &ResponseTranscription{Status: ResponseDuplicate}, http.StatusConflict)
	case errors.Is(err, querier.ErrInvalidCandidate), errors.Is(err, camtrans.ErrReadOnly):
		s.respondJSON(w, &ResponseTranscription{Status: ResponseBadRequest}, http.StatusBadRequest)
	case err != nil:
		s.logger.Error("Can not add transcription", zap.Error(err), zap.String("lemma", request.Lemma))
		s.respondJSON(w, &ResponseTranscription{Status: ResponseError}, http.StatusInternalServerError)
	default:
		s.respondJSON(w, &ResponseTranscription{Candidate: &c}, http.StatusCreated)
	}
}

func (s *Server) deleteTranscription(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		s.respondJSON(w, &ResponseTranscription{Status: ResponseBadRequest}, http.StatusBadRequest)
		return
	}
	err = s.engine.DeleteTranscription(r.Context(), id)
	switch {
	case errors.Is(err, querier.ErrUnknownCandidate):
		s.respondJSON(w, &ResponseTranscription{Status: ResponseBadRequest}, http.StatusNotFound)
	case errors.Is(err, camtrans.ErrReadOnly):
		s.respondJSON(w, &ResponseTranscription{Status: ResponseBadRequest}, http.StatusBadRequest)
	case err != nil:
		s.logger.Error("Can not delete transcription", zap.Error(err), zap.Int64("id", id))
		s.respondJSON(w, &ResponseTranscription{Status: ResponseError}, http.StatusInternalServerError)
	default:
		s.respondJSON(w, &ResponseTranscription{}, http.StatusOK)
	}
}
