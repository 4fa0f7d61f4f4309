package querier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkclainer/camtrans/pkg/lexicon"
	"github.com/darkclainer/camtrans/pkg/parser"
)

// fakeDictionary imitates the search, spellcheck and lemma endpoints of the
// dictionary. Bodies are JSON, to be read with JSONParser.
type fakeDictionary struct {
	t *testing.T
	// searches maps a query to the path the search redirects to
	searches map[string]string
	// spellcheck maps a query to the body of its spellcheck page
	spellcheck map[string]string
	// pages maps a page id to its body, pageStatus to a failure status
	pages       map[string]string
	pageStatus  map[string]int
	errorStatus int
}

func (d *fakeDictionary) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if d.errorStatus != 0 {
		w.WriteHeader(d.errorStatus)
		return
	}
	query := r.URL.Query().Get("q")
	switch {
	case r.URL.Path == searchPath:
		target, ok := d.searches[query]
		if !ok {
			d.fail(w, "unexpected search %q", query)
			return
		}
		if target == suggestionPath {
			values := url.Values{}
			values.Set("q", query)
			target += "?" + values.Encode()
		}
		http.Redirect(w, r, target, http.StatusFound)
	case r.URL.Path == suggestionPath:
		body, ok := d.spellcheck[query]
		if !ok {
			d.fail(w, "unexpected spellcheck %q", query)
			return
		}
		_, _ = w.Write([]byte(body))
	case strings.HasPrefix(r.URL.Path, lemmaPath):
		pageID := path.Base(r.URL.Path)
		if status, ok := d.pageStatus[pageID]; ok {
			w.WriteHeader(status)
			return
		}
		body, ok := d.pages[pageID]
		if !ok {
			d.fail(w, "unexpected page %q", pageID)
			return
		}
		_, _ = w.Write([]byte(body))
	default:
		d.fail(w, "unexpected path %q", r.URL.Path)
	}
}

func (d *fakeDictionary) fail(w http.ResponseWriter, format string, args ...interface{}) {
	d.t.Errorf(format, args...)
	w.WriteHeader(http.StatusInternalServerError)
}

func newTestRemote(t *testing.T, d *fakeDictionary) *Remote {
	t.Helper()
	d.t = t
	server := httptest.NewServer(d)
	client := server.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	remote := NewRemote(client, &JSONParser{}, nil, &Config{
		Host:     server.Listener.Addr().String(),
		Protocol: "http",
	})
	t.Cleanup(func() {
		server.Close()
		_ = remote.Close(context.TODO())
	})
	return remote
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestRemoteSearch(t *testing.T) {
	testCases := map[string]struct {
		dictionary *fakeDictionary
		query      string
		expected   SearchResult
		err        error
		anyErr     bool
	}{
		"page found": {
			dictionary: &fakeDictionary{searches: map[string]string{"hello": lemmaPath + "hello-page"}},
			query:      "hello",
			expected:   SearchResult{PageID: "hello-page"},
		},
		"empty page id": {
			dictionary: &fakeDictionary{searches: map[string]string{"hello": lemmaPath}},
			query:      "hello",
			err:        ErrEmptyPageID,
		},
		"suggestions": {
			dictionary: &fakeDictionary{
				searches:   map[string]string{"helo": suggestionPath},
				spellcheck: map[string]string{"helo": `["hello","hell"]`},
			},
			query:    "helo",
			expected: SearchResult{Suggestions: []string{"hello", "hell"}},
		},
		"malformed suggestions": {
			dictionary: &fakeDictionary{
				searches:   map[string]string{"helo": suggestionPath},
				spellcheck: map[string]string{"helo": `{,}`},
			},
			query:  "helo",
			anyErr: true,
		},
		"unknown redirect": {
			dictionary: &fakeDictionary{searches: map[string]string{"hello": "/elsewhere/"}},
			query:      "hello",
			anyErr:     true,
		},
		"no redirect": {
			dictionary: &fakeDictionary{errorStatus: http.StatusOK},
			query:      "hello",
			anyErr:     true,
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			remote := newTestRemote(t, tc.dictionary)
			result, err := remote.Search(context.TODO(), tc.query)
			switch {
			case tc.err != nil:
				assert.True(t, errors.Is(err, tc.err), "got %v", err)
			case tc.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expected, result)
				assert.Equal(t, tc.expected.PageID != "", result.Found())
			}
		})
	}
}

func TestRemoteGetPronunciations(t *testing.T) {
	pronunciations := []*parser.Pronunciation{
		{
			Lemma:          "hello",
			PartOfSpeech:   []string{"exclamation"},
			Transcriptions: map[string][]string{"uk": {"heˈləʊ"}},
		},
	}
	testCases := map[string]struct {
		dictionary *fakeDictionary
		pageID     string
		err        error
		anyErr     bool
	}{
		"parsed": {
			dictionary: &fakeDictionary{pages: map[string]string{"hello": mustJSON(t, pronunciations)}},
			pageID:     "hello",
		},
		"malformed": {
			dictionary: &fakeDictionary{pages: map[string]string{"hello": `{,}`}},
			pageID:     "hello",
			anyErr:     true,
		},
		"not found": {
			dictionary: &fakeDictionary{pageStatus: map[string]int{"hello": http.StatusNotFound}},
			pageID:     "hello",
			err:        ErrNotFound,
		},
		"server error": {
			dictionary: &fakeDictionary{pageStatus: map[string]int{"hello": http.StatusBadGateway}},
			pageID:     "hello",
			anyErr:     true,
		},
		"empty page id": {
			dictionary: &fakeDictionary{},
			err:        ErrEmptyPageID,
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			remote := newTestRemote(t, tc.dictionary)
			result, err := remote.GetPronunciations(context.TODO(), tc.pageID)
			switch {
			case tc.err != nil:
				assert.True(t, errors.Is(err, tc.err), "got %v", err)
			case tc.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, pronunciations, result)
			}
		})
	}
}

func TestRemoteLookup(t *testing.T) { // nolint:funlen // test
	registry := lexicon.DefaultRegistry()
	brE, _ := registry.Variety("BrE")
	amE, _ := registry.Variety("AmE")
	noun, _ := registry.WordClass("comN")
	verb, _ := registry.WordClass("lexV")

	testCases := map[string]struct {
		dictionary *fakeDictionary
		query      string
		candidates []lexicon.Candidate
		err        bool
	}{
		"maps regions and parts of speech": {
			dictionary: &fakeDictionary{
				searches: map[string]string{"record": lemmaPath + "record"},
				pages: map[string]string{"record": mustJSON(t, []*parser.Pronunciation{
					{
						Lemma:        "record",
						PartOfSpeech: []string{"noun"},
						Transcriptions: map[string][]string{
							"us": {"ˈrek.ɚd"},
							"uk": {"ˈrek.ɔːd"},
						},
					},
					{
						Lemma:          "record",
						PartOfSpeech:   []string{"verb"},
						Transcriptions: map[string][]string{"uk": {"rɪˈkɔːd"}},
					},
				})},
			},
			query: "record",
			candidates: []lexicon.Candidate{
				{ID: -1, Lemma: "record", Phonetic: "ˈrekɔːd", WordClass: noun, Variety: brE},
				{ID: -1, Lemma: "record", Phonetic: "ˈrekɚd", WordClass: noun, Variety: amE},
				{ID: -1, Lemma: "record", Phonetic: "rɪˈkɔːd", WordClass: verb, Variety: brE},
			},
		},
		"drops other headwords and unknown regions": {
			dictionary: &fakeDictionary{
				searches: map[string]string{"cat": lemmaPath + "cat"},
				pages: map[string]string{"cat": mustJSON(t, []*parser.Pronunciation{
					{
						Lemma:          "cat",
						PartOfSpeech:   []string{"noun"},
						Transcriptions: map[string][]string{"uk": {"kæt"}, "au": {"kæt"}},
					},
					{
						Lemma:          "cat flap",
						PartOfSpeech:   []string{"noun"},
						Transcriptions: map[string][]string{"uk": {"ˈkæt ˌflæp"}},
					},
				})},
			},
			query: "Cat",
			candidates: []lexicon.Candidate{
				{ID: -1, Lemma: "cat", Phonetic: "kæt", WordClass: noun, Variety: brE},
			},
		},
		"keeps unknown part of speech": {
			dictionary: &fakeDictionary{
				searches: map[string]string{"ouch": lemmaPath + "ouch"},
				pages: map[string]string{"ouch": mustJSON(t, []*parser.Pronunciation{
					{
						Lemma:          "ouch",
						PartOfSpeech:   []string{"interjection"},
						Transcriptions: map[string][]string{"uk": {"aʊtʃ"}},
					},
				})},
			},
			query: "ouch",
			candidates: []lexicon.Candidate{
				{
					ID:        -1,
					Lemma:     "ouch",
					Phonetic:  "aʊtʃ",
					WordClass: lexicon.WordClass{Name: "interjection", Abbreviation: "interjection"},
					Variety:   brE,
				},
			},
		},
		"suggestions are no candidates": {
			dictionary: &fakeDictionary{
				searches:   map[string]string{"helo": suggestionPath},
				spellcheck: map[string]string{"helo": `["hello"]`},
			},
			query:      "helo",
			candidates: []lexicon.Candidate{},
		},
		"missing page is no candidates": {
			dictionary: &fakeDictionary{
				searches:   map[string]string{"gone": lemmaPath + "gone"},
				pageStatus: map[string]int{"gone": http.StatusNotFound},
			},
			query:      "gone",
			candidates: []lexicon.Candidate{},
		},
		"server failure": {
			dictionary: &fakeDictionary{errorStatus: http.StatusInternalServerError},
			query:      "broken",
			err:        true,
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			remote := newTestRemote(t, tc.dictionary)
			candidates, err := remote.Lookup(context.TODO(), tc.query)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.candidates, candidates)
		})
	}
}

func TestRemoteSuggest(t *testing.T) {
	remote := newTestRemote(t, &fakeDictionary{
		searches: map[string]string{
			"helo":  suggestionPath,
			"hello": lemmaPath + "hello",
		},
		spellcheck: map[string]string{"helo": `["hello","hell","halo"]`},
	})

	assert.Equal(t, []string{"hello", "hell", "halo"}, remote.Suggest("helo", 0))
	assert.Equal(t, []string{"hello", "hell"}, remote.Suggest("Helo", 2))
	assert.Nil(t, remote.Suggest("hello", 3))
}

func TestRemoteExtraHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "camtrans", r.Header.Get("User-Agent"))
		http.Redirect(w, r, lemmaPath+"hello", http.StatusFound)
	}))
	defer server.Close()

	remote := NewRemote(nil, nil, nil, &Config{
		Host:        server.Listener.Addr().String(),
		Protocol:    "http",
		ExtraHeader: map[string]string{"User-Agent": "camtrans"},
	})
	defer remote.Close(context.TODO()) // nolint:errcheck // test

	result, err := remote.Search(context.TODO(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", result.PageID)
}
