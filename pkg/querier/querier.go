package querier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/gammazero/workerpool"

	"github.com/darkclainer/camtrans/pkg/lexicon"
	"github.com/darkclainer/camtrans/pkg/parser"
)

const (
	defaultHost     = "dictionary.cambridge.org"
	defaultProtocol = "https"
	lemmaPath       = "/dictionary/english/"
	suggestionPath  = "/spellcheck/english/"
	searchPath      = "/search/english/direct/"
)

var (
	ErrEmptyPageID = errors.New("dictionary redirected to an empty page id")
	ErrNotFound    = errors.New("page not found")
)

// DefaultRegionVarieties maps dictionary regions to variety abbreviations.
var DefaultRegionVarieties = map[string]string{
	"uk": "BrE",
	"us": "AmE",
}

type Config struct {
	// ExtraHeader specifies what header will be added to each request
	ExtraHeader map[string]string
	// Timeout specifies maximum wait time for each request
	Timeout time.Duration
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
	// MaxWorkers specifies how many worker parse html content of page
	// Zero value mean that it will be equal to number of logical CPU
	MaxWorkers int
	// RegionVarieties maps regions of the dictionary to variety abbreviations
	// of the registry. Transcriptions of unmapped regions are dropped.
	RegionVarieties map[string]string
}

func (c *Config) withDefaults() *Config {
	conf := *c
	if conf.Host == "" {
		conf.Host = defaultHost
	}
	if conf.Protocol == "" {
		conf.Protocol = defaultProtocol
	}
	if conf.MaxWorkers < 1 { // nolint:gomnd // if number not specified
		conf.MaxWorkers = runtime.NumCPU()
	}
	if conf.RegionVarieties == nil {
		conf.RegionVarieties = DefaultRegionVarieties
	}
	return &conf
}

// SearchResult is the outcome of a dictionary search: either the id of the
// lemma page or the spelling suggestions for an unknown lemma.
type SearchResult struct {
	PageID      string
	Suggestions []string
}

func (r SearchResult) Found() bool {
	return r.PageID != ""
}

// Remote looks lemmas up in the online Cambridge dictionary.
type Remote struct {
	client   *http.Client
	config   *Config
	pool     *workerpool.WorkerPool
	p        Parser
	registry *lexicon.Registry
}

func NewRemote(client *http.Client, p Parser, registry *lexicon.Registry, config *Config) *Remote {
	if client == nil {
		client = getDefaultRemoteClient()
	}
	if p == nil {
		p = &HTMLParser{}
	}
	if registry == nil {
		registry = lexicon.DefaultRegistry()
	}
	config = config.withDefaults()
	return &Remote{
		client:   client,
		config:   config,
		pool:     workerpool.New(config.MaxWorkers),
		p:        p,
		registry: registry,
	}
}

// getDefaultRemoteClient returns default client for remote that ignores redirect
func getDefaultRemoteClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Lookup searches lemma and converts the transcriptions of its page into
// candidates. A lemma the dictionary does not know yields no candidates.
func (q *Remote) Lookup(ctx context.Context, lemma string) ([]lexicon.Candidate, error) {
	lemma = strings.ToLower(lemma)
	result, err := q.Search(ctx, lemma)
	switch {
	case errors.Is(err, ErrEmptyPageID), errors.Is(err, parser.ErrNoSuggestions):
		return []lexicon.Candidate{}, nil
	case err != nil:
		return nil, err
	case !result.Found():
		return []lexicon.Candidate{}, nil
	}
	pronunciations, err := q.GetPronunciations(ctx, result.PageID)
	if errors.Is(err, ErrNotFound) {
		return []lexicon.Candidate{}, nil
	}
	if err != nil {
		return nil, err
	}
	return q.candidates(lemma, pronunciations), nil
}

// Suggest returns the spelling suggestions of the dictionary for an unknown
// lemma. Known lemmas and failures yield nothing.
func (q *Remote) Suggest(lemma string, limit int) []string {
	result, err := q.Search(context.Background(), strings.ToLower(lemma))
	if err != nil || result.Found() {
		return nil
	}
	suggestions := result.Suggestions
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// GetPronunciations downloads the lemma page and parses it on the worker pool.
func (q *Remote) GetPronunciations(ctx context.Context, pageID string) ([]*parser.Pronunciation, error) {
	if pageID == "" {
		return nil, ErrEmptyPageID
	}
	var pronunciations []*parser.Pronunciation
	err := q.fetchParsed(ctx, q.endpoint(path.Join(lemmaPath, pageID), nil), func(page *http.Response) (err error) {
		pronunciations, err = q.p.ParsePronunciation(page.Body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get lemma page %s: %w", pageID, err)
	}
	return pronunciations, nil
}

// Search asks the dictionary where the query leads: a lemma page or the
// spellcheck page with suggestions.
func (q *Remote) Search(ctx context.Context, query string) (SearchResult, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("datasetsearch", "english")
	response, err := q.fetch(ctx, q.endpoint(searchPath, values), http.StatusFound)
	if err != nil {
		return SearchResult{}, fmt.Errorf("can not perform search: %w", err)
	}
	redirect, err := response.Location()
	if err != nil {
		return SearchResult{}, fmt.Errorf("can not parse redirect url: %w", err)
	}

	switch {
	case redirect.Path == lemmaPath || redirect.Path+"/" == lemmaPath:
		return SearchResult{}, ErrEmptyPageID
	case strings.HasPrefix(redirect.Path, lemmaPath):
		return SearchResult{PageID: path.Base(redirect.Path)}, nil
	case strings.HasPrefix(redirect.Path, suggestionPath):
		var suggestions []string
		err := q.fetchParsed(ctx, redirect.String(), func(page *http.Response) (err error) {
			suggestions, err = q.p.ParseSuggestion(page.Body)
			return err
		})
		if err != nil {
			return SearchResult{}, fmt.Errorf("can not get suggestions: %w", err)
		}
		return SearchResult{Suggestions: suggestions}, nil
	default:
		return SearchResult{}, fmt.Errorf("unknown redirect: %s", redirect)
	}
}

// fetchParsed downloads a page and runs parse on the worker pool, since
// parsing is cpu bound.
func (q *Remote) fetchParsed(ctx context.Context, pageURL string, parse func(*http.Response) error) error {
	response, err := q.fetch(ctx, pageURL, http.StatusOK)
	if err != nil {
		return err
	}
	q.pool.SubmitWait(func() {
		err = parse(response)
	})
	return err
}

// fetch performs a GET request and returns the response with its body read
// into memory. A status other than expectedStatus is an error; 404 is
// ErrNotFound.
func (q *Remote) fetch(ctx context.Context, pageURL string, expectedStatus int) (*http.Response, error) {
	if q.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.config.Timeout)
		defer cancel()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("can not form request: %w", err)
	}
	for key, value := range q.config.ExtraHeader {
		request.Header.Add(key, value)
	}
	response, err := q.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	body, err := readBody(response)
	if err != nil {
		return nil, err
	}
	response.Body = body
	switch response.StatusCode {
	case expectedStatus:
		return response, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("unexpected response code: %d", response.StatusCode)
	}
}

func (q *Remote) endpoint(endpointPath string, values url.Values) string {
	u := url.URL{
		Scheme:   q.config.Protocol,
		Host:     q.config.Host,
		Path:     endpointPath,
		RawQuery: values.Encode(),
	}
	return u.String()
}

func (q *Remote) Close(ctx context.Context) error {
	q.client.CloseIdleConnections()
	q.pool.StopWait()
	return nil
}
