package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/darkclainer/camtrans"
)

const (
	codeErrorArgs = iota + 1
	codeInternalError
)

const maxBodySize = 10 * 1024 * 1024

func exitf(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

type options struct {
	text    string
	file    string
	article string
	json    bool
	workers int
	verbose bool
	conf    camtrans.Config
}

func parseOptions() *options {
	var o options
	pflag.StringVarP(&o.text, "text", "t", "", "text to transcribe")
	pflag.StringVarP(&o.file, "file", "f", "", "file to transcribe, one text per line (- for stdin)")
	pflag.StringVarP(&o.article, "url", "u", "", "web article to transcribe")
	pflag.BoolVar(&o.json, "json", false, "print one JSON object per text")
	pflag.IntVarP(&o.workers, "workers", "w", 4, "texts transcribed at the same time")
	pflag.BoolVarP(&o.verbose, "verbose", "v", false, "log transcription steps to stderr")
	pflag.StringVar(&o.conf.Variety, "variety", camtrans.DefaultVariety, "preferred variety")
	pflag.StringVar(&o.conf.Seed, "seed", "", "YAML lexicon")
	pflag.StringVar(&o.conf.SQLite, "sqlite", "", "SQLite lexicon database")
	pflag.BoolVar(&o.conf.Remote.Enabled, "remote", false, "look unknown lemmas up in the online dictionary")
	pflag.DurationVar(&o.conf.Remote.Timeout, "remote-timeout", 0, "timeout of each dictionary request")
	pflag.StringVar(&o.conf.Cached.Path, "cache", "", "directory of the dictionary cache")
	pflag.Parse()
	return &o
}

func (o *options) logger() (*zap.Logger, error) {
	if !o.verbose {
		return zap.NewNop(), nil
	}
	conf := zap.NewDevelopmentConfig()
	return conf.Build()
}

// texts returns the texts to transcribe, one per line of input.
func (o *options) texts(ctx context.Context) ([]string, error) {
	set := 0
	for _, v := range []string{o.text, o.file, o.article} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of -t, -f and -u must be specified")
	}
	switch {
	case o.text != "":
		return []string{o.text}, nil
	case o.file == "-":
		return readLines(os.Stdin)
	case o.file != "":
		file, err := os.Open(o.file)
		if err != nil {
			return nil, fmt.Errorf("can not open file %s: %w", o.file, err)
		}
		defer file.Close()
		return readLines(file)
	default:
		content, err := downloadArticle(ctx, o.article)
		if err != nil {
			return nil, err
		}
		return readLines(strings.NewReader(content))
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func downloadArticle(ctx context.Context, rawURL string) (string, error) {
	articleURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %s: %w", rawURL, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("can not download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected response code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("can not read %s: %w", rawURL, err)
	}
	article, err := readability.FromReader(bytes.NewReader(body), articleURL)
	if err != nil {
		return "", fmt.Errorf("can not extract article: %w", err)
	}
	return article.TextContent, nil
}

func main() {
	o := parseOptions()
	logger, err := o.logger()
	if err != nil {
		exitf(codeErrorArgs, "Failure while instatiating logger: %s\n", err)
	}
	defer logger.Sync() // nolint:errcheck // nothing to do on failure

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	texts, err := o.texts(ctx)
	if err != nil {
		exitf(codeErrorArgs, "%s\n", err)
	}
	engine, err := camtrans.Open(ctx, &o.conf, logger)
	if err != nil {
		exitf(codeErrorArgs, "Can not open lexicon: %s\n", err)
	}

	results, err := transcribeAll(ctx, engine, texts, o.workers)
	if closeErr := engine.Close(context.Background()); closeErr != nil {
		logger.Error("Close failed", zap.Error(closeErr))
	}
	if err != nil {
		exitf(codeInternalError, "Transcription failed: %s\n", err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	for _, r := range results {
		if o.json {
			if err := encoder.Encode(r); err != nil {
				exitf(codeInternalError, "can not encode result: %s\n", err)
			}
			continue
		}
		fmt.Fprintln(out, r.Transcription)
	}
}
