package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/darkclainer/camtrans"
)

type Server struct {
	http.Server
	mux    http.ServeMux
	conf   *Config
	logger *zap.Logger
	engine *camtrans.Engine
}

func New(ctx context.Context, logger *zap.Logger, conf *Config) (*Server, error) {
	s := Server{
		conf:   conf,
		logger: logger,
	}
	engine, err := camtrans.Open(ctx, &conf.Config, logger)
	if err != nil {
		return nil, err
	}
	s.engine = engine

	s.mux.HandleFunc("/transcribe", s.middleLogging(s.handleTranscribe()))
	s.mux.HandleFunc("/lemma", s.middleLogging(s.handleLemma()))
	s.mux.HandleFunc("/transcription", s.middleLogging(s.handleTranscription()))
	s.Addr = conf.Host
	s.Server.Handler = &s.mux
	return &s, nil
}

func (s *Server) Close(ctx context.Context) error {
	var reasons []string
	if serverErr := s.Server.Shutdown(ctx); serverErr != nil {
		reasons = append(reasons, "server shutdown failed: "+serverErr.Error())
	}
	if engineErr := s.engine.Close(ctx); engineErr != nil {
		reasons = append(reasons, "lexicon close failed: "+engineErr.Error())
	}
	if len(reasons) > 0 {
		return fmt.Errorf("close failed because: %s", strings.Join(reasons, " AND "))
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, vPtr interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	buffer := new(bytes.Buffer)
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(vPtr); err != nil {
		s.logger.Error("encoding failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"encoding error"}`))
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(buffer.Bytes())
}

func (s *Server) middleLogging(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Info("request",
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.String("client", r.RemoteAddr),
			zap.String("method", r.Method),
		)
		handler(w, r)
	}
}
