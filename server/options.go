package server

import (
	"log/slog"

	"github.com/jjo/stocks/cache"
	"github.com/jjo/stocks/server/config"
)

type Option func(s *Server)

// WithLogger specifies the logger for the server
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithConfig specifies the config for the server
func WithConfig(c *config.Config) Option {
	return func(s *Server) {
		s.config = c
	}
}

// WithMemo specifies the page cache for the server
func WithMemo(m *cache.Memo) Option {
	return func(s *Server) {
		s.memo = m
	}
}
