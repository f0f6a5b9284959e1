package engine

import (
	"fmt"
	"log/slog"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/selection"
	"github.com/roach88/crimpfit/internal/store"
)

// DefaultCacheSize is the number of criteria whose matches are cached.
const DefaultCacheSize = 128

// Result is the evaluated state of a session.
type Result struct {
	Criteria        selection.Criteria  `json:"criteria"`
	Pin             selection.PinKind   `json:"pin"`
	PinnedConnector *catalog.Connector  `json:"pinned_connector,omitempty"`
	PinnedTool      *catalog.Tool       `json:"pinned_tool,omitempty"`
	Connectors      []catalog.Connector `json:"connectors"`
	Tools           []catalog.Tool      `json:"tools"`
}

// HasConnector reports whether a part number is in the connector results.
func (r Result) HasConnector(partNumber string) bool {
	return slices.ContainsFunc(r.Connectors, func(c catalog.Connector) bool {
		return c.PartNumber == partNumber
	})
}

// HasTool reports whether a SKU is in the tool results.
func (r Result) HasTool(sku string) bool {
	return slices.ContainsFunc(r.Tools, func(t catalog.Tool) bool {
		return t.SKU == sku
	})
}

// Session evaluates a selection against a store.
type Session struct {
	id        string
	store     *store.Store
	state     *selection.State
	logger    *slog.Logger
	idGen     IDGenerator
	cacheSize int
	cache     *lru.Cache[selection.Criteria, []catalog.Connector]
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger. Default: slog.Default().
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// WithIDGenerator sets the session id source. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) SessionOption {
	return func(s *Session) {
		s.idGen = g
	}
}

// WithCacheSize sets how many criteria results are cached.
func WithCacheSize(n int) SessionOption {
	return func(s *Session) {
		s.cacheSize = n
	}
}

// NewSession creates a session over an immutable store and a selection.
func NewSession(st *store.Store, state *selection.State, opts ...SessionOption) (*Session, error) {
	s := &Session{
		store:     st,
		state:     state,
		logger:    slog.Default(),
		idGen:     UUIDv7Generator{},
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := lru.New[selection.Criteria, []catalog.Connector](s.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create match cache: %w", err)
	}
	s.cache = cache
	s.id = s.idGen.Generate()
	s.logger = s.logger.With("session", s.id)

	s.logger.Debug("session started",
		"store", st.Fingerprint(),
		"criteria", state.Criteria())
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// State returns the selection the session evaluates. Setters called on it
// take effect on the next Evaluate.
func (s *Session) State() *selection.State { return s.state }

// Store returns the session's store.
func (s *Session) Store() *store.Store { return s.store }

// matches returns the cached criteria matches. The returned slice is
// shared with the cache and must not be modified.
func (s *Session) matches(cr selection.Criteria) []catalog.Connector {
	if m, ok := s.cache.Get(cr); ok {
		return m
	}
	m := MatchConnectors(s.store, cr)
	s.cache.Add(cr, m)
	return m
}

// Evaluate computes the result lists for the current selection and pin.
func (s *Session) Evaluate() Result {
	cr := s.state.Criteria()
	matches := s.matches(cr)

	r := Result{Criteria: cr, Pin: s.state.Pin()}

	switch r.Pin {
	case selection.PinConnector:
		part, _ := s.state.PinnedConnector()
		r.Connectors = slices.Clone(matches)
		if c, ok := s.store.Connector(part); ok {
			r.PinnedConnector = &c
			r.Tools = NarrowToolsByConnector(c, s.store)
		} else {
			r.Tools = MatchTools(matches, s.store)
		}
	case selection.PinTool:
		sku, _ := s.state.PinnedTool()
		r.Tools = MatchTools(matches, s.store)
		if t, ok := s.store.Tool(sku); ok {
			r.PinnedTool = &t
			r.Connectors = narrowConnectors(t, matches)
		} else {
			r.Connectors = slices.Clone(matches)
		}
	default:
		r.Connectors = slices.Clone(matches)
		r.Tools = MatchTools(matches, s.store)
	}

	s.logger.Debug("evaluated",
		"pin", r.Pin,
		"connectors", len(r.Connectors),
		"tools", len(r.Tools))
	return r
}

// PinConnector pins a connector from the current connector results.
func (s *Session) PinConnector(partNumber string) error {
	if !s.Evaluate().HasConnector(partNumber) {
		return notInResults("connector", partNumber)
	}
	if err := s.state.PinConnector(partNumber); err != nil {
		return err
	}
	s.logger.Info("connector pinned", "part_number", partNumber)
	return nil
}

// PinTool pins a tool from the current tool results.
func (s *Session) PinTool(sku string) error {
	if !s.Evaluate().HasTool(sku) {
		return notInResults("tool", sku)
	}
	if err := s.state.PinTool(sku); err != nil {
		return err
	}
	s.logger.Info("tool pinned", "sku", sku)
	return nil
}

// Unpin clears any pin.
func (s *Session) Unpin() {
	s.state.Unpin()
	s.logger.Info("unpinned")
}

// Reopen clears the pin when kind is the pinned side.
func (s *Session) Reopen(kind selection.PinKind) error {
	before := s.state.Pin()
	if err := s.state.Reopen(kind); err != nil {
		return err
	}
	if before != s.state.Pin() {
		s.logger.Info("reopened", "kind", kind)
	}
	return nil
}
