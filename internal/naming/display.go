// Package naming turns species and forms into the strings shown to users and
// expected by external tools.
package naming

import (
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/papapumpkin/dexline/internal/catalog"
)

// cosmeticVariants lists, per species, the independent parts picked at random
// for its default form. Each part contributes one dash-joined segment.
var cosmeticVariants = map[string][][]string{
	"Alcremie": {
		{
			"Vanilla-Cream", "Ruby-Cream", "Matcha-Cream", "Mint-Cream", "Lemon-Cream",
			"Salted-Cream", "Ruby-Swirl", "Caramel-Swirl", "Rainbow-Swirl",
		},
		{"Strawberry", "Love", "Berry", "Clover", "Flower", "Star", "Ribbon"},
	},
}

// shinyCollapses hide cosmetic suffixes that shiny sprites do not distinguish.
var shinyCollapses = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`Minior-.+-`), "Minior-"},
	{regexp.MustCompile(`Alcremie-.+-(Cream|Swirl)-`), "Alcremie-"},
}

// Normalizer builds display names. It is safe for concurrent use; draws
// from its Source are serialized.
type Normalizer struct {
	mu  sync.Mutex // guards src
	src Source
	log *zap.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger used to report precondition violations.
func WithLogger(l *zap.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.log = l
		}
	}
}

// NewNormalizer returns a normalizer drawing cosmetic variants from src.
func NewNormalizer(src Source, opts ...Option) *Normalizer {
	n := &Normalizer{src: src, log: zap.NewNop()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// DisplayName returns the name for s presented as f. The "default" form adds
// no suffix. Species with cosmetic variants get a random one for their default
// form; shiny names drop variant segments that shiny sprites share.
func (n *Normalizer) DisplayName(s *catalog.Species, f *catalog.Form, shiny bool) string {
	if f != nil && !s.HasForm(f) {
		n.log.Warn("display name requested for a foreign form",
			zap.String("species", s.Name), zap.String("form", f.Name))
	}

	name := s.Name
	if f != nil && !f.IsDefault() {
		name += "-" + f.Name
	}

	if parts, ok := cosmeticVariants[s.Name]; ok && f.IsDefault() {
		segments := make([]string, 0, len(parts))
		n.mu.Lock()
		for _, options := range parts {
			segments = append(segments, PickOne(n.src, options))
		}
		n.mu.Unlock()
		name += "-" + strings.Join(segments, "-")
	}

	if shiny {
		for _, c := range shinyCollapses {
			name = c.re.ReplaceAllString(name, c.repl)
		}
	}
	return name
}
