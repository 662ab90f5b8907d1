package categorize

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/cashflow/internal/model"
)

const (
	longKeywordWeight  = 2.0
	shortKeywordWeight = 1.0
	patternWeight      = 1.5
	// longKeywordLen is the length above which a keyword counts as specific.
	longKeywordLen = 5
	// fullConfidenceScore is the score that maps to confidence 1.
	fullConfidenceScore = 5.0
)

var (
	amountInText    = regexp.MustCompile(`\$?([\d,]+\.?\d*)`)
	recurringInText = regexp.MustCompile(`(?i)\b(monthly|weekly|annual|recurring)\b`)
	onlineInText    = regexp.MustCompile(`(?i)\b(online|web|internet)\b`)
)

type compiledRule struct {
	category string
	keywords []string
	patterns []*regexp.Regexp
}

// Engine classifies descriptions against an ordered rule table.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	rules      []compiledRule
	categories []string
	known      map[string]bool
}

// NewEngine compiles rules. Category names must be unique and patterns valid.
func NewEngine(rules []Rule) (*Engine, error) {
	e := &Engine{known: make(map[string]bool, len(rules)+1)}
	for i, r := range rules {
		name := strings.TrimSpace(r.Category)
		if name == "" {
			return nil, fmt.Errorf("rule %d: empty category name", i+1)
		}
		if e.known[name] {
			return nil, fmt.Errorf("rule %d: duplicate category %q", i+1, name)
		}
		cr := compiledRule{category: name}
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				cr.keywords = append(cr.keywords, kw)
			}
		}
		for _, p := range r.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("rule %q: compiling pattern %q: %w", name, p, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		e.rules = append(e.rules, cr)
		e.categories = append(e.categories, name)
		e.known[name] = true
	}
	if !e.known[model.CategoryOther] {
		e.categories = append(e.categories, model.CategoryOther)
		e.known[model.CategoryOther] = true
	}
	return e, nil
}

// Default returns an engine over DefaultRules.
func Default() *Engine {
	e, err := NewEngine(DefaultRules())
	if err != nil {
		panic("built-in category rules: " + err.Error())
	}
	return e
}

// Categories returns category names in declaration order, "Other" included.
func (e *Engine) Categories() []string {
	out := make([]string, len(e.categories))
	copy(out, e.categories)
	return out
}

// Known reports whether category can be produced by this engine.
func (e *Engine) Known(category string) bool {
	return e.known[category]
}

// Categorize scores description against every rule and returns the best match.
// It never fails: with no hits the result is "Other" at confidence 0.
func (e *Engine) Categorize(description string) model.Categorization {
	lower := strings.ToLower(description)

	best := model.CategoryOther
	bestScore := 0.0
	var bestKeywords []string
	for _, r := range e.rules {
		score := 0.0
		var matched []string
		for _, kw := range r.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			if utf8.RuneCountInString(kw) > longKeywordLen {
				score += longKeywordWeight
			} else {
				score += shortKeywordWeight
			}
			matched = append(matched, kw)
		}
		for _, re := range r.patterns {
			if re.MatchString(description) {
				score += patternWeight
			}
		}
		if score > bestScore {
			best, bestScore, bestKeywords = r.category, score, matched
		}
	}

	return model.Categorization{
		Category:   best,
		Confidence: min(bestScore/fullConfidenceScore, 1),
		Tags:       buildTags(description, bestKeywords),
	}
}

// buildTags combines matched keywords with amount, recurrence and channel hints.
func buildTags(description string, keywords []string) []string {
	tags := append([]string(nil), keywords...)

	if m := amountInText.FindStringSubmatch(description); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			if v > 1000 {
				tags = append(tags, "high-value")
			}
			if v < 10 {
				tags = append(tags, "small-purchase")
			}
		}
	}
	if recurringInText.MatchString(description) {
		tags = append(tags, "recurring")
	}
	if onlineInText.MatchString(description) {
		tags = append(tags, "online")
	}

	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, min(len(tags), model.MaxTags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == model.MaxTags {
			break
		}
	}
	return out
}

// CategorizeAll classifies txns concurrently with at most workers goroutines
// (GOMAXPROCS when workers <= 0). Results keep the input order.
func (e *Engine) CategorizeAll(ctx context.Context, txns []model.RawTransaction, workers int) ([]model.CategorizedTransaction, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]model.CategorizedTransaction, len(txns))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range txns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = model.Categorize(txns[i], e.Categorize(txns[i].Description))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("categorizing transactions: %w", err)
	}
	return out, nil
}
