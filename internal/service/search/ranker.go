package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/asbhive/directory/api/internal/ai"
	"github.com/asbhive/directory/api/internal/entity"
)

// Ranking sources.
const (
	SourceAI    = "ai"
	SourceBasic = "basic"
)

const (
	defaultMaxCandidates = 20
	defaultMaxResults    = 10
	defaultTimeout       = 15 * time.Second
	promptDescLimit      = 160
)

// Ranking is an ordered result set and the path that produced it.
type Ranking struct {
	Companies []entity.Company `json:"companies"`
	Source    string           `json:"source"`
}

// Ranker orders records by relevance using the reasoning service, falling back to Match.
type Ranker struct {
	gen           ai.Generator
	maxCandidates int
	maxResults    int
	timeout       time.Duration
	log           zerolog.Logger
}

// RankerOption customises a Ranker.
type RankerOption func(*Ranker)

// WithMaxCandidates caps how many records are offered to the reasoning service.
func WithMaxCandidates(n int) RankerOption {
	return func(r *Ranker) {
		if n > 0 {
			r.maxCandidates = n
		}
	}
}

// WithTimeout bounds the reasoning service call.
func WithTimeout(d time.Duration) RankerOption {
	return func(r *Ranker) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRanker builds a Ranker. A nil generator makes every call use Match.
func NewRanker(gen ai.Generator, log zerolog.Logger, opts ...RankerOption) *Ranker {
	r := &Ranker{
		gen:           gen,
		maxCandidates: defaultMaxCandidates,
		maxResults:    defaultMaxResults,
		timeout:       defaultTimeout,
		log:           log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank returns at most ten records of records, best match first. It never fails:
// any problem with the reasoning service yields Match(query, records) instead.
// A blank query is not sent to the reasoning service; with a generator configured the
// unranked records are capped like a ranked answer.
func (r *Ranker) Rank(ctx context.Context, query string, records []entity.Company) Ranking {
	if strings.TrimSpace(query) == "" {
		matched := Match(query, records)
		if r.gen != nil && len(matched) > r.maxResults {
			matched = matched[:r.maxResults]
		}
		return Ranking{Companies: matched, Source: SourceBasic}
	}

	candidates := records
	if len(candidates) > r.maxCandidates {
		candidates = candidates[:r.maxCandidates]
	}

	primary := func(ctx context.Context, gen ai.Generator) (Ranking, error) {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		text, err := gen.Generate(ctx, BuildRankPrompt(query, candidates))
		if err != nil {
			return Ranking{}, err
		}
		indices, err := ai.ParseIndexList(text)
		if err != nil {
			return Ranking{}, err
		}
		ranked, err := resolveIndices(indices, candidates, r.maxResults)
		if err != nil {
			return Ranking{}, err
		}
		return Ranking{Companies: ranked, Source: SourceAI}, nil
	}
	fallback := func() Ranking {
		return Ranking{Companies: Match(query, records), Source: SourceBasic}
	}

	out, _ := ai.FailSoft(ctx, r.log, "rank", r.gen, primary, fallback)
	return out
}

// resolveIndices maps model indices onto candidates, dropping out-of-range and repeated
// entries and keeping the model's order.
func resolveIndices(indices []int, candidates []entity.Company, limit int) ([]entity.Company, error) {
	ranked := make([]entity.Company, 0, min(len(indices), limit))
	seen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(candidates) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		ranked = append(ranked, candidates[idx])
		if len(ranked) == limit {
			break
		}
	}
	if len(indices) > 0 && len(ranked) == 0 {
		return nil, fmt.Errorf("%w: no index in %v matched %d candidates", ai.ErrMalformedResponse, indices, len(candidates))
	}
	return ranked, nil
}

// BuildRankPrompt renders the ranking instruction for the given candidates.
func BuildRankPrompt(query string, candidates []entity.Company) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Given the search query: %q\n", strings.TrimSpace(query))
	sb.WriteString("And the following Malaysian social enterprises, one per line as [index] name | sector | description:\n")
	for i, c := range candidates {
		fmt.Fprintf(&sb, "[%d] %s | %s | %s\n", i, oneLine(c.Name), oneLine(c.SectorKey()), clip(oneLine(c.Description), promptDescLimit))
	}
	fmt.Fprintf(&sb, "\nReturn ONLY a JSON array of up to %d indices of the enterprises that best match the search intent, most relevant first.\n", defaultMaxResults)
	sb.WriteString("Consider company name, sector, description and thematically related keywords.\n")
	sb.WriteString("Example format: [3, 0, 7]\n")
	return sb.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
