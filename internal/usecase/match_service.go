package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tradelink/backend/internal/domain"
	"github.com/tradelink/backend/internal/metrics"
)

// Direction identifies which side of the marketplace the query item is on.
type Direction string

const (
	SupplyToDemand Direction = "supply_to_demand"
	DemandToSupply Direction = "demand_to_supply"
)

// Candidate skip reasons, recorded in metrics and debug logs.
const (
	outcomeMatched        = "matched"
	outcomeOutsideRadius  = "outside_radius"
	outcomeBelowThreshold = "below_similarity_threshold"
	outcomeBelowMinScore  = "below_min_score"
	outcomeError          = "error"
)

// Category agreement guarantees a similarity floor plus a bonus, capped so it
// cannot alone force a perfect score.
const (
	categorySimilarityFloor = 0.65
	categoryBoost           = 0.15
)

// MatchConfig holds the resolved configuration the engine scores with. The
// caller validates it before invoking the engine.
type MatchConfig struct {
	SimilarityThreshold float64
	MinMatchScore       float64
	MaxResults          int
	PriceTolerance      float64
	UseSemantic         bool
	SemanticWeight      float64
	FuzzyWeight         float64
	Concurrency         int
}

// MatchService ranks candidate counterpart listings against a query item. Pure
// computation: it never mutates its inputs and has no side effects beyond
// logging and metrics.
type MatchService struct {
	cfg      MatchConfig
	semantic *SemanticScorer
	log      *zap.Logger
}

// NewMatchService creates a match service. semantic may be nil when semantic
// search is disabled; the service then scores with fuzzy matching only.
func NewMatchService(cfg MatchConfig, semantic *SemanticScorer, log *zap.Logger) *MatchService {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = 0.20
	}
	if cfg.MinMatchScore <= 0 {
		cfg.MinMatchScore = 0.25
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 30
	}
	if cfg.PriceTolerance <= 0 {
		cfg.PriceTolerance = 0.25
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if log == nil {
		log = zap.NewNop()
	}
	if semantic == nil {
		cfg.UseSemantic = false
	}

	return &MatchService{
		cfg:      cfg,
		semantic: semantic,
		log:      log,
	}
}

// Rank scores every candidate against the query item and returns the
// surviving matches sorted by score descending, truncated to MaxResults.
// Candidates are scored concurrently; a failure while scoring one candidate
// skips that candidate and the batch proceeds. Ties keep their original
// candidate order.
func (s *MatchService) Rank(
	ctx context.Context,
	query domain.Item,
	queryOrg domain.Organization,
	candidates []domain.Candidate,
	radiusKm float64,
	dir Direction,
) []domain.MatchResult {
	start := time.Now()

	s.log.Info("ranking candidates",
		zap.String("direction", string(dir)),
		zap.Int64("query_id", query.ID),
		zap.Int("candidates", len(candidates)),
		zap.Float64("radius_km", radiusKm))

	queryText := query.RichText()
	scored := make([]*domain.MatchResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for i, cand := range candidates {
		g.Go(func() error {
			result, outcome := s.scoreCandidate(gctx, query, queryText, queryOrg, cand, radiusKm, dir)
			metrics.CandidatesProcessed.WithLabelValues(string(dir), outcome).Inc()
			if result != nil {
				scored[i] = result
			} else if outcome == outcomeError {
				s.log.Warn("skipping candidate",
					zap.Int64("candidate_id", cand.Item.ID),
					zap.String("reason", outcome))
			}
			return nil
		})
	}
	// Workers only record outcomes, they never return errors.
	_ = g.Wait()

	results := make([]domain.MatchResult, 0, len(candidates))
	for _, r := range scored {
		if r != nil {
			results = append(results, *r)
		}
	}

	// Stable: candidates with equal scores keep their input order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	if len(results) > s.cfg.MaxResults {
		results = results[:s.cfg.MaxResults]
	}

	metrics.MatchDuration.WithLabelValues(string(dir)).Observe(time.Since(start).Seconds())

	s.log.Info("ranking complete",
		zap.String("direction", string(dir)),
		zap.Int64("query_id", query.ID),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)))

	return results
}

// scoreCandidate runs the full pipeline for one candidate: radius gate,
// category match, hybrid similarity, threshold gate, category boost,
// aggregation, minimum-score gate. Returns nil plus a skip reason when the
// candidate is rejected. A panic while scoring is contained here so the rest
// of the batch survives malformed candidate data.
func (s *MatchService) scoreCandidate(
	ctx context.Context,
	query domain.Item,
	queryText string,
	queryOrg domain.Organization,
	cand domain.Candidate,
	radiusKm float64,
	dir Direction,
) (result *domain.MatchResult, outcome string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("candidate scoring panicked",
				zap.Int64("candidate_id", cand.Item.ID),
				zap.Any("panic", r))
			result = nil
			outcome = outcomeError
		}
	}()

	distanceKm := Haversine(queryOrg.Latitude, queryOrg.Longitude, cand.Org.Latitude, cand.Org.Longitude)
	if distanceKm > radiusKm {
		return nil, outcomeOutsideRadius
	}

	categoryMatched := CategoryMatch(query.CategoryID, cand.Item.CategoryID, query.CategoryName, cand.Item.CategoryName)

	similarity := s.hybridSimilarity(ctx, queryText, cand.Item.RichText())

	// Skip only if neither category nor text matches.
	if !categoryMatched && similarity < s.cfg.SimilarityThreshold {
		return nil, outcomeBelowThreshold
	}

	effectiveSim := similarity
	if categoryMatched {
		if effectiveSim < categorySimilarityFloor {
			effectiveSim = categorySimilarityFloor
		}
		effectiveSim += categoryBoost
		if effectiveSim > 1.0 {
			effectiveSim = 1.0
		}
	}

	in := ScoreInput{
		DistanceKm:     distanceKm,
		MaxDistanceKm:  radiusKm,
		Similarity:     effectiveSim,
		PriceTolerance: s.cfg.PriceTolerance,
	}
	// PricePerUnit means asking price on the supply item and budget ceiling
	// on the demand item; quantity flows from supply toward demand.
	switch dir {
	case SupplyToDemand:
		in.SupplyPrice = query.PricePerUnit
		in.DemandMaxPrice = cand.Item.PricePerUnit
		in.SupplyQty = query.Quantity
		in.SupplyUnit = query.QuantityUnit
		in.DemandQty = cand.Item.Quantity
		in.DemandUnit = cand.Item.QuantityUnit
	default:
		in.SupplyPrice = cand.Item.PricePerUnit
		in.DemandMaxPrice = query.PricePerUnit
		in.SupplyQty = cand.Item.Quantity
		in.SupplyUnit = cand.Item.QuantityUnit
		in.DemandQty = query.Quantity
		in.DemandUnit = query.QuantityUnit
	}

	detail := CalculateMatchScore(in)
	if detail.MatchScore < s.cfg.MinMatchScore {
		return nil, outcomeBelowMinScore
	}

	return &domain.MatchResult{
		ID:              cand.Item.ID,
		OrgID:           cand.Org.ID,
		OrgName:         cand.Org.Name,
		ItemName:        cand.Item.Name,
		ItemCategory:    cand.Item.CategoryName,
		ItemDescription: cand.Item.Description,
		Price:           cand.Item.PricePerUnit,
		Currency:        cand.Item.Currency,
		Quantity:        cand.Item.Quantity,
		QuantityUnit:    cand.Item.QuantityUnit,
		DistanceKm:      round2(distanceKm),
		NameSimilarity:  round3(effectiveSim),
		MatchScore:      detail.MatchScore,
		ScoreBreakdown:  detail.Breakdown,
		MatchLabels:     detail.Labels,
		CategoryMatched: categoryMatched,
		OrgEmail:        cand.Org.Email,
		OrgPhone:        cand.Org.Phone,
		OrgAddress:      cand.Org.Address,
		OrgLatitude:     cand.Org.Latitude,
		OrgLongitude:    cand.Org.Longitude,
	}, outcomeMatched
}

// hybridSimilarity blends semantic and fuzzy similarity with a fuzzy floor:
// the hybrid score can never fall below fuzzy matching alone, so a degraded
// semantic provider cannot silently harm ranking quality.
func (s *MatchService) hybridSimilarity(ctx context.Context, text1, text2 string) float64 {
	fuzzy := StringSimilarity(text1, text2)

	if !s.cfg.UseSemantic || s.semantic == nil {
		return fuzzy
	}

	semantic := s.semantic.Similarity(ctx, text1, text2)
	combined := clamp01(s.cfg.SemanticWeight*semantic + s.cfg.FuzzyWeight*fuzzy)

	if combined > fuzzy {
		return combined
	}
	return fuzzy
}

// Describe returns a short human-readable summary of the service settings,
// used in the service info endpoint.
func (s *MatchService) Describe() string {
	mode := "fuzzy_only"
	if s.cfg.UseSemantic {
		mode = "hybrid"
	}
	return fmt.Sprintf("mode=%s threshold=%.2f min_score=%.2f max_results=%d",
		mode, s.cfg.SimilarityThreshold, s.cfg.MinMatchScore, s.cfg.MaxResults)
}
