package breach

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"deepguard/internal/cache"
	"deepguard/internal/models"
)

// Risk policy thresholds. The mapping from (count, sensitivity) to the
// 4-level scale is monotonic: more breaches never lowers the level.
//
//	any sensitive breach OR count > 10  -> critical
//	count > 5                            -> high
//	count >= 1                           -> medium
//	count == 0                           -> low
const (
	criticalCountThreshold = 10
	highCountThreshold     = 5
)

// Store persists breach check outcomes. *repository.BreachChecks satisfies it.
type Store interface {
	Create(ctx context.Context, check *models.BreachCheck) error
}

// Notifier raises alerts for high-risk checks. *alerts.Service satisfies it.
type Notifier interface {
	FromBreachCheck(ctx context.Context, check *models.BreachCheck)
}

// Service orchestrates breach lookups: provider call, domain mapping, risk
// policy, recovery guidance, persistence, alerting, and the redis lookup
// cache.
type Service struct {
	client   *Client
	store    Store
	notifier Notifier
	cache    *cache.Store
	cacheTTL time.Duration
}

// NewService creates a breach detection service with its dependencies injected.
// cacheStore and notifier may be nil; without a cache every lookup hits the
// provider, without a notifier no alerts are raised.
func NewService(client *Client, store Store, notifier Notifier, cacheStore *cache.Store, cacheTTL time.Duration) *Service {
	return &Service{
		client:   client,
		store:    store,
		notifier: notifier,
		cache:    cacheStore,
		cacheTTL: cacheTTL,
	}
}

// CheckEmail looks up an email address against the breach-data provider.
func (s *Service) CheckEmail(ctx context.Context, userID uint, email string) (*models.BreachDetectionResult, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", models.ErrValidation)
	}
	return s.check(ctx, userID, email, models.SubjectEmail)
}

// CheckPhone looks up a phone number; structurally identical to CheckEmail.
func (s *Service) CheckPhone(ctx context.Context, userID uint, phone string) (*models.BreachDetectionResult, error) {
	if phone == "" {
		return nil, fmt.Errorf("phone is required: %w", models.ErrValidation)
	}
	return s.check(ctx, userID, phone, models.SubjectPhone)
}

func (s *Service) check(ctx context.Context, userID uint, subject string, subjectType models.SubjectType) (*models.BreachDetectionResult, error) {
	cacheKey := cache.KeyBreachPrefix + string(subjectType) + ":" + subject

	if s.cache != nil {
		var cached models.BreachDetectionResult
		hit, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			// Cache trouble is not a lookup failure; fall through to the provider.
			log.Printf("[breach] Cache read failed for %s: %v", subject, err)
		} else if hit {
			return &cached, nil
		}
	}

	breaches, err := s.client.BreachedAccount(ctx, subject)
	if err != nil {
		return nil, err
	}

	result := BuildResult(subject, subjectType, breaches, time.Now().UTC())

	check := &models.BreachCheck{
		UserID:        userID,
		Subject:       subject,
		SubjectType:   subjectType,
		IsBreached:    result.IsBreached,
		TotalBreaches: result.TotalBreaches,
		RiskLevel:     result.RiskLevel,
		Breaches:      models.BreachList(result.Breaches),
		DetectedAt:    result.DetectedAt,
	}
	if result.MostRecentBreach != nil {
		check.MostRecentName = result.MostRecentBreach.Name
		d := result.MostRecentBreach.BreachDate
		check.MostRecentDate = &d
	}
	if err := s.store.Create(ctx, check); err != nil {
		// The lookup itself succeeded; report the result but log the write failure.
		log.Printf("[breach] Failed to persist check for %s: %v", subject, err)
	}
	if s.notifier != nil {
		s.notifier.FromBreachCheck(ctx, check)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, result, s.cacheTTL); err != nil {
			log.Printf("[breach] Cache write failed for %s: %v", subject, err)
		}
	}

	return result, nil
}

// BuildResult assembles a BreachDetectionResult from raw provider breaches,
// maintaining the aggregate invariants:
//
//	IsBreached == (TotalBreaches > 0), TotalBreaches == len(Breaches),
//	MostRecentBreach == max by BreachDate when non-empty.
func BuildResult(subject string, subjectType models.SubjectType, breaches []models.BreachData, now time.Time) *models.BreachDetectionResult {
	sort.Slice(breaches, func(i, j int) bool {
		return breaches[i].BreachDate.After(breaches[j].BreachDate)
	})

	result := &models.BreachDetectionResult{
		Subject:       subject,
		SubjectType:   subjectType,
		IsBreached:    len(breaches) > 0,
		Breaches:      breaches,
		TotalBreaches: len(breaches),
		RiskLevel:     RiskLevelFor(breaches),
		RecoverySteps: RecoverySteps(breaches),
		DetectedAt:    now,
	}
	if len(breaches) > 0 {
		most := breaches[0]
		result.MostRecentBreach = &most
	}
	return result
}

// RiskLevelFor applies the documented risk policy.
func RiskLevelFor(breaches []models.BreachData) models.RiskLevel {
	count := len(breaches)
	if count == 0 {
		return models.RiskLow
	}

	sensitive := false
	for _, b := range breaches {
		if b.IsSensitive {
			sensitive = true
			break
		}
	}

	switch {
	case sensitive || count > criticalCountThreshold:
		return models.RiskCritical
	case count > highCountThreshold:
		return models.RiskHigh
	default:
		return models.RiskMedium
	}
}
