// Package ledger bulk-loads graded picks from the historical store and
// organizes them for day-by-day replay.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/model-sentry/internal/models"
	"github.com/yourusername/model-sentry/internal/repository"
)

// LookbackDays pads the load window so the earliest simulated day still has
// a full 30-day rolling history behind it.
const LookbackDays = 30

// Ledger holds a fully loaded historical window, grouped by date and model.
// It is immutable once loaded; the replay loop only reads from it.
type Ledger struct {
	picks map[time.Time]map[string][]*models.PickRecord
	dates []time.Time
}

// PicksFor returns the ordered picks for one model on one date
func (l *Ledger) PicksFor(date time.Time, modelID string) []*models.PickRecord {
	byModel, ok := l.picks[Normalize(date)]
	if !ok {
		return nil
	}
	return byModel[modelID]
}

// DatesWithin returns the loaded dates inside [start, end] in ascending order
func (l *Ledger) DatesWithin(start, end time.Time) []time.Time {
	start = Normalize(start)
	end = Normalize(end)
	var result []time.Time
	for _, d := range l.dates {
		if d.Before(start) || d.After(end) {
			continue
		}
		result = append(result, d)
	}
	return result
}

// TotalPicks returns the number of loaded pick records
func (l *Ledger) TotalPicks() int {
	total := 0
	for _, byModel := range l.picks {
		for _, picks := range byModel {
			total += len(picks)
		}
	}
	return total
}

// Normalize truncates a timestamp to UTC midnight. All window arithmetic
// happens on normalized dates so timezone drift cannot shift a pick between
// days.
func Normalize(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Loader fetches graded picks from a ledger store, with an in-memory cache
// so multi-strategy comparisons hit the store once per window.
type Loader struct {
	repo   repository.PickRepository
	cache  *cache.Cache
	logger *logrus.Logger
}

// NewLoader creates a new ledger loader
func NewLoader(repo repository.PickRepository, cacheTTL time.Duration, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
	}
	return &Loader{
		repo:   repo,
		cache:  cache.New(cacheTTL, cacheTTL*2),
		logger: logger,
	}
}

// Load fetches every qualifying pick for [start − LookbackDays, end] and
// groups it by date and model. An unreachable store is fatal; no partial
// ledger is ever returned.
func (ld *Loader) Load(ctx context.Context, query repository.PickQuery) (*Ledger, error) {
	query.StartDate = Normalize(query.StartDate)
	query.EndDate = Normalize(query.EndDate)

	key := cacheKey(query)
	if cached, found := ld.cache.Get(key); found {
		if ledger, ok := cached.(*Ledger); ok {
			ld.logger.WithField("picks", ledger.TotalPicks()).Debug("Ledger cache hit")
			return ledger, nil
		}
	}

	padded := query
	padded.StartDate = query.StartDate.AddDate(0, 0, -LookbackDays)

	records, err := ld.repo.GetGradedPicks(ctx, padded)
	if err != nil {
		return nil, fmt.Errorf("%w: range %s to %s, models [%s]: %v",
			models.ErrDataUnavailable,
			padded.StartDate.Format("2006-01-02"),
			padded.EndDate.Format("2006-01-02"),
			strings.Join(query.ModelIDs, ", "),
			err,
		)
	}

	ledger := group(records, padded)
	ld.cache.Set(key, ledger, cache.DefaultExpiration)

	ld.logger.WithFields(logrus.Fields{
		"start": padded.StartDate.Format("2006-01-02"),
		"end":   padded.EndDate.Format("2006-01-02"),
		"picks": ledger.TotalPicks(),
		"dates": len(ledger.dates),
	}).Info("Loaded pick ledger")

	return ledger, nil
}

// group applies the query filters once more and builds the date/model index.
// The Postgres store filters server-side; re-checking here keeps alternative
// stores honest without trusting them.
func group(records []*models.PickRecord, query repository.PickQuery) *Ledger {
	allowed := make(map[string]bool, len(query.ModelIDs))
	for _, id := range query.ModelIDs {
		allowed[id] = true
	}

	picks := make(map[time.Time]map[string][]*models.PickRecord)
	for _, record := range records {
		if !allowed[record.ModelID] {
			continue
		}
		if !record.MeetsEdge(query.MinEdge) || !record.MeetsConfidence(query.MinConfidence) {
			continue
		}
		date := Normalize(record.GameDate)
		if date.Before(query.StartDate) || date.After(query.EndDate) {
			continue
		}
		byModel, ok := picks[date]
		if !ok {
			byModel = make(map[string][]*models.PickRecord)
			picks[date] = byModel
		}
		byModel[record.ModelID] = append(byModel[record.ModelID], record)
	}

	dates := make([]time.Time, 0, len(picks))
	for date := range picks {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return &Ledger{picks: picks, dates: dates}
}

func cacheKey(query repository.PickQuery) string {
	confidence := "none"
	if query.MinConfidence != nil {
		confidence = fmt.Sprintf("%g", *query.MinConfidence)
	}
	return fmt.Sprintf("%s|%s|%s|%g|%s",
		query.StartDate.Format("2006-01-02"),
		query.EndDate.Format("2006-01-02"),
		strings.Join(query.ModelIDs, ","),
		query.MinEdge,
		confidence,
	)
}
