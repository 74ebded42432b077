// Package results provides evaluation score recording and aggregate queries.
package results

import (
	"context"
	"math"
	"sync"
	"time"
)

// EvalRecord is a single scored evaluation (one model response against a
// cultural reference).
type EvalRecord struct {
	Model         string
	Culture       string
	Scenario      string
	Trial         int
	Alignment     float64
	Stereotype    float64
	LowConfidence bool
	At            time.Time
}

// Store is the interface for recording and querying evaluation scores.
type Store interface {
	Record(ctx context.Context, r EvalRecord) error
	Query(ctx context.Context, q Query) ([]Aggregate, error)
}

// Query filters and groups evaluations for aggregation.
type Query struct {
	Model    string
	Culture  string
	Scenario string
	From     time.Time
	To       time.Time
	GroupBy  string // "model", "culture", "scenario", "model-culture", "day"
	Limit    int
}

// Aggregate is a bucketed aggregate (e.g. per model or per culture).
type Aggregate struct {
	Key            string
	Count          int64
	MeanAlignment  float64
	StdAlignment   float64
	MeanStereotype float64
	LowConfidence  int64
}

func groupKey(r EvalRecord, groupBy string) string {
	switch groupBy {
	case "model":
		return r.Model
	case "culture":
		return r.Culture
	case "scenario":
		return r.Scenario
	case "model-culture":
		return r.Model + "@" + r.Culture
	case "day":
		return r.At.Format("2006-01-02")
	default:
		return "all"
	}
}

// accumulator tracks running sums so the standard deviation can be computed
// in one pass.
type accumulator struct {
	count         int64
	sumAlign      float64
	sumAlignSq    float64
	sumStereotype float64
	lowConfidence int64
}

func (a *accumulator) add(r EvalRecord) {
	a.count++
	a.sumAlign += r.Alignment
	a.sumAlignSq += r.Alignment * r.Alignment
	a.sumStereotype += r.Stereotype
	if r.LowConfidence {
		a.lowConfidence++
	}
}

func (a *accumulator) aggregate(key string) Aggregate {
	n := float64(a.count)
	mean := a.sumAlign / n
	variance := a.sumAlignSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return Aggregate{
		Key:            key,
		Count:          a.count,
		MeanAlignment:  mean,
		StdAlignment:   math.Sqrt(variance),
		MeanStereotype: a.sumStereotype / n,
		LowConfidence:  a.lowConfidence,
	}
}

func aggregateRecords(records []EvalRecord, q Query) []Aggregate {
	acc := make(map[string]*accumulator)
	for _, r := range records {
		if q.Model != "" && r.Model != q.Model {
			continue
		}
		if q.Culture != "" && r.Culture != q.Culture {
			continue
		}
		if q.Scenario != "" && r.Scenario != q.Scenario {
			continue
		}
		if !q.From.IsZero() && r.At.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && r.At.After(q.To) {
			continue
		}
		k := groupKey(r, q.GroupBy)
		if acc[k] == nil {
			acc[k] = &accumulator{}
		}
		acc[k].add(r)
	}
	out := make([]Aggregate, 0, len(acc))
	for k, a := range acc {
		out = append(out, a.aggregate(k))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MemoryStore is an in-memory implementation (bounded slice, no persistence).
type MemoryStore struct {
	mu      sync.RWMutex
	max     int
	records []EvalRecord
}

// NewMemoryStore creates an in-memory store that keeps at most max records
// (0 = unbounded).
func NewMemoryStore(max int) *MemoryStore {
	return &MemoryStore{max: max, records: make([]EvalRecord, 0, 256)}
}

// Record implements Store.
func (m *MemoryStore) Record(ctx context.Context, r EvalRecord) error {
	if r.At.IsZero() {
		r.At = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	if m.max > 0 && len(m.records) > m.max {
		m.records = m.records[len(m.records)-m.max:]
	}
	return nil
}

// Query implements Store.
func (m *MemoryStore) Query(ctx context.Context, q Query) ([]Aggregate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return aggregateRecords(m.records, q), nil
}
