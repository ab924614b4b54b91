package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	queries      int
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	m.queries++

	return &mockRow{val: m.currentValue}
}

func TestNext_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	num, err := svc.Next(ctx, "ING", period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ING-2026-00001" {
		t.Errorf("expected ING-2026-00001, got %s", num)
	}

	num, err = svc.Next(ctx, "ING", period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ING-2026-00002" {
		t.Errorf("expected ING-2026-00002, got %s", num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("VEN")
	opts := &Options{Strategy: StrategyCached, RangeSize: 10}
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 10; i++ {
		num, err := svc.GetNextNumber(ctx, cfg, opts, period)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := formatNumber(cfg, period, int64(i))
		if num != want {
			t.Errorf("expected %s, got %s", want, num)
		}
	}

	// Entire range served from one DB round trip.
	if q.queries != 1 {
		t.Errorf("expected 1 query for first range, got %d", q.queries)
	}

	// Next call allocates a second range.
	num, err := svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "VEN-2026-00011" {
		t.Errorf("expected VEN-2026-00011, got %s", num)
	}
	if q.queries != 2 {
		t.Errorf("expected 2 queries after range refill, got %d", q.queries)
	}
}

func TestBuildKey_ResetPeriods(t *testing.T) {
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		reset string
		want  string
	}{
		{"year", "ING_2026"},
		{"month", "ING_2026_03"},
		{"never", "ING"},
	}
	for _, tt := range tests {
		cfg := Config{Prefix: "ING", ResetPeriod: tt.reset}
		if got := buildKey(cfg, period); got != tt.want {
			t.Errorf("reset=%s: expected %s, got %s", tt.reset, tt.want, got)
		}
	}
}

func TestParseNumber(t *testing.T) {
	if got := ParseNumber("ING-2026-00042"); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := ParseNumber("VEN-00007"); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := ParseNumber("garbage"); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}
