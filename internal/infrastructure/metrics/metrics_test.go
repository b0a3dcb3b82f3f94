package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	m := New()

	if m.LoginAttempts == nil || m.Operations == nil || m.ActiveSessions == nil || m.PostedAmount == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.RecordLogin(true)
	m.RecordOperation("deposit", nil)
	m.RecordAmount("deposit", decimal.NewFromInt(10))

	metricFamilies, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestNewIsolatedRegistries(t *testing.T) {
	a, b := New(), New()

	a.RecordLogin(true)

	if got := testutil.ToFloat64(b.LoginAttempts.WithLabelValues(resultSuccess)); got != 0 {
		t.Fatalf("expected registries to be independent, got %v", got)
	}
}

func TestRecordLogin(t *testing.T) {
	m := New()

	m.RecordLogin(true)
	m.RecordLogin(false)
	m.RecordLogin(false)

	if got := testutil.ToFloat64(m.LoginAttempts.WithLabelValues("success")); got != 1 {
		t.Errorf("success logins = %v, want 1", got)
	}

	if got := testutil.ToFloat64(m.LoginAttempts.WithLabelValues("invalid_credentials")); got != 2 {
		t.Errorf("failed logins = %v, want 2", got)
	}
}

func TestRecordOperation(t *testing.T) {
	m := New()

	m.RecordOperation("withdraw", nil)
	m.RecordOperation("withdraw", domain.ErrInsufficientFunds)
	m.RecordOperation("transfer", domain.ErrSameAccount)
	m.RecordOperation("transfer", errors.New("boom"))

	tests := []struct {
		operation string
		result    string
		want      float64
	}{
		{"withdraw", "success", 1},
		{"withdraw", "insufficient_funds", 1},
		{"transfer", "self_transfer", 1},
		{"transfer", "unknown", 1},
	}

	for _, tt := range tests {
		if got := testutil.ToFloat64(m.Operations.WithLabelValues(tt.operation, tt.result)); got != tt.want {
			t.Errorf("%s/%s = %v, want %v", tt.operation, tt.result, got, tt.want)
		}
	}
}

func TestActiveSessions(t *testing.T) {
	m := New()

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	if got := testutil.ToFloat64(m.ActiveSessions); got != 1 {
		t.Fatalf("active sessions = %v, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.RecordOperation("deposit", nil)
	m.RecordAmount("deposit", decimal.RequireFromString("12.50"))

	path := filepath.Join(t.TempDir(), "atm.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}

	for _, want := range []string{
		`goatm_operations_total{operation="deposit",result="success"} 1`,
		`goatm_posted_amount_sum{operation="deposit"} 12.5`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}
