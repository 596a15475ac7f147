package visit

import "testing"

func f(v float64) *float64 { return &v }

func TestSettleAfterPayment(t *testing.T) {
	tests := []struct {
		name          string
		total         *float64
		paid          float64
		wantRemaining float64
		wantStatus    PaymentStatus
	}{
		{"fully paid", f(100), 100, 0, PaymentPaid},
		{"overpaid clamps to zero", f(100), 150, 0, PaymentPaid},
		{"partial", f(100), 40, 60, PaymentPartial},
		{"nothing paid", f(100), 0, 100, PaymentUnpaid},
		{"nil total counts as zero", nil, 50, 0, PaymentPaid},
		{"zero total zero paid", f(0), 0, 0, PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining, status := SettleAfterPayment(tt.total, tt.paid)
			if remaining != tt.wantRemaining {
				t.Errorf("remaining = %v, want %v", remaining, tt.wantRemaining)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %v, want %v", status, tt.wantStatus)
			}
		})
	}
}

func TestSettleOnCompletion(t *testing.T) {
	tests := []struct {
		name          string
		total         *float64
		paid          float64
		wantRemaining float64
		wantStatus    PaymentStatus
	}{
		{"fully paid", f(100), 100, 0, PaymentPaid},
		{"partial", f(100), 40, 60, PaymentPartial},
		{"nothing paid", f(100), 0, 100, PaymentUnpaid},
		// A zero-priced visit is settled arithmetically but never marked paid.
		{"zero total stays unpaid", f(0), 0, 0, PaymentUnpaid},
		{"nil total stays unpaid", nil, 0, 0, PaymentUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining, status := SettleOnCompletion(tt.total, tt.paid)
			if remaining != tt.wantRemaining {
				t.Errorf("remaining = %v, want %v", remaining, tt.wantRemaining)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %v, want %v", status, tt.wantStatus)
			}
		})
	}
}

func TestValidVisitStatus(t *testing.T) {
	for _, s := range []VisitStatus{StatusScheduled, StatusInProgress, StatusCompleted} {
		if !ValidVisitStatus(s) {
			t.Errorf("ValidVisitStatus(%q) = false, want true", s)
		}
	}
	if ValidVisitStatus("cancelled") {
		t.Error("ValidVisitStatus(\"cancelled\") = true, want false")
	}
}
