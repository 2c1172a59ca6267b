package pdftable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantDir direction
		ok      bool
	}{
		{"plain", "120.00", "120", directionUnknown, true},
		{"comma grouped", "85,000.00", "85000", directionUnknown, true},
		{"rupee symbol", "₹1,000.00", "1000", directionUnknown, true},
		{"inr marker", "INR 1,200.50", "1200.5", directionUnknown, true},
		{"credit suffix", "2,500.00Cr", "2500", directionCredit, true},
		{"credit suffix spaced", "2500.00 CR", "2500", directionCredit, true},
		{"debit suffix", "300.00Dr", "300", directionDebit, true},
		{"negative is debit", "-500.00", "500", directionDebit, true},
		{"negative with credit suffix keeps suffix", "-500.00Cr", "500", directionCredit, true},
		{"zero rejected", "0.00", "0", directionUnknown, false},
		{"empty rejected", "", "0", directionUnknown, false},
		{"text rejected", "n/a", "0", directionUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, dir, ok := parseMoney(tt.in)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.want, d.String())
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01-08-2025", "2025-08-01"},
		{"1-8-2025", "2025-08-01"},
		{"1/8/2025", "2025-08-01"},
		{"1.8.2025", "2025-08-01"},
		{"2025-08-01", "2025-08-01"},
		{"01-08-25", "2025-08-01"},
		{"1-8-25", "2025-08-01"},
		{"5-Aug-2025", "2025-08-05"},
		{"05-Aug-2025", "2025-08-05"},
		{"05 Aug 2025", "2025-08-05"},
		{"08-15-2025", "2025-08-15"},
		{"01/08/2025", "2025-08-01"},
		{"01.08.2025", "2025-08-01"},
		{"", ""},
		{"yesterday", ""},
		{"99-99-2025", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDate(tt.in))
		})
	}
}
