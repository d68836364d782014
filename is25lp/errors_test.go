package is25lp

import (
	"strings"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "out of range",
			err:  &OutOfRangeError{Address: 0x7FF00, Length: 512, Capacity: 524288},
			want: []string{"0x07FF00", "512", "524288"},
		},
		{
			name: "page boundary",
			err:  &PageBoundaryError{Address: 0x10F0, Length: 32},
			want: []string{"0x0010F0", "32", "256"},
		},
		{
			name: "timeout",
			err:  &TimeoutError{Operation: "sector erase", Budget: 200 * time.Millisecond},
			want: []string{"sector erase", "200ms"},
		},
		{
			name: "identity mismatch",
			err: &IdentityMismatchError{
				GotManufacturer:  0xEF,
				GotCapacity:      0x16,
				WantManufacturer: 0x9D,
				WantCapacity:     0x13,
			},
			want: []string{"0xEF", "0x16", "0x9D", "0x13"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, fragment := range tt.want {
				if !strings.Contains(msg, fragment) {
					t.Errorf("message %q missing %q", msg, fragment)
				}
			}
		})
	}
}
