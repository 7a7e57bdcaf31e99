package styles

import (
	"testing"

	"vmops/internal/domain"
)

func TestStatusStyle_Colors(t *testing.T) {
	tests := []struct {
		status string
		want   interface{}
	}{
		{domain.StatusRunning, Green},
		{domain.StatusProvisioning, Yellow},
		{domain.StatusStaging, Yellow},
		{domain.StatusStopping, Yellow},
		{domain.StatusStopped, Red},
		{domain.StatusSuspended, Red},
		{"SOMETHING_NEW", Gray},
	}

	for _, tc := range tests {
		if got := StatusStyle(tc.status).GetForeground(); got != tc.want {
			t.Errorf("StatusStyle(%s) foreground = %v, want %v", tc.status, got, tc.want)
		}
	}
}
