package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDisbursementPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    DisbursementPolicy
		wantErr bool
	}{
		{input: "require_mapping", want: PolicyRequireMapping},
		{input: "allow_synthetic_fallback", want: PolicyAllowSyntheticFallback},
		{input: "", want: PolicyRequireMapping},
		{input: "yolo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, err := ParseDisbursementPolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
