package prayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/salat/internal/apperr"
)

func TestMethodsAreValid(t *testing.T) {
	ids := map[string]bool{}
	for _, m := range Methods() {
		assert.NoError(t, m.Validate(), m.ID)
		assert.False(t, ids[m.ID], "duplicate %s", m.ID)
		ids[m.ID] = true
		assert.NotEmpty(t, m.Name)
	}
	assert.Equal(t, len(ids), len(MethodIDs()))
	assert.Contains(t, ids, DefaultMethodID)
}

func TestLookupMethod(t *testing.T) {
	m, err := LookupMethod("ifb")
	require.NoError(t, err)
	assert.Equal(t, "IFB", m.ID)
	assert.Equal(t, 18.5, m.FajrAngle)
	assert.Equal(t, 17.5, m.IshaAngle)
	assert.Equal(t, AsrHanafi, m.Asr)

	m, err = LookupMethod(" Makkah ")
	require.NoError(t, err)
	assert.Equal(t, 90.0, m.IshaMinutes)
	assert.Zero(t, m.IshaAngle)

	_, err = LookupMethod("XYZ")
	assert.True(t, apperr.IsValidation(err))
}

func TestMethodOverridesDoNotMutateTable(t *testing.T) {
	m, err := LookupMethod("IFB")
	require.NoError(t, err)
	_ = m.WithAsr(AsrStandard).WithHighLat(HighLatSeventh)

	again, err := LookupMethod("IFB")
	require.NoError(t, err)
	assert.Equal(t, AsrHanafi, again.Asr)
	assert.Equal(t, HighLatAngle, again.HighLat)

	ms := Methods()
	ms[0].FajrAngle = 1
	assert.Equal(t, 18.5, Methods()[0].FajrAngle)
}

func TestParseAsr(t *testing.T) {
	tests := []struct {
		in      string
		want    AsrFactor
		wantErr bool
	}{
		{"standard", AsrStandard, false},
		{"Shafi", AsrStandard, false},
		{"1", AsrStandard, false},
		{"hanafi", AsrHanafi, false},
		{"2", AsrHanafi, false},
		{"3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAsr(tt.in)
			if tt.wantErr {
				assert.True(t, apperr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "hanafi", AsrHanafi.String())
}

func TestParseHighLat(t *testing.T) {
	r, err := ParseHighLat(" Middle ")
	require.NoError(t, err)
	assert.Equal(t, HighLatMiddle, r)

	_, err = ParseHighLat("polar")
	assert.True(t, apperr.IsValidation(err))
}
