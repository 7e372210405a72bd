package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearInt(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "number", raw: `2024`, want: 2024},
		{name: "numeric string", raw: `"2024"`, want: 2024},
		{name: "zero", raw: `0`, want: 0},
		{name: "fraction truncates", raw: `2024.9`, want: 2024},
		{name: "negative", raw: `"-3"`, want: -3},
		{name: "leading spaces", raw: `"  1999"`, want: 1999},
		{name: "trailing text", raw: `"2024abc"`, want: 2024},
		{name: "letters", raw: `"abc"`, wantErr: true},
		{name: "empty string", raw: `""`, wantErr: true},
		{name: "sign only", raw: `"-"`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "boolean", raw: `true`, wantErr: true},
		{name: "object", raw: `{"y":2024}`, wantErr: true},
		{name: "overflow", raw: `"99999999999"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewYear(tt.raw).Int()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYearPresence(t *testing.T) {
	var withNull CreateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"anio":null}`), &withNull))
	assert.True(t, withNull.Anio.Present())

	var missing CreateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"nombre":"Ana"}`), &missing))
	assert.False(t, missing.Anio.Present())
}
