package main

import (
	"testing"
	"time"

	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole dollars", input: "12", want: 1200},
		{name: "dollars and cents", input: "12.34", want: 1234},
		{name: "single fractional digit", input: "12.3", want: 1230},
		{name: "extra fractional digits truncate", input: "12.345", want: 1234},
		{name: "comma decimal separator", input: "12,34", want: 1234},
		{name: "leading and trailing space", input: " 5.00 ", want: 500},
		{name: "zero", input: "0", want: 0},
		{name: "negative rejected", input: "-5", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "letters rejected", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMonthFlag(t *testing.T) {
	year, month, err := parseMonthFlag("2024-06")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.June, month)

	year, month, err = parseMonthFlag("")
	require.NoError(t, err)
	now := time.Now()
	assert.Equal(t, now.Year(), year)
	assert.Equal(t, now.Month(), month)

	for _, bad := range []string{"2024", "2024-13", "2024-00", "june", "2024/06"} {
		_, _, err := parseMonthFlag(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseRule(t *testing.T) {
	rule, err := parseRule("50/30/20")
	require.NoError(t, err)
	assert.Equal(t, model.Rule{Necessities: 50, Leisure: 30, Savings: 20}, rule)

	rule, err = parseRule(" 70 / 20 / 10 ")
	require.NoError(t, err)
	assert.Equal(t, model.Rule{Necessities: 70, Leisure: 20, Savings: 10}, rule)

	for _, bad := range []string{"50/30", "50/30/20/0", "a/b/c", "50/-30/80"} {
		_, err := parseRule(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseBucketFlag(t *testing.T) {
	b, err := parseBucketFlag("leisure")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, model.BucketLeisure, *b)

	b, err = parseBucketFlag("SAVINGS")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, model.BucketSavings, *b)

	b, err = parseBucketFlag("")
	require.NoError(t, err)
	assert.Nil(t, b)

	_, err = parseBucketFlag("fun")
	assert.Error(t, err)
}
