package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingFor_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Rating
	}{
		{score: 100, want: RatingExcellent},
		{score: 80, want: RatingExcellent},
		{score: 79, want: RatingGood},
		{score: 60, want: RatingGood},
		{score: 59, want: RatingModerate},
		{score: 40, want: RatingModerate},
		{score: 39, want: RatingLow},
		{score: 20, want: RatingLow},
		{score: 19, want: RatingMinimal},
		{score: 0, want: RatingMinimal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RatingFor(tt.score), "score=%d", tt.score)
	}
}

func TestBands_PartitionRange(t *testing.T) {
	seen := make(map[int]Rating, MaxScore+1)
	for _, b := range Bands() {
		for score := b.Min; score <= b.Max; score++ {
			_, dup := seen[score]
			require.False(t, dup, "score %d covered twice", score)
			seen[score] = b.Rating
			require.Equal(t, b.Rating, RatingFor(score))
		}
	}
	require.Len(t, seen, MaxScore+1)
}

func TestRating_Label(t *testing.T) {
	require.Equal(t, "Effectively invisible to AI systems", RatingMinimal.Label())
	require.Empty(t, Rating("unknown").Label())
}

func TestSignalsInput_Resolve(t *testing.T) {
	var empty SignalsInput
	require.Equal(t, DefaultSignals(), empty.Resolve())

	var in SignalsInput
	require.NoError(t, json.Unmarshal([]byte(`{"platformCount":4,"hasWikidata":true,"contentAge":3}`), &in))
	got := in.Resolve()
	require.Equal(t, 4, got.PlatformCount)
	require.True(t, got.HasWikidata)
	require.False(t, got.HasGoogleBusiness)
	require.Equal(t, 3, got.ContentAge)

	zero := 0
	explicit := SignalsInput{PlatformCount: &zero}
	require.Equal(t, 0, explicit.Resolve().PlatformCount)
}
