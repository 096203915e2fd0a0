package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateNightClearSky(t *testing.T) {
	obs := Observation{Clouds: CloudCover{Low: 0, Mid: 0, High: 10}}

	eval := Evaluate(obs, -20)

	require.Equal(t, Night, eval.Condition)
	require.Equal(t, 99, eval.Score)
	require.Equal(t, "Night: Excellent clear sky for astrophotography.", eval.Summary)
}

func TestEvaluateNightCloudy(t *testing.T) {
	obs := Observation{Clouds: CloudCover{Low: 80, Mid: 50, High: 30}}

	eval := Evaluate(obs, -10)

	require.Equal(t, Night, eval.Condition)
	require.Equal(t, 47, eval.Score)
	require.Equal(t, "Night: Clouds are present, poor for astrophotography.", eval.Summary)
}

func TestEvaluateNightRainZeroesScore(t *testing.T) {
	obs := Observation{
		Clouds:          CloudCover{Low: 100, Mid: 100, High: 100},
		PrecipitationMM: 1.2,
	}

	eval := Evaluate(obs, -30)

	require.Equal(t, 0, eval.Score)
}

func TestEvaluateGoldenHourHighCloud(t *testing.T) {
	obs := Observation{Clouds: CloudCover{Low: 10, Mid: 15, High: 60}}

	eval := Evaluate(obs, 2)

	require.Equal(t, GoldenHour, eval.Condition)
	// 50 + 60*0.5 - 10*0.8 = 72
	require.Equal(t, 72, eval.Score)
	require.Equal(t, "Golden Hour: Stunning sunset potential! High clouds are catching the light.", eval.Summary)
}

func TestEvaluateGoldenHourLowCloudBlocksSun(t *testing.T) {
	obs := Observation{Clouds: CloudCover{Low: 90, Mid: 40, High: 5}}

	eval := Evaluate(obs, -2)

	require.Equal(t, GoldenHour, eval.Condition)
	require.Equal(t, 0, eval.Score)
	require.Equal(t, "Golden Hour: Poor. Low clouds are blocking the sun.", eval.Summary)
}

func TestEvaluateGoldenHourMiddlingClouds(t *testing.T) {
	obs := Observation{Clouds: CloudCover{Low: 40, Mid: 10, High: 10}}

	eval := Evaluate(obs, 4)

	// 50 + 10*0.5 - 40*0.8 = 23
	require.Equal(t, 23, eval.Score)
	require.Equal(t, "Golden Hour: Decent conditions, but the clouds may not be ideal.", eval.Summary)
}

func TestEvaluateDaytimeOvercast(t *testing.T) {
	obs := Observation{Clouds: CloudCover{Low: 80, Mid: 80, High: 0}}

	eval := Evaluate(obs, 35)

	require.Equal(t, Daytime, eval.Condition)
	// 100 - 80*0.7 - 25 = 19
	require.Equal(t, 19, eval.Score)
	require.Equal(t, "Daytime: Dull, overcast conditions due to a thick low cloud layer.", eval.Summary)
}

func TestEvaluateDaytimeDramaticMidCloud(t *testing.T) {
	obs := Observation{Clouds: CloudCover{Low: 10, Mid: 45, High: 20}}

	eval := Evaluate(obs, 50)

	// 100 - 10*0.7 = 93
	require.Equal(t, 93, eval.Score)
	require.Equal(t, "Daytime: Good potential for dramatic skies with mid-level clouds.", eval.Summary)
}

func TestEvaluateBlueHourClear(t *testing.T) {
	obs := Observation{Clouds: CloudCover{}}

	eval := Evaluate(obs, -5)

	require.Equal(t, BlueHour, eval.Condition)
	require.Equal(t, 100, eval.Score)
	require.Equal(t, "Blue Hour: Clear conditions, may result in harsh light.", eval.Summary)
}

func TestEvaluateScoreStaysInRange(t *testing.T) {
	cases := []struct {
		name      string
		obs       Observation
		elevation float64
	}{
		{"worst night", Observation{Clouds: CloudCover{Low: 100, Mid: 100, High: 100}, PrecipitationMM: 5}, -45},
		{"best golden hour", Observation{Clouds: CloudCover{High: 100}}, 0},
		{"worst golden hour", Observation{Clouds: CloudCover{Low: 100}}, 0},
		{"clear noon", Observation{}, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eval := Evaluate(tc.obs, tc.elevation)
			require.GreaterOrEqual(t, eval.Score, 0)
			require.LessOrEqual(t, eval.Score, 100)
		})
	}
}
