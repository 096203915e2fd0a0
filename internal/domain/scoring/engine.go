package scoring

// Evaluate scores an observation for the lighting regime implied by the
// sun's elevation. Each regime has its own model: clear skies win at night,
// high cloud wins at golden hour, and a little mid-level cloud beats both
// harsh clear light and low overcast during the day.
func Evaluate(obs Observation, sunElevation float64) Evaluation {
	condition := ConditionFor(sunElevation)

	var (
		score   float64
		summary string
	)

	switch condition {
	case Night:
		// Astrophotography model. Any cloud hurts, low cloud most of all,
		// and precipitation ends the session outright.
		score = 100
		score -= obs.Clouds.Low*0.5 + obs.Clouds.Mid*0.2 + obs.Clouds.High*0.1
		if obs.PrecipitationMM > 0 {
			score -= 100
		}
		if score > 85 {
			summary = "Excellent clear sky for astrophotography."
		} else {
			summary = "Clouds are present, poor for astrophotography."
		}

	case GoldenHour:
		// High cloud catches the low sun and lights up; low cloud blocks it.
		score = 50
		score += obs.Clouds.High * 0.5
		score -= obs.Clouds.Low * 0.8
		switch {
		case obs.Clouds.High > 20 && obs.Clouds.Low < 30:
			summary = "Stunning sunset potential! High clouds are catching the light."
		case obs.Clouds.Low > 50:
			summary = "Poor. Low clouds are blocking the sun."
		default:
			summary = "Decent conditions, but the clouds may not be ideal."
		}

	default:
		// Blue hour and daytime share a model: low cloud flattens the scene,
		// mid-level cloud adds drama until it closes over.
		score = 100
		score -= obs.Clouds.Low * 0.7
		if obs.Clouds.Mid > 75 {
			score -= 25
		}
		switch {
		case obs.Clouds.Low > 60:
			summary = "Dull, overcast conditions due to a thick low cloud layer."
		case obs.Clouds.Mid > 20:
			summary = "Good potential for dramatic skies with mid-level clouds."
		default:
			summary = "Clear conditions, may result in harsh light."
		}
	}

	return Evaluation{
		Score:     clamp(score),
		Condition: condition,
		Summary:   condition.String() + ": " + summary,
	}
}

func clamp(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}
