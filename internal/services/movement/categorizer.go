package movement

import "BreadthPulse/internal/domain/models"

// Classifier maps a daily percentage change to a movement bucket. Every
// producer of daily snapshots must go through the same classifier so the
// bucketing cannot drift between call sites.
type Classifier interface {
	Categorize(pct float64) models.MovementCategory
}

// ThresholdClassifier is the standard nine-bucket classifier. Boundary
// values (exactly 3, 5, 10, 15 and their negatives) belong to the moving
// side; neutral is the open interval (-3, 3).
type ThresholdClassifier struct{}

// Categorize is total over all inputs and evaluated top-down, first match wins.
func (ThresholdClassifier) Categorize(pct float64) models.MovementCategory {
	switch {
	case pct >= 15:
		return models.Up15Plus
	case pct >= 10:
		return models.Up10To15
	case pct >= 5:
		return models.Up5To10
	case pct >= 3:
		return models.Up3To5
	case pct <= -15:
		return models.Down15Plus
	case pct <= -10:
		return models.Down10To15
	case pct <= -5:
		return models.Down5To10
	case pct <= -3:
		return models.Down3To5
	default:
		return models.Neutral
	}
}
