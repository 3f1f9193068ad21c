package trend

import (
	"fmt"
	"math"
)

const weightSumEpsilon = 1e-9

// ScoringConfig holds the relevance scoring weights and the freshness time window.
// The three weights must sum to 1.0.
type ScoringConfig struct {
	EngagementWeight float64
	FreshnessWeight  float64
	FrequencyWeight  float64
	WindowDays       int
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		EngagementWeight: 0.40,
		FreshnessWeight:  0.35,
		FrequencyWeight:  0.25,
		WindowDays:       14,
	}
}

func (c ScoringConfig) Validate() error {
	if c.EngagementWeight < 0 || c.FreshnessWeight < 0 || c.FrequencyWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative")
	}

	sum := c.EngagementWeight + c.FreshnessWeight + c.FrequencyWeight
	if math.Abs(sum-1.0) > weightSumEpsilon {
		return fmt.Errorf("scoring weights must sum to 1.0, got %v", sum)
	}

	if c.WindowDays <= 0 {
		return fmt.Errorf("window days must be positive, got %d", c.WindowDays)
	}

	return nil
}
