package core

// Metric range invariants shared by every rule module.
const (
	MinPopulation = 100.0
	MinRent       = 300.0
	MaxRent       = 3000.0
	MaxAQI        = 100.0
)

// Metrics holds the full socioeconomic state of one cell. Every field is
// present on every cell; rule modules mutate fields in place and must keep
// them inside their declared ranges.
type Metrics struct {
	Population         float64 `json:"population"`
	PopulationDensity  float64 `json:"population_density"`
	TrafficCongestion  float64 `json:"traffic_congestion"`
	SafetyScore        float64 `json:"safety_score"`
	CommercialVitality float64 `json:"commercial_vitality"`
	AvgRent            float64 `json:"avg_rent"`
	DisplacementRisk   float64 `json:"displacement_risk"`
	GreenSpaceRatio    float64 `json:"green_space_ratio"`
	Employment         float64 `json:"employment"`
	UnemploymentRate   float64 `json:"unemployment_rate"`
	HousingUnits       float64 `json:"housing_units"`
	VacancyRate        float64 `json:"vacancy_rate"`
	TransitAccess      float64 `json:"transit_accessibility"`
	AirQualityIndex    float64 `json:"air_quality_index"`
	SocialCohesion     float64 `json:"social_cohesion_index"`

	ChargersCount      float64 `json:"chargers_count"`
	EVCapacityKW       float64 `json:"ev_capacity_kw"`
	ChargerDensity     float64 `json:"charger_density"`
	AvgChargerCapacity float64 `json:"avg_charger_capacity_kw"`
}

// DefaultMetrics returns the baseline state a cell starts from when the
// loader supplies no initial value for a field.
func DefaultMetrics() Metrics {
	return Metrics{
		Population:        1000,
		TrafficCongestion: 0.3,
		SafetyScore:       0.5,
		AvgRent:           500,
		Employment:        500,
		UnemploymentRate:  0.05,
		HousingUnits:      400,
		VacancyRate:       0.02,
		AirQualityIndex:   50,
		SocialCohesion:    0.5,
	}
}

// Clamp01 restricts v to the unit interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampRange restricts v to [lo, hi].
func ClampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
