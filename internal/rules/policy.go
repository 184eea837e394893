package rules

import (
	"math"

	"urbansim/internal/core"
)

// EVSubsidyPolicy subsidizes charging infrastructure, lowering rents in
// charger-equipped cells and boosting their attractiveness.
type EVSubsidyPolicy struct {
	Active          bool    `yaml:"active"`
	RentReduction   float64 `yaml:"rent_reduction"`
	PopulationBonus float64 `yaml:"population_bonus"`
}

// ProgressiveTaxPolicy taxes rents above a threshold and raises
// displacement risk in the taxed cells.
type ProgressiveTaxPolicy struct {
	Active               bool    `yaml:"active"`
	RentThreshold        float64 `yaml:"rent_threshold"`
	TaxRate              float64 `yaml:"tax_rate"`
	DisplacementIncrease float64 `yaml:"displacement_increase"`
}

// GreenSpacePolicy mandates a green-space target approached geometrically,
// improving air quality, attractiveness, and safety as coverage grows.
type GreenSpacePolicy struct {
	Active          bool    `yaml:"active"`
	Target          float64 `yaml:"target"`
	AirQualityGain  float64 `yaml:"air_quality_gain"`
	PopulationBonus float64 `yaml:"population_bonus"`
	SafetyGain      float64 `yaml:"safety_gain"`
}

// TransitPolicy invests in public transit, raising accessibility and
// cutting congestion.
type TransitPolicy struct {
	Active              bool    `yaml:"active"`
	AccessibilityBoost  float64 `yaml:"accessibility_boost"`
	CongestionReduction float64 `yaml:"congestion_reduction"`
	PopulationBonus     float64 `yaml:"population_bonus"`
}

// RentControlPolicy caps step-over-step rent growth and relieves
// displacement pressure.
type RentControlPolicy struct {
	Active          bool    `yaml:"active"`
	MaxIncrease     float64 `yaml:"max_increase"`
	DisplacementCut float64 `yaml:"displacement_cut"`
}

// PolicySet holds the five independently toggleable policies.
type PolicySet struct {
	EVSubsidy         EVSubsidyPolicy      `yaml:"ev_subsidy"`
	ProgressiveTax    ProgressiveTaxPolicy `yaml:"progressive_tax"`
	GreenSpaceMandate GreenSpacePolicy     `yaml:"green_space_mandate"`
	TransitInvestment TransitPolicy        `yaml:"transit_investment"`
	RentControl       RentControlPolicy    `yaml:"rent_control"`
}

// DefaultPolicies returns the standard policy configuration. Rent control
// ships disabled.
func DefaultPolicies() PolicySet {
	return PolicySet{
		EVSubsidy: EVSubsidyPolicy{
			Active:          true,
			RentReduction:   0.05,
			PopulationBonus: 0.10,
		},
		ProgressiveTax: ProgressiveTaxPolicy{
			Active:               true,
			RentThreshold:        1200,
			TaxRate:              0.08,
			DisplacementIncrease: 0.15,
		},
		GreenSpaceMandate: GreenSpacePolicy{
			Active:          true,
			Target:          0.20,
			AirQualityGain:  0.10,
			PopulationBonus: 0.08,
			SafetyGain:      0.05,
		},
		TransitInvestment: TransitPolicy{
			Active:              true,
			AccessibilityBoost:  0.20,
			CongestionReduction: 0.15,
			PopulationBonus:     0.12,
		},
		RentControl: RentControlPolicy{
			Active:          false,
			MaxIncrease:     0.03,
			DisplacementCut: 0.40,
		},
	}
}

// Policy applies the configured government interventions to a cell. Its
// only state beyond configuration is the previous-rent bookkeeping stored
// on the cell itself for the rent-control cap.
type Policy struct {
	policies PolicySet
}

// NewPolicy returns a policy module with the given policy configuration.
func NewPolicy(policies PolicySet) *Policy {
	return &Policy{policies: policies}
}

func (p *Policy) Name() string  { return "policy" }
func (p *Policy) Priority() int { return PriorityPolicy }

// Policies exposes the active configuration.
func (p *Policy) Policies() PolicySet { return p.policies }

func (p *Policy) Apply(cell *core.Cell, neighbors []*core.Cell) {
	m := &cell.Metrics

	if ev := p.policies.EVSubsidy; ev.Active && m.ChargersCount > 0 {
		m.AvgRent = core.ClampRange(m.AvgRent*(1-ev.RentReduction), core.MinRent, core.MaxRent)
		cell.Mods.PolicyAttractiveness += ev.PopulationBonus
	}

	if tax := p.policies.ProgressiveTax; tax.Active && m.AvgRent > tax.RentThreshold {
		taxed := (m.AvgRent - tax.RentThreshold) * tax.TaxRate
		m.AvgRent = core.ClampRange(m.AvgRent-taxed, core.MinRent, core.MaxRent)
		m.DisplacementRisk = core.Clamp01(m.DisplacementRisk + tax.DisplacementIncrease*0.1)
	}

	if green := p.policies.GreenSpaceMandate; green.Active {
		// Geometric approach: 20% of the remaining gap per step.
		gain := (green.Target - m.GreenSpaceRatio) * 0.2
		m.GreenSpaceRatio = core.Clamp01(math.Min(green.Target, m.GreenSpaceRatio+gain))

		if m.GreenSpaceRatio > 0 {
			m.AirQualityIndex = core.ClampRange(
				m.AirQualityIndex+m.GreenSpaceRatio*green.AirQualityGain*10, 0, core.MaxAQI)
			cell.Mods.PolicyAttractiveness += green.PopulationBonus
			m.SafetyScore = core.Clamp01(m.SafetyScore + m.GreenSpaceRatio*green.SafetyGain*0.1)
		}
	}

	if transit := p.policies.TransitInvestment; transit.Active {
		m.TransitAccess = core.Clamp01(m.TransitAccess + transit.AccessibilityBoost*0.1)
		m.TrafficCongestion = core.Clamp01(m.TrafficCongestion * (1 - transit.CongestionReduction*0.05))
		cell.Mods.PolicyAttractiveness += transit.PopulationBonus
	}

	if rc := p.policies.RentControl; rc.Active {
		if prev, ok := cell.PreviousRent(); ok {
			capped := prev + prev*rc.MaxIncrease
			if m.AvgRent > capped {
				m.AvgRent = core.ClampRange(capped, core.MinRent, core.MaxRent)
			}
		}
		m.DisplacementRisk = core.Clamp01(m.DisplacementRisk - m.DisplacementRisk*rc.DisplacementCut*0.1)
	}

	// Recorded unconditionally so enabling rent control mid-configuration
	// has a baseline on the next step.
	cell.SetPreviousRent(m.AvgRent)
}
