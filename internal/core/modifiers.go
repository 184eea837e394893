package core

// Modifiers carries transient per-step signals between rule modules. It is
// cleared at the start of every step and is never persisted, so pipeline
// bookkeeping cannot leak into snapshots.
type Modifiers struct {
	InfraAttractiveness      float64
	PolicyAttractiveness     float64
	EducationAttractiveness  float64
	HealthcareAttractiveness float64
}

// TotalAttractiveness sums all bonuses contributed so far this step.
func (m *Modifiers) TotalAttractiveness() float64 {
	return m.InfraAttractiveness + m.PolicyAttractiveness +
		m.EducationAttractiveness + m.HealthcareAttractiveness
}

// Clear resets all modifiers for the next step.
func (m *Modifiers) Clear() {
	*m = Modifiers{}
}
