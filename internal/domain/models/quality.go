package models

// QualityStatus is the diagnosis of a value against its quality standard.
type QualityStatus string

const (
	StatusPoor       QualityStatus = "Pobre"
	StatusAcceptable QualityStatus = "Aceptable"
	StatusOptimal    QualityStatus = "Óptimo"
)

// QualityStandard describes the gauge scale and quality bands of a metric.
type QualityStandard struct {
	Min        float64    `yaml:"min" json:"min"`
	Max        float64    `yaml:"max" json:"max"`
	Poor       [2]float64 `yaml:"poor" json:"poor"`
	Acceptable [2]float64 `yaml:"acceptable" json:"acceptable"`
	Optimal    [2]float64 `yaml:"optimal" json:"optimal"`
}

// QualityStandards maps every metric to its standard.
type QualityStandards map[Metric]QualityStandard

// DefaultQualityStandards returns the built-in standards for laying hens.
func DefaultQualityStandards() QualityStandards {
	return QualityStandards{
		MetricWeight:           {Min: 45, Max: 80, Poor: [2]float64{45, 52}, Acceptable: [2]float64{52, 65}, Optimal: [2]float64{65, 80}},
		MetricBreakingStrength: {Min: 2.0, Max: 5.0, Poor: [2]float64{2.0, 2.8}, Acceptable: [2]float64{2.8, 3.8}, Optimal: [2]float64{3.8, 5.0}},
		MetricShellThickness:   {Min: 0.25, Max: 0.45, Poor: [2]float64{0.25, 0.30}, Acceptable: [2]float64{0.30, 0.38}, Optimal: [2]float64{0.38, 0.45}},
		MetricYolkColor:        {Min: 5, Max: 13, Poor: [2]float64{5, 7.5}, Acceptable: [2]float64{7.5, 10.5}, Optimal: [2]float64{10.5, 13}},
		MetricHaughUnits:       {Min: 40, Max: 110, Poor: [2]float64{40, 65}, Acceptable: [2]float64{65, 90}, Optimal: [2]float64{90, 110}},
	}
}

// Diagnose classifies value into a quality band.
func (s QualityStandard) Diagnose(value float64) QualityStatus {
	switch {
	case value < s.Poor[1]:
		return StatusPoor
	case value < s.Acceptable[1]:
		return StatusAcceptable
	default:
		return StatusOptimal
	}
}

// Angle maps value onto a half-circle gauge, in degrees from 0 to 180.
func (s QualityStandard) Angle(value float64) float64 {
	if s.Max <= s.Min {
		return 0
	}
	clamped := value
	if clamped < s.Min {
		clamped = s.Min
	}
	if clamped > s.Max {
		clamped = s.Max
	}
	return (clamped - s.Min) / (s.Max - s.Min) * 180
}
