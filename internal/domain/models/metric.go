package models

// Metric identifies one of the numeric quality measurements.
type Metric string

const (
	MetricWeight           Metric = "weight"
	MetricBreakingStrength Metric = "breakingStrength"
	MetricShellThickness   Metric = "shellThickness"
	MetricYolkColor        Metric = "yolkColor"
	MetricHaughUnits       Metric = "haughUnits"
)

// Metrics lists every metric in display order.
var Metrics = []Metric{
	MetricWeight,
	MetricBreakingStrength,
	MetricShellThickness,
	MetricYolkColor,
	MetricHaughUnits,
}

// MetricInfo holds presentation details for a metric.
type MetricInfo struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Color string `json:"color"`
}

var metricInfo = map[Metric]MetricInfo{
	MetricWeight:           {Name: "Peso Huevo", Unit: "g", Color: "#3b82f6"},
	MetricBreakingStrength: {Name: "Resistencia", Unit: "kgf", Color: "#f97316"},
	MetricShellThickness:   {Name: "Espesor", Unit: "mm", Color: "#10b981"},
	MetricYolkColor:        {Name: "Color Yema", Unit: "Escala", Color: "#eab308"},
	MetricHaughUnits:       {Name: "Unid. Haugh", Unit: "HU", Color: "#a855f7"},
}

// Info returns the presentation details of the metric.
func (m Metric) Info() MetricInfo {
	if info, ok := metricInfo[m]; ok {
		return info
	}
	return MetricInfo{Name: string(m)}
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	_, ok := metricInfo[m]
	return ok
}

// ParseMetric resolves a metric key, reporting whether it is known.
func ParseMetric(key string) (Metric, bool) {
	m := Metric(key)
	return m, m.Valid()
}
