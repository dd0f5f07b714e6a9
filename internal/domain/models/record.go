package models

import "time"

// DateLayout is the canonical calendar date format used across ingestion and the API.
const DateLayout = "2006-01-02"

// Default values applied to categorical attributes absent from the source.
const (
	DefaultCategory = "N/A"
	DefaultAge      = "0"
	DefaultClient   = "General"
)

// Record captures one egg quality measurement.
type Record struct {
	Date         time.Time `json:"-" bson:"date"`
	DateKey      string    `json:"date" bson:"date_key"`
	Farm         string    `json:"farm" bson:"farm"`
	Shed         string    `json:"shed" bson:"shed"`
	Age          string    `json:"age" bson:"age"`
	Breed        string    `json:"breed" bson:"breed"`
	Client       string    `json:"client" bson:"client"`
	MetaqualixID string    `json:"metaqualixId" bson:"metaqualix_id"`

	Weight           *float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	BreakingStrength *float64 `json:"breakingStrength,omitempty" bson:"breaking_strength,omitempty"`
	ShellThickness   *float64 `json:"shellThickness,omitempty" bson:"shell_thickness,omitempty"`
	YolkColor        *float64 `json:"yolkColor,omitempty" bson:"yolk_color,omitempty"`
	HaughUnits       *float64 `json:"haughUnits,omitempty" bson:"haugh_units,omitempty"`
}

// Value returns the metric value and whether it is present.
func (r Record) Value(metric Metric) (float64, bool) {
	var v *float64
	switch metric {
	case MetricWeight:
		v = r.Weight
	case MetricBreakingStrength:
		v = r.BreakingStrength
	case MetricShellThickness:
		v = r.ShellThickness
	case MetricYolkColor:
		v = r.YolkColor
	case MetricHaughUnits:
		v = r.HaughUnits
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// SetValue stores a metric value on the record. Unknown metrics are ignored.
func (r *Record) SetValue(metric Metric, value float64) {
	v := value
	switch metric {
	case MetricWeight:
		r.Weight = &v
	case MetricBreakingStrength:
		r.BreakingStrength = &v
	case MetricShellThickness:
		r.ShellThickness = &v
	case MetricYolkColor:
		r.YolkColor = &v
	case MetricHaughUnits:
		r.HaughUnits = &v
	}
}

// Attribute returns the categorical attribute value for the given key.
func (r Record) Attribute(attr Attribute) string {
	switch attr {
	case AttrFarm:
		return r.Farm
	case AttrShed:
		return r.Shed
	case AttrAge:
		return r.Age
	case AttrBreed:
		return r.Breed
	case AttrClient:
		return r.Client
	case AttrMetaqualix:
		return r.MetaqualixID
	default:
		return ""
	}
}

// Attribute enumerates the categorical dimensions a record can be filtered by.
type Attribute string

const (
	AttrFarm       Attribute = "farm"
	AttrShed       Attribute = "shed"
	AttrAge        Attribute = "age"
	AttrBreed      Attribute = "breed"
	AttrClient     Attribute = "client"
	AttrMetaqualix Attribute = "metaqualixId"
)

// Attributes lists the categorical attributes in display order.
var Attributes = []Attribute{AttrFarm, AttrShed, AttrAge, AttrBreed, AttrClient, AttrMetaqualix}
