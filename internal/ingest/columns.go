package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// Field is a canonical record field a source column can map to.
type Field string

const (
	FieldDate       Field = "date"
	FieldFarm       Field = Field(models.AttrFarm)
	FieldShed       Field = Field(models.AttrShed)
	FieldAge        Field = Field(models.AttrAge)
	FieldBreed      Field = Field(models.AttrBreed)
	FieldClient     Field = Field(models.AttrClient)
	FieldMetaqualix Field = Field(models.AttrMetaqualix)
)

// headerAliases lists the accepted header spellings of every field, compared
// after normalization.
var headerAliases = map[Field][]string{
	FieldDate:       {"fecha", "date", "dia", "fecha muestra"},
	FieldFarm:       {"granja", "farm", "nombre granja"},
	FieldShed:       {"caseta", "shed", "galpon", "nave"},
	FieldAge:        {"edad", "age", "edad semanas", "semanas"},
	FieldBreed:      {"estirpe", "breed", "linea", "raza"},
	FieldClient:     {"cliente", "client", "customer"},
	FieldMetaqualix: {"metaqualix", "no metaqualix", "metaqualix id", "metaqualixid", "no. metaqualix"},

	Field(models.MetricWeight):           {"peso", "peso huevo", "weight", "peso g"},
	Field(models.MetricBreakingStrength): {"resistencia", "breaking strength", "breakingstrength", "resistencia kgf"},
	Field(models.MetricShellThickness):   {"espesor", "shell thickness", "shellthickness", "espesor mm", "grosor"},
	Field(models.MetricYolkColor):        {"color", "color yema", "yolk color", "yolkcolor"},
	Field(models.MetricHaughUnits):       {"haugh", "unidades haugh", "unid haugh", "haugh units", "haughunits", "uh"},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]Field {
	idx := make(map[string]Field)
	for field, aliases := range headerAliases {
		idx[normalizeHeader(string(field))] = field
		for _, alias := range aliases {
			idx[normalizeHeader(alias)] = field
		}
	}
	return idx
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeHeader lowercases, strips accents and drops everything but letters
// and digits so "Espesor (mm)" and "espesor mm" compare equal.
func normalizeHeader(h string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(strings.TrimSpace(h)))
	if err != nil {
		folded = strings.ToLower(h)
	}
	var b strings.Builder
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LookupField resolves a header to its canonical field.
func LookupField(header string) (Field, bool) {
	field, ok := aliasIndex[normalizeHeader(header)]
	return field, ok
}

// ColumnIndex maps canonical fields to column positions.
type ColumnIndex map[Field]int

// ResolveColumns builds the column index for a header row. The first column
// matching a field wins. The date column is required.
func ResolveColumns(header []string) (ColumnIndex, error) {
	idx := make(ColumnIndex)
	for i, h := range header {
		field, ok := LookupField(h)
		if !ok {
			continue
		}
		if _, taken := idx[field]; !taken {
			idx[field] = i
		}
	}
	if _, ok := idx[FieldDate]; !ok {
		return nil, ErrMissingDateColumn
	}
	return idx, nil
}
