package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

func TestLookupField_Aliases(t *testing.T) {
	cases := map[string]Field{
		"Fecha":             FieldDate,
		"  DATE ":           FieldDate,
		"Granja":            FieldFarm,
		"Galpón":            FieldShed,
		"Espesor (mm)":      Field(models.MetricShellThickness),
		"Unidades Haugh":    Field(models.MetricHaughUnits),
		"No. Metaqualix":    FieldMetaqualix,
		"Color Yema":        Field(models.MetricYolkColor),
		"breakingStrength":  Field(models.MetricBreakingStrength),
		"Resistencia (kgf)": Field(models.MetricBreakingStrength),
	}
	for header, want := range cases {
		got, ok := LookupField(header)
		require.True(t, ok, header)
		assert.Equal(t, want, got, header)
	}

	_, ok := LookupField("Observaciones")
	assert.False(t, ok)
}

func TestResolveColumns(t *testing.T) {
	idx, err := ResolveColumns([]string{"Notas", "Fecha", "Peso", "Peso Huevo"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx[FieldDate])
	assert.Equal(t, 2, idx[Field(models.MetricWeight)])

	_, err = ResolveColumns([]string{"Granja", "Peso"})
	assert.ErrorIs(t, err, ErrMissingDateColumn)
}
