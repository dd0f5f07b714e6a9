package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter("Fecha;Granja;Peso"))
	assert.Equal(t, '\t', DetectDelimiter("Fecha\tGranja\tPeso"))
	assert.Equal(t, ',', DetectDelimiter("Fecha,Granja,Peso"))
	assert.Equal(t, ',', DetectDelimiter("Fecha"))
}

func TestParseDelimited_Semicolon(t *testing.T) {
	input := "\xef\xbb\xbfFecha;Granja;Caseta;Peso;Espesor\n" +
		"2024-01-20;G1;C1;62;0,36\n" +
		"2024-01-05;G1;C2;60;\n"

	result, err := ParseDelimited(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, "2024-01-05", first.DateKey)
	assert.Equal(t, "C2", first.Shed)
	_, ok := first.Value(models.MetricShellThickness)
	assert.False(t, ok)

	v, ok := result.Records[1].Value(models.MetricShellThickness)
	assert.True(t, ok)
	assert.Equal(t, 0.36, v)
}

func TestParseDelimited_Errors(t *testing.T) {
	_, err := ParseDelimited(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ParseDelimited(strings.NewReader("Granja,Peso\nG1,60\n"))
	assert.ErrorIs(t, err, ErrMissingDateColumn)
}

func TestParseUpload_Dispatch(t *testing.T) {
	result, err := ParseUpload("datos.CSV", strings.NewReader("Date,Weight\n2024-05-01,63\n"))
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)

	_, err = ParseUpload("datos.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}
