package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Fecha;Granja;Caseta;Peso;Color Yema\n" +
	"2024-01-05;G1;C1;60;11\n" +
	"2024-01-20;G1;C2;62;12\n" +
	"2024-02-03;G2;C1;58;10\n"

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datos.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummary(t *testing.T) {
	out, err := run(t, "summary", writeSample(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Registros: 3")
	assert.Contains(t, out, "Peso Huevo (g)")
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "2024/01")
}

func TestSummary_JSONWithFilters(t *testing.T) {
	out, err := run(t, "summary", writeSample(t), "--json", "--farm", "G1", "--to", "2024-01-31")
	require.NoError(t, err)

	var got struct {
		RecordCount int `json:"recordCount"`
		Monthly     []struct {
			Month string `json:"date"`
		} `json:"monthly"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.RecordCount)
	require.Len(t, got.Monthly, 1)
	assert.Equal(t, "2024-01", got.Monthly[0].Month)
}

func TestSummary_BadDate(t *testing.T) {
	_, err := run(t, "summary", writeSample(t), "--from", "05/01/2024")
	assert.ErrorContains(t, err, "--from")
}

func TestHistogram(t *testing.T) {
	out, err := run(t, "histogram", writeSample(t), "weight", "--bins", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "58.00 - 60.00")
	assert.Contains(t, out, "60.00 - 62.00")

	_, err = run(t, "histogram", writeSample(t), "peso")
	assert.ErrorContains(t, err, "unknown metric")
}

func TestReport(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reporte.pdf")
	out, err := run(t, "report", writeSample(t), "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "(3 muestras)")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
