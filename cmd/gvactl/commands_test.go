package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/internal/gva"
)

const poultryCensus = `{"poultry_count":1000,"eggs_per_bird_per_year":280,"egg_price":6,"poultry_meat_price_per_kg":180}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GVA_COEFFICIENTS_FILE", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalculate_TableFromStdin(t *testing.T) {
	out, err := run(t, poultryCensus, "calculate")
	require.NoError(t, err)

	assert.Contains(t, out, "Eggs")
	assert.Contains(t, out, "Rs. 1,008,000.00")
	assert.Contains(t, out, "Rs. 526,680.00")
	assert.Contains(t, out, "Rs. 1,534,680.00")
}

func TestCalculate_JSONFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "census.json")
	require.NoError(t, os.WriteFile(path, []byte(poultryCensus), 0o600))

	out, err := run(t, "", "calculate", "--json", path)
	require.NoError(t, err)

	var report models.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1534680.0, report.Results.TotalVillageGVA)
	assert.Equal(t, "gvactl", report.Author.ID)
	assert.NotEmpty(t, report.ID)
}

func TestCalculate_CoefficientOverrides(t *testing.T) {
	coeffs := filepath.Join(t.TempDir(), "coefficients.yaml")
	require.NoError(t, os.WriteFile(coeffs, []byte("poultry_meat:\n  bird_weight_kg: 2\n"), 0o600))

	out, err := run(t, poultryCensus, "--coefficients", coeffs, "calculate", "--json")
	require.NoError(t, err)

	var report models.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1053360.0, report.Results.PoultryMeatBreakdown.GVA)
	assert.Equal(t, 2.0, report.SettingsUsed.PoultryMeat.BirdWeightKg)
}

func TestCalculate_Rejections(t *testing.T) {
	_, err := run(t, `{"milk_price_per_litre":45}`, "calculate")
	assert.ErrorIs(t, err, gva.ErrEmptyCensus)

	_, err = run(t, `{"cattle_count":10,"herd_size":4}`, "calculate")
	assert.ErrorContains(t, err, "decode census")
}

func TestCoefficients_PrintsYAML(t *testing.T) {
	out, err := run(t, "", "coefficients")
	require.NoError(t, err)

	var got models.Coefficients
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, gva.DefaultCoefficients(), got)
}

func TestPDF_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "village.pdf")

	out, err := run(t, poultryCensus, "pdf", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
