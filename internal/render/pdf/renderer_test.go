package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock-gva/internal/repository/repositorytest"
)

func TestRender_ProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	report := repositorytest.NewReport("3f2a9c1e-77aa-4b1c-9d1f-0c4e5b6a7d88", "vet-1", 0)

	require.NoError(t, NewRenderer().Render(&buf, report))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestRender_MissingLabels(t *testing.T) {
	report := repositorytest.NewReport("r-1", "vet-1", 0)
	report.Inputs.VillageName = ""
	report.Author.Institution = ""

	var buf bytes.Buffer
	assert.NoError(t, NewRenderer().Render(&buf, report))
}

func TestFilename(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "GVA_Report_3f2a9c1e.pdf", r.Filename(repositorytest.NewReport("3f2a9c1e-77aa", "v", 0)))
	assert.Equal(t, "GVA_Report_r-1.pdf", r.Filename(repositorytest.NewReport("r-1", "v", 0)))
}
