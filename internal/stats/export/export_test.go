package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/triup-dev/triup-admin/internal/findings"
)

var sampleRows = []findings.ExportRow{
	{ReportCode: "RPT-001", TitleTH: "Title One", TitleEN: "First", Status: "approved"},
	{ReportCode: "RPT-002", TitleTH: "Title Two", TitleEN: "Second", Status: "pending"},
	{ReportCode: "RPT-003", TitleTH: "Title Three", TitleEN: "Third", Status: "approved"},
}

func TestWriteExcelRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, sampleRows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, len(sampleRows)+1)

	assert.Equal(t, []string{"Report Code", "Title TH", "Title EN", "Status"}, got[0])
	for i, row := range sampleRows {
		assert.Equal(t, []string{row.ReportCode, row.TitleTH, row.TitleEN, row.Status}, got[i+1])
	}
}

func TestWriteExcelEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Report Code", "Title TH", "Title EN", "Status"}, got[0])
}

func TestWritePDFKeepsRowOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePDF(&buf, sampleRows, false))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
	assert.Contains(t, out, "Research Findings Report")

	first := strings.Index(out, "RPT-001")
	second := strings.Index(out, "RPT-002")
	third := strings.Index(out, "RPT-003")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestWritePDFEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
