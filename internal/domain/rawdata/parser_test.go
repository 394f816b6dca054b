package rawdata

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1234.56", want: "1234.56"},
		{in: "1.234,56", want: "1234.56"},
		{in: "-10,5", want: "-10.5"},
		{in: "R$ 1.000,00", want: "1000"},
		{in: "0", want: "0"},
		{in: "1,234.56", want: "1234.56"},
		{in: "1.234.567,89", want: "1234567.89"},
		{in: "1,234,567", want: "1234567"},
		{in: "-R$ 10,00", want: "-10"},
		{in: "R$ -10,00", want: "-10"},
		{in: "+15.5", want: "15.5"},
		{in: "1234.56\u00a0", want: "1234.56"},
		{in: "1.234", wantErr: true},
		{in: "1,234", wantErr: true},
		{in: "12.34,5", wantErr: true},
		{in: "1.234,5.6", wantErr: true},
		{in: "10,", wantErr: true},
		{in: "--5", wantErr: true},
		{in: "", wantErr: true},
		{in: "-", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseValue(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestFormatFromFilename(t *testing.T) {
	t.Parallel()

	f, err := FormatFromFilename("Dados.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = FormatFromFilename("dados.xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = FormatFromFilename("dados.pdf")
	assert.Error(t, err)
}

func TestParseCSVWithSemicolonAndMonthNames(t *testing.T) {
	t.Parallel()

	input := "Código;Mês;Ano;Valor\nREC01;Março;2024;1.500,00\nDESP01;4;2024;-200\n\nHC;dez;2023;12\n"
	rows, problems, err := Parse(strings.NewReader(input), FormatCSV)

	require.NoError(t, err)
	assert.Empty(t, problems)
	require.Len(t, rows, 3)
	assert.Equal(t, "REC01", rows[0].Code)
	assert.Equal(t, 3, rows[0].Month)
	assert.True(t, rows[0].Value.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 12, rows[2].Month)
	assert.Equal(t, 5, rows[2].Line)
}

func TestParseCSVCollectsLineErrors(t *testing.T) {
	t.Parallel()

	input := "codigo,mes,ano,valor\nREC01,13,2024,10\n,1,2024,10\nREC01,1,20x4,10\nREC01,1,2024,10\n"
	rows, problems, err := Parse(strings.NewReader(input), FormatCSV)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, problems, 3)
	assert.Equal(t, 2, problems[0].Line)
	assert.Equal(t, 3, problems[1].Line)
	assert.Equal(t, 4, problems[2].Line)
}

func TestParseRejectsMissingColumn(t *testing.T) {
	t.Parallel()

	_, _, err := Parse(strings.NewReader("codigo,mes,valor\nA,1,2\n"), FormatCSV)
	assert.ErrorContains(t, err, "year")

	_, _, err = Parse(strings.NewReader(""), FormatCSV)
	assert.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"codigo", "mes", "ano", "valor"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"REC01", "jan", 2024, "99,90"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"DESP01", 2, 2024, 10}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	rows, problems, err := Parse(&buf, FormatXLSX)
	require.NoError(t, err)
	assert.Empty(t, problems)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Month)
	assert.True(t, rows[0].Value.Equal(decimal.RequireFromString("99.9")))
	assert.Equal(t, "DESP01", rows[1].Code)
}

func TestParseXLSXReadsFormattedNumbersAsStored(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"codigo", "mes", "ano", "valor"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"REC", 3, 2024, 1234.56}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"DESP", 3, 2024, -98765.4}))
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "D2", "D3", thousands))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	rows, problems, err := Parse(&buf, FormatXLSX)
	require.NoError(t, err)
	assert.Empty(t, problems)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Value.Equal(decimal.RequireFromString("1234.56")), "got %s", rows[0].Value)
	assert.True(t, rows[1].Value.Equal(decimal.RequireFromString("-98765.4")), "got %s", rows[1].Value)
}

func TestParseCSVRejectsAmbiguousValues(t *testing.T) {
	t.Parallel()

	input := "codigo;mes;ano;valor\nREC;3;2024;1,234.56\nREC;4;2024;1.234\nDESP;5;2024;-R$ 10,00\n"
	rows, problems, err := Parse(strings.NewReader(input), FormatCSV)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Value.Equal(decimal.RequireFromString("1234.56")))
	assert.True(t, rows[1].Value.Equal(decimal.NewFromInt(-10)))
	require.Len(t, problems, 1)
	assert.Equal(t, 3, problems[0].Line)
}
