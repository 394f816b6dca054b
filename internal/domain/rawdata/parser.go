package rawdata

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"Demonstra/internal/pkg"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("formato de arquivo não suportado: %q", filepath.Ext(name))
}

// Row é uma linha do arquivo de importação já convertida.
type Row struct {
	Line  int
	Code  string
	Month int
	Year  int
	Value decimal.Decimal
}

// LineError descreve uma linha rejeitada.
type LineError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e LineError) String() string {
	return fmt.Sprintf("linha %d: %s", e.Line, e.Message)
}

var headerAliases = map[string]string{
	"codigo":    "code",
	"código":    "code",
	"code":      "code",
	"categoria": "code",
	"indicador": "code",
	"mes":       "month",
	"mês":       "month",
	"month":     "month",
	"ano":       "year",
	"year":      "year",
	"valor":     "value",
	"value":     "value",
}

type record struct {
	line   int
	fields []string
}

// Parse lê o arquivo inteiro; linhas inválidas vão para a lista de erros sem abortar a leitura.
func Parse(r io.Reader, format Format) ([]Row, []LineError, error) {
	var records []record
	var err error

	switch format {
	case FormatCSV:
		records, err = readCSV(r)
	case FormatXLSX:
		records, err = readXLSX(r)
	default:
		return nil, nil, fmt.Errorf("formato de arquivo não suportado: %q", format)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("arquivo vazio")
	}

	columns, err := mapHeader(records[0].fields)
	if err != nil {
		return nil, nil, err
	}

	var rows []Row
	var problems []LineError
	for _, rec := range records[1:] {
		if blank(rec.fields) {
			continue
		}
		row, err := parseRecord(rec.fields, columns)
		if err != nil {
			problems = append(problems, LineError{Line: rec.line, Message: err.Error()})
			continue
		}
		row.Line = rec.line
		rows = append(rows, row)
	}
	return rows, problems, nil
}

func readCSV(r io.Reader) ([]record, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(4096)
	head = bytes.TrimPrefix(head, []byte("\ufeff"))

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if firstLine, _, _ := bytes.Cut(head, []byte("\n")); bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		reader.Comma = ';'
	}

	var records []record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ler CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
	if len(records) > 0 && len(records[0].fields) > 0 {
		records[0].fields[0] = strings.TrimPrefix(records[0].fields[0], "\ufeff")
	}
	return records, nil
}

func readXLSX(r io.Reader) ([]record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilha: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("planilha sem abas")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("ler aba %q: %w", sheets[0], err)
	}

	records := make([]record, 0, len(rows))
	for i, fields := range rows {
		records = append(records, record{line: i + 1, fields: fields})
	}
	return records, nil
}

func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, 4)
	for i, h := range header {
		if key, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := columns[key]; !dup {
				columns[key] = i
			}
		}
	}
	for _, required := range []string{"code", "month", "year", "value"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("cabeçalho sem a coluna %q (esperado: codigo, mes, ano, valor)", required)
		}
	}
	return columns, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func cell(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseRecord(record []string, columns map[string]int) (Row, error) {
	code := cell(record, columns["code"])
	if code == "" {
		return Row{}, fmt.Errorf("código vazio")
	}

	month, err := pkg.ParseMonth(cell(record, columns["month"]))
	if err != nil {
		return Row{}, err
	}

	year, err := strconv.Atoi(cell(record, columns["year"]))
	if err != nil || year < 1900 || year > 2999 {
		return Row{}, fmt.Errorf("ano inválido: %q", cell(record, columns["year"]))
	}

	value, err := ParseValue(cell(record, columns["value"]))
	if err != nil {
		return Row{}, err
	}

	return Row{Code: code, Month: month, Year: year, Value: value}, nil
}

// ParseValue aceita "1234.56", "1.234,56", "1,234.56", "-10,5" e "-R$ 1.000,00".
// Com os dois separadores, o mais à direita é o decimal. Um separador único seguido de
// exatamente três dígitos ("1.234") é ambíguo e rejeitado.
func ParseValue(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")

	negative := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		negative, s = true, rest
	} else {
		s = strings.TrimPrefix(s, "+")
	}
	s = strings.TrimPrefix(s, "R$")
	if !negative {
		if rest, ok := strings.CutPrefix(s, "-"); ok {
			negative, s = true, rest
		}
	}
	if s == "" {
		return decimal.Zero, fmt.Errorf("valor vazio")
	}

	number, err := normalizeNumber(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor inválido %q: %w", raw, err)
	}
	v, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor inválido: %q", raw)
	}
	if negative {
		v = v.Neg()
	}
	return v.Round(2), nil
}

// normalizeNumber converte dígitos com separadores de milhar e decimal para "1234.56".
func normalizeNumber(s string) (string, error) {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return "", fmt.Errorf("caractere inesperado %q", r)
		}
	}

	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case lastDot < 0 && lastComma < 0:
		return s, nil

	case lastDot >= 0 && lastComma >= 0:
		decimalSep, thousandsSep := ".", ","
		if lastComma > lastDot {
			decimalSep, thousandsSep = ",", "."
		}
		intPart, frac, _ := strings.Cut(s, decimalSep)
		if strings.Contains(frac, decimalSep) || strings.Contains(frac, thousandsSep) {
			return "", fmt.Errorf("separador decimal repetido")
		}
		if !validGroups(intPart, thousandsSep) {
			return "", fmt.Errorf("separador de milhar fora de posição")
		}
		if frac == "" {
			return "", fmt.Errorf("parte decimal vazia")
		}
		return strings.ReplaceAll(intPart, thousandsSep, "") + "." + frac, nil
	}

	sep := "."
	if lastComma >= 0 {
		sep = ","
	}
	if strings.Count(s, sep) > 1 {
		if !validGroups(s, sep) {
			return "", fmt.Errorf("separador de milhar fora de posição")
		}
		return strings.ReplaceAll(s, sep, ""), nil
	}

	intPart, frac, _ := strings.Cut(s, sep)
	switch len(frac) {
	case 0:
		return "", fmt.Errorf("parte decimal vazia")
	case 3:
		return "", fmt.Errorf("separador ambíguo; use 1.234,00 ou 1234.00")
	}
	if intPart == "" {
		intPart = "0"
	}
	return intPart + "." + frac, nil
}

// validGroups confere grupos de milhar: o primeiro com 1 a 3 dígitos, os demais com 3.
func validGroups(s, sep string) bool {
	groups := strings.Split(s, sep)
	if len(groups[0]) < 1 || len(groups[0]) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}
