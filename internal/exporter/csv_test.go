package exporter

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/aggregate"
	"retailcli/internal/config"
)

func testPaths(t *testing.T) config.Paths {
	t.Helper()
	return config.NewPaths(config.OutputConfig{
		Dir:          t.TempDir(),
		DatabaseFile: "retail_sales.db",
		WorkbookFile: "analysis.xlsx",
	})
}

func sampleTable() aggregate.ResultTable {
	return aggregate.ResultTable{
		Name:    "yoy_growth",
		Columns: []string{"order_year", "revenue", "orders", "revenue_growth_pct"},
		Rows: [][]any{
			{"2016", 1200.5, int64(10), nil},
			{"2017", 1500.0, int64(12), 24.96},
		},
	}
}

func TestCSVWriter_WriteResultTable(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	require.NoError(t, writer.WriteResultTable(sampleTable()))

	file, err := os.Open(paths.QueryCSVPath("yoy_growth"))
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"order_year", "revenue", "orders", "revenue_growth_pct"}, rows[0])
	assert.Equal(t, []string{"2016", "1200.5", "10", ""}, rows[1], "nil cell renders empty")
	assert.Equal(t, []string{"2017", "1500", "12", "24.96"}, rows[2])
}

func TestCSVWriter_OverwritesPreviousRun(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	big := sampleTable()
	require.NoError(t, writer.WriteResultTable(big))

	small := sampleTable()
	small.Rows = small.Rows[:1]
	require.NoError(t, writer.WriteResultTable(small))

	file, err := os.Open(paths.QueryCSVPath("yoy_growth"))
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2, "header plus one row after overwrite")
}

func TestCSVWriter_WriteAll(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	results := map[string]aggregate.ResultTable{
		"a": {Name: "a", Columns: []string{"x"}, Rows: [][]any{{"1"}}},
		"b": {Name: "b", Columns: []string{"y"}, Rows: [][]any{{"2"}}},
	}

	require.NoError(t, writer.WriteAll(results, []string{"a", "b"}))

	for _, name := range []string{"a", "b"} {
		_, err := os.Stat(paths.QueryCSVPath(name))
		assert.NoError(t, err, "expected %s.csv", name)
	}
}

func TestCSVWriter_WriteAll_MissingTable(t *testing.T) {
	writer := NewCSVWriter(testPaths(t))

	err := writer.WriteAll(map[string]aggregate.ResultTable{}, []string{"ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "West", "West"},
		{"int64", int64(42), "42"},
		{"float trims zeros", 1500.0, "1500"},
		{"float keeps decimals", 24.96, "24.96"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCell(tt.in))
		})
	}
}
