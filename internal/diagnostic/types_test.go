package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddInfo(CodeBlankHeader, "blank header cell tolerated", "C2", "category.group_b")
	d.AddWarning(CodeOptionalPruned, "optional node not found", "E1", "notes")

	var other Diagnostics
	other.AddError(CodeUnnamed, "column has no label", "F1", "")
	d.Merge(other)

	assert.True(t, d.HasErrors())
	assert.Len(t, d.All(), 3)
	assert.Equal(t, DiagnosticError, d.All()[0].Severity)

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "[F1]: [unnamed] column has no label", err.Error())

	assert.Equal(t, "[E1] notes: [optional_pruned] optional node not found", d.Warnings[0].String())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
