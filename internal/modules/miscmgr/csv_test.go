// SPDX-License-Identifier: MPL-2.0

package miscmgr

import (
	"errors"
	"strings"
	"testing"
)

func TestSummarize_NumericAndTextColumns(t *testing.T) {
	in := strings.NewReader("name,amount\nalice,10\nbob,2.5\nalice,-3\n")

	summary, err := Summarize(in)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}

	if summary.Rows != 3 {
		t.Errorf("Rows = %d, want 3", summary.Rows)
	}
	if len(summary.Columns) != 2 {
		t.Fatalf("Columns = %d, want 2", len(summary.Columns))
	}

	name := summary.Columns[0]
	if name.Numeric {
		t.Error("name column should not be numeric")
	}
	if name.Distinct != 2 {
		t.Errorf("name.Distinct = %d, want 2", name.Distinct)
	}

	amount := summary.Columns[1]
	if !amount.Numeric {
		t.Fatal("amount column should be numeric")
	}
	if amount.Min != -3 || amount.Max != 10 || amount.Sum != 9.5 {
		t.Errorf("amount min/max/sum = %g/%g/%g, want -3/10/9.5", amount.Min, amount.Max, amount.Sum)
	}
}

func TestSummarize_EmptyValuesDoNotBreakNumeric(t *testing.T) {
	in := strings.NewReader("amount\n5\n\n7\n")

	summary, err := Summarize(in)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	col := summary.Columns[0]
	if !col.Numeric {
		t.Error("column with empty cells should stay numeric")
	}
	if col.Min != 5 || col.Max != 7 {
		t.Errorf("min/max = %g/%g, want 5/7", col.Min, col.Max)
	}
}

func TestSummarize_AllEmptyColumnIsNotNumeric(t *testing.T) {
	in := strings.NewReader("note\n\n\n")

	summary, err := Summarize(in)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if summary.Columns[0].Numeric {
		t.Error("a column with no parseable values should not be numeric")
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	_, err := Summarize(strings.NewReader(""))
	if !errors.Is(err, ErrEmptyCSV) {
		t.Errorf("Summarize() on empty input should return ErrEmptyCSV, got %v", err)
	}
}

func TestSummarize_HeaderOnly(t *testing.T) {
	summary, err := Summarize(strings.NewReader("a,b\n"))
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if summary.Rows != 0 {
		t.Errorf("Rows = %d, want 0", summary.Rows)
	}
	for _, col := range summary.Columns {
		if col.Numeric {
			t.Errorf("column %q should not be numeric with no rows", col.Name)
		}
	}
}

func TestSummarize_MalformedRow(t *testing.T) {
	in := strings.NewReader("a,b\n1,2\n\"unterminated\n")
	if _, err := Summarize(in); err == nil {
		t.Error("Summarize() should fail on malformed csv")
	}
}
