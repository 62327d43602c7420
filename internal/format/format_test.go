package format_test

import (
	"strings"
	"testing"

	"seistats/internal/format"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Group", "Rate")
	tb.Row("const_alg=steiner", "79.5%")
	out := tb.String()

	if !strings.Contains(out, "Group") {
		t.Errorf("expected header in output:\n%s", out)
	}
	if !strings.Contains(out, "const_alg=steiner") {
		t.Errorf("expected row data in output:\n%s", out)
	}
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdown_BasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Group", "Mean")
	tb.Row("fprob=0.25", "0.4321")
	out := tb.String()

	if !strings.Contains(out, "| Group") {
		t.Errorf("expected markdown header:\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator:\n%s", out)
	}
}

func TestFooterAndAlign(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Group", "Hosts")
	tb.Row("a", 4)
	tb.Row("b", 6)
	tb.Footer("TOTAL", 10)
	tb.AlignRight(2)
	out := tb.String()

	if !strings.Contains(out, "TOTAL") || !strings.Contains(out, "10") {
		t.Errorf("expected footer totals in output:\n%s", out)
	}
}

func TestFloatAndPercent(t *testing.T) {
	if got := format.Float(0.43219); got != "0.4322" {
		t.Errorf("Float = %q", got)
	}
	if got := format.Percent(0.795); got != "79.5%" {
		t.Errorf("Percent = %q", got)
	}
}
