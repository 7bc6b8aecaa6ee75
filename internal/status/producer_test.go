package status

import "testing"

func TestSplitStatusSeparatesPrimaryFromExtraHalf(t *testing.T) {
	primary, extra := splitStatus("CPU 12%;mem 2.1G")
	if primary != "CPU 12%" {
		t.Fatalf("primary = %q, want %q", primary, "CPU 12%")
	}
	if extra != "mem 2.1G" {
		t.Fatalf("extra = %q, want %q", extra, "mem 2.1G")
	}
}

func TestSplitStatusWithoutSemicolonIsAllPrimary(t *testing.T) {
	primary, extra := splitStatus("just one field")
	if primary != "just one field" || extra != "" {
		t.Fatalf("got primary=%q extra=%q", primary, extra)
	}
}

func TestPidsByNameWithEmptyNameReturnsNil(t *testing.T) {
	if pids := pidsByName(""); pids != nil {
		t.Fatalf("pidsByName(\"\") = %v, want nil", pids)
	}
}
