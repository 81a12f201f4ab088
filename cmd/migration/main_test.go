package main

import "testing"

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one", args: nil, want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "garbage", args: []string{"two"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSteps(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tc.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected steps: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if got, err := parseVersion("1771776034"); err != nil || got != 1771776034 {
		t.Fatalf("unexpected version: got=%d err=%v", got, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseTarget("42"); err != nil || got != 42 {
		t.Fatalf("unexpected target: got=%d err=%v", got, err)
	}
	if _, err := parseTarget("-2"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("MIGRATION_TEST_FLAG", "")
	if got, err := envBool("MIGRATION_TEST_FLAG", true); err != nil || !got {
		t.Fatalf("expected fallback true, got=%t err=%v", got, err)
	}
	t.Setenv("MIGRATION_TEST_FLAG", "false")
	if got, err := envBool("MIGRATION_TEST_FLAG", true); err != nil || got {
		t.Fatalf("expected false, got=%t err=%v", got, err)
	}
	t.Setenv("MIGRATION_TEST_FLAG", "nope")
	if _, err := envBool("MIGRATION_TEST_FLAG", true); err == nil {
		t.Fatalf("expected parse error")
	}
}
