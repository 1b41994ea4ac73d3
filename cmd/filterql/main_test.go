package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/jvitoroc/filterql/catalog"
	"github.com/jvitoroc/filterql/query"
)

// testConfig writes a config that keeps the catalog in a temporary directory.
func testConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := "catalog:\n  dir: " + filepath.Join(dir, "catalog") + "\nlog_level: error\n"
	path := filepath.Join(dir, "filterql.yaml")
	if err := os.WriteFile(path, []byte(content), 0o666); err != nil {
		t.Fatal(err)
	}

	return path
}

func run(t *testing.T, config, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", config}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	if errOut.Len() > 0 {
		t.Logf("stderr:\n%s", errOut.String())
	}

	return out.String(), err
}

func TestTokenize(t *testing.T) {
	config := testConfig(t)

	tests := []struct {
		name    string
		stdin   string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "args",
			args: []string{"tokenize", `a = "x"`},
			want: "1:1-1:2\tname\ta\n1:3-1:4\tcomparator\t=\n1:5-1:8\tvalue\t\"x\"\n",
		},
		{
			name:  "stdin",
			stdin: "a = 1\n",
			args:  []string{"tokenize"},
			want:  "1:1-1:2\tname\ta\n1:3-1:4\tcomparator\t=\n1:5-1:6\tvalue\t1\n",
		},
		{
			name:    "bare with error",
			args:    []string{"tokenize", "--bare", "a # 1"},
			want:    "1:1-1:2\tname\n1:3-1:4\terror\n1:5-1:6\tvalue\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, config, tt.stdin, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse(t *testing.T) {
	config := testConfig(t)

	tests := []struct {
		args []string
		want string
	}{
		{
			args: []string{"parse", "a = 1 & b = 2"},
			want: "and\n  a = 1\n  b = 2\n",
		},
		{
			args: []string{"parse", "--format", "text", `a="x"&b>2`},
			want: "a = \"x\" & b > 2\n",
		},
		{
			args: []string{"parse", "--format", "json", "a = 1"},
			want: "{\n  \"operator\": \"and\",\n  \"children\": [\n    {\n      \"name\": \"a\",\n      \"comparator\": \"=\",\n      \"value\": 1\n    }\n  ]\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := run(t, config, "", tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	config := testConfig(t)

	if _, err := run(t, config, "", "parse", "(a = 1"); !errors.Is(err, query.ErrUnclosedGroup) {
		t.Errorf("err = %v, want %v", err, query.ErrUnclosedGroup)
	}

	_, err := run(t, config, "", "parse", "a = #")
	var diags query.Diagnostics
	if !errors.As(err, &diags) || len(diags) != 1 {
		t.Errorf("err = %v, want one lexical diagnostic", err)
	}

	if _, err := run(t, config, "", "parse", "--format", "xml", "a = 1"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestCheck(t *testing.T) {
	config := testConfig(t)

	path := filepath.Join(t.TempDir(), "filters.fql")
	content := "a = 1\n\nb = #\n(a = 1\nc = \"ok\"\n"
	if err := os.WriteFile(path, []byte(content), 0o666); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, config, "", "check", path)
	if err == nil || err.Error() != "2 invalid filters" {
		t.Errorf("err = %v, want 2 invalid filters", err)
	}

	want := path + ":3:5: unexpected character '#'\n" +
		path + ":4:1: unclosed parentheses\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog(t *testing.T) {
	config := testConfig(t)

	id, err := run(t, config, "", "catalog", "add", "adults", "age >= 18")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		t.Errorf("add printed %q, want a UUID", id)
	}

	if _, err := run(t, config, "", "catalog", "add", "broken", "age >"); err == nil {
		t.Error("invalid filter was added")
	}

	got, err := run(t, config, "", "catalog", "list")
	if err != nil {
		t.Fatal(err)
	}
	if want := "adults  age >= 18\n"; got != want {
		t.Errorf("list = %q, want %q", got, want)
	}

	got, err = run(t, config, "", "catalog", "show", "--format", "text", "adults")
	if err != nil {
		t.Fatal(err)
	}
	if want := "age >= 18\n"; got != want {
		t.Errorf("show = %q, want %q", got, want)
	}

	if _, err := run(t, config, "", "catalog", "rm", "adults"); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, config, "", "catalog", "show", "adults"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("show after rm: err = %v, want %v", err, catalog.ErrNotFound)
	}
}
