package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeGradebook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "10A"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("10B"); err != nil {
		t.Fatal(err)
	}
	rows := map[string][][]interface{}{
		"10A": {
			{"STT", "Mã định danh", "Họ và tên", "TX1", "CKTH"},
			{1, "001", "An", 8, 9.5},
			{2, "777", "Bình", 6, 7},
		},
		"10B": {
			{"STT", "Mã định danh", "Họ và tên", "TX1"},
			{1, "777", "Bình", 10},
		},
	}
	for sheet, data := range rows {
		for i, row := range data {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(dir, "so-diem.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertAndLookup(t *testing.T) {
	dir := t.TempDir()
	input := writeGradebook(t, dir)
	jsonPath := filepath.Join(dir, "out", "grades.json")
	sqlitePath := filepath.Join(dir, "out", "grades.sqlite")

	out, err := run(t, "convert", input, "-o", jsonPath, "--sqlite", sqlitePath, "--log-level", "off")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, "with 2 records") {
		t.Errorf("unexpected summary: %q", out)
	}
	if !strings.Contains(out, "Duplicate 'Mã định danh' found (1). Sample: 777") {
		t.Errorf("expected duplicate warning, got %q", out)
	}
	if _, err := os.Stat(sqlitePath); err != nil {
		t.Errorf("sqlite export missing: %v", err)
	}

	out, err = run(t, "lookup", "777", "-i", jsonPath, "--log-level", "off")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	for _, want := range []string{"Bình", "10B", "Thường xuyên 1", "10"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in lookup output:\n%s", want, out)
		}
	}

	out, err = run(t, "lookup", "001", "-i", jsonPath, "--json", "--log-level", "off")
	if err != nil {
		t.Fatalf("lookup --json failed: %v", err)
	}
	if !strings.Contains(out, `"CKTH": 9.5`) || !strings.Contains(out, `"Tên lớp": "10A"`) {
		t.Errorf("unexpected JSON record:\n%s", out)
	}
}

func TestLookupUnknownIdentifier(t *testing.T) {
	dir := t.TempDir()
	input := writeGradebook(t, dir)
	jsonPath := filepath.Join(dir, "grades.json")

	if _, err := run(t, "convert", input, "-o", jsonPath, "--log-level", "off"); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if _, err := run(t, "lookup", "999", "-i", jsonPath, "--log-level", "off"); err == nil {
		t.Error("expected error for unknown identifier")
	}
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "convert", filepath.Join(dir, "missing.xlsx"), "-o", filepath.Join(dir, "g.json"), "--log-level", "off")
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Errorf("expected file not found error, got %v", err)
	}
}

func TestConvertWithConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeGradebook(t, dir)
	jsonPath := filepath.Join(dir, "custom.json")
	cfgPath := filepath.Join(dir, "gradebook.yaml")
	body := "input: " + input + "\noutput: " + jsonPath + "\npretty: false\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "convert", "--config", cfgPath, "--log-level", "off"); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("\n")) {
		t.Errorf("expected compact JSON, got %s", data)
	}
}
