package subjects

import (
	"os"
	"path/filepath"
	"testing"

	"fixtrace/internal/errors"
)

func writeSubjectFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subjects.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write subject file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "one subject per line",
			content: "mm: fix oops\nnet: fix leak\n",
			want:    []string{"mm: fix oops", "net: fix leak"},
		},
		{
			name:    "blank lines skipped",
			content: "\nmm: fix oops\n\n\nnet: fix leak\n\n",
			want:    []string{"mm: fix oops", "net: fix leak"},
		},
		{
			name:    "whitespace-only lines skipped",
			content: "mm: fix oops\n   \t \nnet: fix leak",
			want:    []string{"mm: fix oops", "net: fix leak"},
		},
		{
			name:    "crlf endings stripped",
			content: "mm: fix oops\r\nnet: fix leak\r\n",
			want:    []string{"mm: fix oops", "net: fix leak"},
		},
		{
			name:    "interior whitespace preserved",
			content: "scsi: lpfc: Fix  double  space typo\n",
			want:    []string{"scsi: lpfc: Fix  double  space typo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeSubjectFile(t, tt.content))
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Load returned %d subjects, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("subject %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := Load(writeSubjectFile(t, ""))
	if err == nil {
		t.Fatal("Load should fail on an empty file")
	}
	if !errors.HasCode(err, errors.EmptyInput) {
		t.Errorf("error code = %v, want EMPTY_INPUT", err)
	}
}

func TestLoadBlankOnlyFile(t *testing.T) {
	_, err := Load(writeSubjectFile(t, "\n\n   \n\t\n"))
	if err == nil {
		t.Fatal("Load should fail on a blank-only file")
	}
	if !errors.HasCode(err, errors.EmptyInput) {
		t.Errorf("error code = %v, want EMPTY_INPUT", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("Load should fail on a missing file")
	}
	if !errors.HasCode(err, errors.InputUnreadable) {
		t.Errorf("error code = %v, want INPUT_UNREADABLE", err)
	}
}
