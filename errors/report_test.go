package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/jacoelho/pullxml/pkg/xmlpull"
)

func TestReportFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		r    Report
	}{
		{
			name: "message only",
			r:    Report{Code: "xml-malformed", Message: "unterminated tag"},
			want: "[xml-malformed] unterminated tag",
		},
		{
			name: "with path",
			r:    Report{Code: "xml-malformed", Message: "unterminated tag", Path: "/root/child"},
			want: "[xml-malformed] unterminated tag at /root/child",
		},
		{
			name: "with offset",
			r:    Report{Code: "xml-empty-state", Message: "no open element", Path: "/", Offset: 4},
			want: "[xml-empty-state] no open element at / (offset 4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNilReport(t *testing.T) {
	var r *Report
	if got := r.Error(); got != "report <nil>" {
		t.Fatalf("Error() = %q, want report <nil>", got)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ErrorCode
	}{
		{name: "malformed", input: "<foo", want: ErrMalformed},
		{name: "empty stack", input: "</foo>", want: ErrEmptyState},
		{name: "out of range", input: "", want: ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := xmlpull.NewParser(tt.input).ReadNext()
			if got := CodeOf(err); got != tt.want {
				t.Fatalf("CodeOf(%v) = %q, want %q", err, got, tt.want)
			}
		})
	}

	pathErr := &fs.PathError{Op: "open", Path: "missing.xml", Err: fs.ErrNotExist}
	if got := CodeOf(fmt.Errorf("load: %w", pathErr)); got != ErrIO {
		t.Fatalf("CodeOf(path error) = %q, want %q", got, ErrIO)
	}
	if got := CodeOf(fmt.Errorf("something else")); got != "" {
		t.Fatalf("CodeOf(other) = %q, want empty", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Fatalf("CodeOf(nil) = %q, want empty", got)
	}
}

func TestFromError(t *testing.T) {
	p := xmlpull.NewParser("<root>text")
	_, err := p.ReadNext()
	report, ok := FromError(fmt.Errorf("walk: %w", err))
	if !ok {
		t.Fatalf("FromError ok = false, want true")
	}
	if report.Code != string(ErrMalformed) {
		t.Fatalf("Code = %q, want %q", report.Code, ErrMalformed)
	}
	if report.Path != "/root" {
		t.Fatalf("Path = %q, want /root", report.Path)
	}
	if report.Offset != len("<root>text") {
		t.Fatalf("Offset = %d, want %d", report.Offset, len("<root>text"))
	}

	if _, ok := FromError(fmt.Errorf("unrelated")); ok {
		t.Fatalf("FromError(unrelated) ok = true, want false")
	}
}

func TestAsReport(t *testing.T) {
	r := NewReport(ErrIO, "input too large", "")
	wrapped := fmt.Errorf("load: %w", &r)
	got, ok := AsReport(wrapped)
	if !ok {
		t.Fatalf("AsReport() ok = false, want true")
	}
	if got.Code != string(ErrIO) {
		t.Fatalf("Code = %q, want %q", got.Code, ErrIO)
	}
	if _, ok := AsReport(fmt.Errorf("plain")); ok {
		t.Fatalf("AsReport(plain) ok = true, want false")
	}
}
