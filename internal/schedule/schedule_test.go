package schedule_test

import (
	"errors"
	"strings"
	"testing"

	"svitlobot/internal/schedule"
)

const sampleText = "Графік погодинних відключень на 09.12.2025\n" +
	"Інформація станом на 07:36 09.12.2025\n" +
	"Група 1.1. Відключення: 08:00-12:00\n" +
	"Група 3.1. Відключення: 10:00-14:00\n" +
	"Група 3.10. Відключення: 16:00-20:00"

func TestHTMLToText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraphs become lines",
			in:   "<div><p>Графік погодинних відключень на 09.12.2025</p><p>Група 3.1. 10:00-14:00</p></div>",
			want: "Графік погодинних відключень на 09.12.2025\nГрупа 3.1. 10:00-14:00",
		},
		{
			name: "br become lines",
			in:   "<p>перший рядок<br>другий рядок<br/>третій рядок</p>",
			want: "перший рядок\nдругий рядок\nтретій рядок",
		},
		{
			name: "entities unescaped and blanks dropped",
			in:   "<p>Група 1.1 &mdash; 08:00</p><p>   </p><p>&nbsp;</p><p>Група 2.1 — 12:00</p>",
			want: "Група 1.1 — 08:00\nГрупа 2.1 — 12:00",
		},
		{
			name: "nested markup stripped",
			in:   "<div><p><strong>Графік</strong> на <em>сьогодні</em></p></div>",
			want: "Графік на сьогодні",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := schedule.HTMLToText(tc.in)
			if err != nil {
				t.Fatalf("HTMLToText() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("HTMLToText() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	info, err := schedule.Parse(sampleText, "3.1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if info.Date != "09.12.2025" {
		t.Errorf("Date = %q, want 09.12.2025", info.Date)
	}
	if info.AsOf != "07:36 09.12.2025" {
		t.Errorf("AsOf = %q, want 07:36 09.12.2025", info.AsOf)
	}
	if info.GroupLine != "Група 3.1. Відключення: 10:00-14:00" {
		t.Errorf("GroupLine = %q", info.GroupLine)
	}
}

func TestParseGroupBoundary(t *testing.T) {
	t.Parallel()

	// Group 3.1 must not match the 3.10 line.
	text := "Графік погодинних відключень на 09.12.2025\nГрупа 3.10. Відключення: 16:00-20:00"
	if _, err := schedule.Parse(text, "3.1"); !errors.Is(err, schedule.ErrGroupNotFound) {
		t.Errorf("Parse() error = %v, want ErrGroupNotFound", err)
	}

	info, err := schedule.Parse(sampleText, "3.10")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if info.GroupLine != "Група 3.10. Відключення: 16:00-20:00" {
		t.Errorf("GroupLine = %q", info.GroupLine)
	}
}

func TestParseGroupNotFound(t *testing.T) {
	t.Parallel()

	_, err := schedule.Parse(sampleText, "9.9")
	if !errors.Is(err, schedule.ErrGroupNotFound) {
		t.Errorf("Parse() error = %v, want ErrGroupNotFound", err)
	}
}

func TestParseMissingHeaders(t *testing.T) {
	t.Parallel()

	info, err := schedule.Parse("Група 3.1. Відключення: 10:00-14:00", "3.1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if info.Date != "?" || info.AsOf != "?" {
		t.Errorf("missing headers should default to ?, got %+v", info)
	}
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	msg, err := schedule.BuildMessage(sampleText, "3.1")
	if err != nil {
		t.Fatalf("BuildMessage() error = %v", err)
	}

	want := "⚡ Графік погодинних відключень на 09.12.2025\n" +
		"Інформація станом на 07:36 09.12.2025\n\n" +
		"Група 3.1. Відключення: 10:00-14:00"
	if msg != want {
		t.Errorf("BuildMessage() = %q, want %q", msg, want)
	}
	if strings.Count(msg, "\n\n") != 1 {
		t.Errorf("message should have one blank line separator: %q", msg)
	}
}

func TestBuildMessageGroupNotFound(t *testing.T) {
	t.Parallel()

	if _, err := schedule.BuildMessage(sampleText, "7.7"); !errors.Is(err, schedule.ErrGroupNotFound) {
		t.Errorf("BuildMessage() error = %v, want ErrGroupNotFound", err)
	}
}
