package pipeline

import "testing"

func TestSanitizeTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Senior Backend Engineer", "Senior_Backend_Engineer"},
		{"C++ Developer (Remote)", "C_Developer_Remote"},
		{"", "resume"},
		{"!!!", "resume"},
		{"data-scientist_v2", "data-scientist_v2"},
	}
	for _, c := range cases {
		if got := sanitizeTitle(c.title); got != c.want {
			t.Errorf("sanitizeTitle(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestResumeFileName(t *testing.T) {
	got := resumeFileName("Senior Backend Engineer", 2, "pdf")
	want := "Senior_Backend_Engineer_v2.pdf"
	if got != want {
		t.Errorf("resumeFileName() = %q, want %q", got, want)
	}
}
