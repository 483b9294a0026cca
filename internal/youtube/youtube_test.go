package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch URL with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL123", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=share", "dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"live", "https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractVideoID(tc.in)
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ExtractVideoID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractVideoIDSameVideoDifferentForms(t *testing.T) {
	forms := []string{
		"https://www.youtube.com/watch?v=abc123def45",
		"https://youtu.be/abc123def45",
		"https://www.youtube.com/shorts/abc123def45",
		"www.youtube.com/watch?v=abc123def45&feature=share",
	}
	for _, form := range forms {
		got, err := ExtractVideoID(form)
		if err != nil {
			t.Fatalf("ExtractVideoID(%q) returned error: %v", form, err)
		}
		if got != "abc123def45" {
			t.Fatalf("ExtractVideoID(%q) = %q, want abc123def45", form, got)
		}
	}
}

func TestExtractVideoIDInvalid(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch",
		"https://www.youtube.com/watch?v=tooshort",
		"https://www.youtube.com/playlist?list=PL123",
		"not a url at all",
	}
	for _, in := range cases {
		if _, err := ExtractVideoID(in); err == nil {
			t.Fatalf("ExtractVideoID(%q) expected error, got none", in)
		}
	}
}
