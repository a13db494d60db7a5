package doi

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain doi",
			input: "10.1000/182",
			want:  "10.1000/182",
		},
		{
			name:  "uppercase",
			input: "10.1234/ABC.DEF",
			want:  "10.1234/abc.def",
		},
		{
			name:  "https doi.org prefix",
			input: "https://doi.org/10.1000/182",
			want:  "10.1000/182",
		},
		{
			name:  "uppercase protocol and host",
			input: "HTTPS://DOI.ORG/10.1000/182",
			want:  "10.1000/182",
		},
		{
			name:  "http prefix",
			input: "http://doi.org/10.1000/182",
			want:  "10.1000/182",
		},
		{
			name:  "dx.doi.org prefix",
			input: "https://dx.doi.org/10.1000/182",
			want:  "10.1000/182",
		},
		{
			name:  "doi scheme",
			input: "doi:10.1000/182",
			want:  "10.1000/182",
		},
		{
			name:  "surrounding whitespace",
			input: "  10.1000/182  ",
			want:  "10.1000/182",
		},
		{
			name:  "api punctuation preserved",
			input: "10.1000/182.",
			want:  "10.1000/182.",
		},
		{
			name:  "empty is absent",
			input: "",
			want:  "",
		},
		{
			name:  "zero is absent",
			input: "0",
			want:  "",
		},
		{
			name:  "unavailable placeholder is absent",
			input: "unavailable",
			want:  "",
		},
		{
			name:  "uppercase placeholder is absent",
			input: "UNAVAILABLE",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Idempotence
			if again := Normalize(got); again != got {
				t.Errorf("Normalize not idempotent: %q -> %q -> %q", tt.input, got, again)
			}
		})
	}
}

func TestNormalizeFromText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trailing period stripped",
			input: "HTTPS://DOI.ORG/10.1000/182.",
			want:  "10.1000/182",
		},
		{
			name:  "trailing bracket stripped",
			input: "10.1000/182]",
			want:  "10.1000/182",
		},
		{
			name:  "trailing semicolon and paren",
			input: "10.1000/182);",
			want:  "10.1000/182",
		},
		{
			name:  "interior punctuation preserved",
			input: "10.1234/abc.def-1",
			want:  "10.1234/abc.def-1",
		},
		{
			name:  "placeholder after strip",
			input: "0.",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeFromText(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeFromText(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeFromText(got); again != got {
				t.Errorf("NormalizeFromText not idempotent: %q -> %q -> %q", tt.input, got, again)
			}
		})
	}
}

func TestNormalizePMID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12345678", "12345678"},
		{"PMID:12345678", "12345678"},
		{"  12345678 ", "12345678"},
		{"", ""},
		{"0", ""},
		{"12a45", ""},
		{"10.1000/182", ""},
	}

	for _, tt := range tests {
		if got := NormalizePMID(tt.input); got != tt.want {
			t.Errorf("NormalizePMID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"10.1000/182", true},
		{"10.1234/abc.def", true},
		{"10.1000/", false},
		{"11.1000/182", false},
		{"10.1", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValid(tt.input); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFromURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://doi.org/10.1000/182", "10.1000/182"},
		{"https://journals.example.org/article/10.1234/j.test.2020.01.002", "10.1234/j.test.2020.01.002"},
		{"https://example.org/article/42", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FromURL(tt.input); got != tt.want {
			t.Errorf("FromURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
