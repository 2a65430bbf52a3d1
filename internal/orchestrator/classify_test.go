package orchestrator

import "testing"

func TestClassifyPage(t *testing.T) {
	cases := []struct {
		name string
		text string
		want PageClass
	}{
		{"plain text", "Hello, world", ClassText},
		{"single rune", "7", ClassText},
		{"symbol content", "•", ClassText},
		{"leading whitespace", "\n\n\t  Invoice", ClassText},
		{"empty", "", ClassImage},
		{"whitespace only", " \n\t\r  ", ClassImage},
	}
	for _, tc := range cases {
		if got := classifyPage(tc.text); got != tc.want {
			t.Fatalf("%s: classifyPage(%q) = %v, want %v", tc.name, tc.text, got, tc.want)
		}
	}
}

func TestPageClassString(t *testing.T) {
	if ClassText.String() != "text" {
		t.Fatalf("ClassText.String() = %q", ClassText.String())
	}
	if ClassImage.String() != "image" {
		t.Fatalf("ClassImage.String() = %q", ClassImage.String())
	}
}

func TestStripWhitespace(t *testing.T) {
	if got := stripWhitespace(" a \n b\tc "); got != "abc" {
		t.Fatalf("stripWhitespace = %q, want abc", got)
	}
}
