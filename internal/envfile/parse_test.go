package envfile

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("single assignment with trailing newline", func(t *testing.T) {
		rows := Parse("FOO=bar\n")

		if len(rows) != 2 {
			t.Fatalf("len(rows) = %d, want 2", len(rows))
		}
		want := Row{
			LineIndex:    0,
			Kind:         KindKeyValue,
			Key:          "FOO",
			Separator:    "=",
			Value:        "bar",
			DisplayValue: "bar",
			OriginalLine: "FOO=bar",
		}
		if rows[0] != want {
			t.Errorf("rows[0] = %+v, want %+v", rows[0], want)
		}
		if rows[1] != (Row{LineIndex: 1, Kind: KindBlank}) {
			t.Errorf("rows[1] = %+v, want blank row at index 1", rows[1])
		}
	})

	t.Run("comment and masked value", func(t *testing.T) {
		rows := Parse("# note\nA=123456\n")

		if rows[0].Kind != KindComment || rows[0].Key != "# note" {
			t.Errorf("rows[0] = %+v, want comment with key %q", rows[0], "# note")
		}
		if rows[1].Value != "123456" {
			t.Errorf("rows[1].Value = %q, want %q", rows[1].Value, "123456")
		}
		if rows[1].DisplayValue != MaskPlaceholder {
			t.Errorf("rows[1].DisplayValue = %q, want %q", rows[1].DisplayValue, MaskPlaceholder)
		}
	})

	t.Run("whitespace is captured verbatim", func(t *testing.T) {
		row := Parse("  SPACED = hi  \n")[0]

		if row.Prefix != "  " {
			t.Errorf("Prefix = %q, want %q", row.Prefix, "  ")
		}
		if row.Key != "SPACED" {
			t.Errorf("Key = %q, want %q", row.Key, "SPACED")
		}
		if row.Separator != " = " {
			t.Errorf("Separator = %q, want %q", row.Separator, " = ")
		}
		if row.Value != "hi  " {
			t.Errorf("Value = %q, want %q", row.Value, "hi  ")
		}
		if got := Reconstruct(row); got != "  SPACED = hi  " {
			t.Errorf("Reconstruct() = %q, want original line", got)
		}
	})

	t.Run("invalid line falls back to comment", func(t *testing.T) {
		row := Parse("not a valid line!!\n")[0]

		if row.Kind != KindComment {
			t.Errorf("Kind = %v, want %v", row.Kind, KindComment)
		}
		if row.Key != "not a valid line!!" {
			t.Errorf("Key = %q, want full line", row.Key)
		}
	})

	t.Run("line count follows newline splitting", func(t *testing.T) {
		tests := []struct {
			content string
			want    int
		}{
			{"", 1},
			{"A", 1},
			{"A\n", 2},
			{"A\nB\n", 3},
			{"\n\n", 3},
		}
		for _, tt := range tests {
			if got := len(Parse(tt.content)); got != tt.want {
				t.Errorf("len(Parse(%q)) = %d, want %d", tt.content, got, tt.want)
			}
		}
	})

	t.Run("line indexes are strictly increasing", func(t *testing.T) {
		rows := Parse("A=1\n\n# c\nB=2\nbad line")
		for i, row := range rows {
			if row.LineIndex != i {
				t.Errorf("rows[%d].LineIndex = %d, want %d", i, row.LineIndex, i)
			}
		}
	})
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		kind      Kind
		prefix    string
		key       string
		separator string
		value     string
	}{
		{"empty", "", KindBlank, "", "", "", ""},
		{"spaces and tabs", "  \t ", KindBlank, "", "", "", ""},
		{"comment", "# hello", KindComment, "", "# hello", "", ""},
		{"indented comment keeps indentation", "   # hello", KindComment, "", "   # hello", "", ""},
		{"commented assignment stays a comment", "#KEY=value", KindComment, "", "#KEY=value", "", ""},
		{"simple", "KEY=value", KindKeyValue, "", "KEY", "=", "value"},
		{"empty value", "KEY=", KindKeyValue, "", "KEY", "=", ""},
		{"underscore identifier", "_PRIVATE_1=x", KindKeyValue, "", "_PRIVATE_1", "=", "x"},
		{"lowercase identifier", "key=x", KindKeyValue, "", "key", "=", "x"},
		{"tabs around separator", "KEY\t=\tvalue", KindKeyValue, "", "KEY", "\t=\t", "value"},
		{"value keeps equals signs", "KEY=a=b", KindKeyValue, "", "KEY", "=", "a=b"},
		{"value keeps quotes", `KEY="quoted value"`, KindKeyValue, "", "KEY", "=", `"quoted value"`},
		{"value keeps inline comment", "KEY=v # note", KindKeyValue, "", "KEY", "=", "v # note"},
		{"leading digit", "1KEY=x", KindComment, "", "1KEY=x", "", ""},
		{"missing identifier", "=value", KindComment, "", "=value", "", ""},
		{"export prefix", "export KEY=value", KindComment, "", "export KEY=value", "", ""},
		{"dash in key", "MY-KEY=value", KindComment, "", "MY-KEY=value", "", ""},
		{"no separator", "KEY value", KindComment, "", "KEY value", "", ""},
		{"byte order mark is leading whitespace", "\ufeffKEY=v", KindKeyValue, "\ufeff", "KEY", "=", "v"},
		{"carriage return in value", "KEY=value\r", KindComment, "", "KEY=value\r", "", ""},
		{"carriage return after separator", "KEY=\r", KindKeyValue, "", "KEY", "=\r", ""},
		{"carriage return on blank line", "\r", KindBlank, "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := ParseLine(tt.line, 7)

			if row.LineIndex != 7 {
				t.Errorf("LineIndex = %d, want 7", row.LineIndex)
			}
			if row.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", row.Kind, tt.kind)
			}
			if row.Prefix != tt.prefix {
				t.Errorf("Prefix = %q, want %q", row.Prefix, tt.prefix)
			}
			if row.Key != tt.key {
				t.Errorf("Key = %q, want %q", row.Key, tt.key)
			}
			if row.Separator != tt.separator {
				t.Errorf("Separator = %q, want %q", row.Separator, tt.separator)
			}
			if row.Value != tt.value {
				t.Errorf("Value = %q, want %q", row.Value, tt.value)
			}
			if row.OriginalLine != tt.line {
				t.Errorf("OriginalLine = %q, want %q", row.OriginalLine, tt.line)
			}
			if got := Reconstruct(row); got != tt.line {
				t.Errorf("Reconstruct() = %q, want %q", got, tt.line)
			}
		})
	}
}

var roundTripInputs = []string{
	"",
	"\n",
	"FOO=bar\n",
	"FOO=bar",
	"# header\n\nA=1\nB = 2\n  C=  three  \n",
	"weird line\n\tKEY\t=\tv\t\n#x\n",
	"A=1\r\nB=2\r\n",
	"A=1\nA=2\nA=3",
	"\ufeffFIRST=1\n",
	"KEY=héllo wörld\n日本=x\n",
	strings.Repeat("K=v\n", 50),
}

func TestJoinRoundTrip(t *testing.T) {
	for _, in := range roundTripInputs {
		if got := Join(Parse(in)); got != in {
			t.Errorf("Join(Parse(%q)) = %q", in, got)
		}
	}
}

func FuzzParseRoundTrip(f *testing.F) {
	for _, in := range roundTripInputs {
		f.Add(in)
	}

	f.Fuzz(func(t *testing.T, content string) {
		rows := Parse(content)

		if want := strings.Count(content, "\n") + 1; len(rows) != want {
			t.Fatalf("len(rows) = %d, want %d", len(rows), want)
		}
		for i, row := range rows {
			if row.LineIndex != i {
				t.Fatalf("rows[%d].LineIndex = %d", i, row.LineIndex)
			}
			switch row.Kind {
			case KindBlank, KindComment, KindKeyValue:
			default:
				t.Fatalf("rows[%d] has unknown kind %v", i, row.Kind)
			}
		}
		if got := Join(rows); got != content {
			t.Fatalf("Join(Parse(%q)) = %q", content, got)
		}
		if again := Parse(content); len(again) != len(rows) {
			t.Fatalf("Parse is not deterministic for %q", content)
		}
	})
}
