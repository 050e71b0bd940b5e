package playlist

import (
	"strings"
	"testing"
)

func TestEscape(t *testing.T) {

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Amazing Grace", "Amazing Grace"},
		{"all five", `&<>"'`, "&amp;&lt;&gt;&quot;&#39;"},
		{"script", "<script>alert('x')</script>", "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;"},
		{"already escaped", "&amp;", "&amp;amp;"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeNeverLeaksRawCharacters(t *testing.T) {

	inputs := []string{
		`<img src=x onerror="alert(1)">`,
		"Tom & Jerry's \"song\"",
		"&lt;b&gt;",
		"<<>>&&''\"\"",
	}

	for _, input := range inputs {
		// Escaping again, as on a re-render, stays safe
		for _, got := range []string{Escape(input), Escape(Escape(input))} {
			withoutEntities := got
			for _, entity := range []string{"&amp;", "&lt;", "&gt;", "&quot;", "&#39;"} {
				withoutEntities = strings.ReplaceAll(withoutEntities, entity, "")
			}

			if strings.ContainsAny(withoutEntities, `&<>"'`) {
				t.Errorf("got %q, raw special characters left", got)
			}
		}
	}
}
