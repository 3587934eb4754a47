package naming

import "testing"

func TestKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Universidad de Chile", "universidad_de_chile"},
		{"Unión Española", "union_espanola"},
		{"Ñublense", "nublense"},
		{"COLO-COLO", "colo-colo"},
		{"  Deportes   Iquique ", "deportes_iquique"},
		{"O'Higgins", "o'higgins"},
		{"Everton\tde Viña", "everton_de_vina"},
		{"universidad_de_chile", "universidad_de_chile"},
		{"Audax__Italiano", "audax_italiano"},
		{"", ""},
		{"東京", ""},
	}
	for _, tc := range cases {
		if got := Key(tc.in); got != tc.want {
			t.Fatalf("Key(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestKeyIsIdempotent(t *testing.T) {
	inputs := []string{
		"Universidad de Chile",
		"Unión La Calera",
		"Cobreloa ",
		"Curicó Unido",
		"Huachipato_FC",
		"Ñuñoa",
		"ÀÉÎÕÜ ç",
	}
	for _, in := range inputs {
		once := Key(in)
		if twice := Key(once); twice != once {
			t.Fatalf("Key not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestKeyHandlesDecomposedInput(t *testing.T) {
	// "e" followed by a combining acute accent.
	decomposed := "Cato\u0301lica"
	if got := Key(decomposed); got != "catolica" {
		t.Fatalf("expected decomposed accent to fold, got %q", got)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("Universidad de Chile"); got != "universidad_de_chile.png" {
		t.Fatalf("unexpected file name %q", got)
	}
}
