package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", " info ")
	t.Setenv("LOG_FORMAT", "json")

	logC := New().Prefix("LOG_")

	if got := logC.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get trims and returns value, got %q", got)
	}
	if got := logC.Get("FORMAT", "console"); got != "json" {
		t.Fatalf("Get = %q, want json", got)
	}
	if got := logC.Get("ABSENT", "console"); got != "console" {
		t.Fatalf("Get missing = %q, want default", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("B_")

	cases := []struct {
		name string
		val  string
		def  bool
		want bool
	}{
		{"true", "true", false, true},
		{"one", "1", false, true},
		{"yes upper", "YES", false, true},
		{"false", "false", true, false},
		{"zero", "0", true, false},
		{"no", "no", true, false},
		{"padded", "   true   ", false, true},
		{"missing default true", "", true, true},
		{"missing default false", "", false, false},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key := "K" + string(rune('A'+i))
			if tc.val != "" {
				t.Setenv("B_"+key, tc.val)
			}
			if got := c.GetBool(key, tc.def); got != tc.want {
				t.Fatalf("GetBool(%q=%q) = %v, want %v", key, tc.val, got, tc.want)
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("I_")

	t.Setenv("I_OK", "42")
	t.Setenv("I_PADDED", "  7  ")
	t.Setenv("I_JUNK", "12x")
	t.Setenv("I_NEG", "-5")

	if got := c.GetInt("OK", 0); got != 42 {
		t.Fatalf("GetInt = %d, want 42", got)
	}
	if got := c.GetInt("PADDED", 1); got != 7 {
		t.Fatalf("GetInt padded = %d, want 7", got)
	}
	if got := c.GetInt("JUNK", 9); got != 9 {
		t.Fatalf("GetInt junk = %d, want default 9", got)
	}
	// counts and ports are never negative here, so fall back
	if got := c.GetInt("NEG", 3); got != 3 {
		t.Fatalf("GetInt negative = %d, want default 3", got)
	}
	if got := c.GetInt("ABSENT", 11); got != 11 {
		t.Fatalf("GetInt missing = %d, want default 11", got)
	}
}

func TestNestedPrefixes(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("API_LOG_LEVEL", "warn")

	root := New()
	if got := root.Prefix("LOG_").Get("LEVEL", ""); got != "info" {
		t.Fatalf("LOG_ view = %q, want info", got)
	}
	if got := root.Prefix("API_").Prefix("LOG_").Get("LEVEL", ""); got != "warn" {
		t.Fatalf("API_LOG_ view = %q, want warn", got)
	}
}
