package style

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseToken(t *testing.T) {
	tests := map[string]Token{
		"ggg":           ColorToken(Green),
		"yyy":           ColorToken(Yellow),
		"rrr":           ColorToken(Red),
		"ccc":           ColorToken(Cyan),
		"bbb":           ColorToken(Blue),
		"mmm":           ColorToken(Magenta),
		"hhh":           Emphasis(),
		"<FORE-hhhhhh>": Emphasis(),
		"<FORE-fffb00>": ColorToken(Yellow),
		"<FORE-3AFA00>": ColorToken(Green),
		"<FORE-ff0000>": ColorToken(Red),
		"<FORE-78ddff>": ColorToken(Cyan),
		"<FORE-00bfff>": ColorToken(Blue),
		"<FORE-8a00b0>": ColorToken(Magenta),
		"<FORE-ffffff>": ColorToken(White),
		"<FORE-fe0101>": ColorToken(Red),
		"<RESET>":       Reset(),
		"<<<":           Reset(),
		"</h>":          Reset(),
		">>>":           ColorToken(Green),
		" Magenta ":     ColorToken(Magenta),
	}
	for in, want := range tests {
		got, err := ParseToken(in)
		if err != nil {
			t.Errorf("ParseToken(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseToken(%q): expected %+v, got %+v", in, want, got)
		}
	}

	for _, bad := range []string{"", "zzz", "<FORE-xyz123>", "ggg extra"} {
		if _, err := ParseToken(bad); err == nil {
			t.Errorf("ParseToken(%q): expected error", bad)
		}
	}
}

func TestTokenStringRoundTrip(t *testing.T) {
	for _, tok := range []Token{
		ColorToken(Green), ColorToken(White), ColorToken(Blue), Emphasis(), Reset(),
	} {
		got, err := ParseToken(tok.String())
		if err != nil {
			t.Fatalf("ParseToken(%q): %v", tok.String(), err)
		}
		if got != tok {
			t.Fatalf("expected %+v, got %+v", tok, got)
		}
	}
}

func TestScan(t *testing.T) {
	tests := map[string][]Piece{
		"plain": {{Text: "plain"}},
		"eggs":  {{Text: "eggs"}},
		"gggdone<<<": {
			{Token: ColorToken(Green)}, {Text: "done"}, {Token: Reset()},
		},
		"<FORE-hhhhhh>flag</h>": {
			{Token: Emphasis()}, {Text: "flag"}, {Token: Reset()},
		},
		"x<FORE-ff0000>y": {
			{Text: "x"}, {Token: ColorToken(Red)}, {Text: "y"},
		},
		">>>next": {
			{Token: ColorToken(Green)}, {Text: ">>>next"},
		},
		"<RESET>hhhmark": {
			{Token: Reset()}, {Token: Emphasis()}, {Text: "mark"},
		},
		"<FORE-zzzzzz>": {{Text: "<FORE-zzzzzz>"}},
	}
	for in, want := range tests {
		got := Scan(in)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Scan(%q): expected %+v, got %+v", in, want, got)
		}
	}
	if got := Strip("rrrwarn<RESET> now"); got != "warn now" {
		t.Fatalf("unexpected strip %q", got)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.ini")
	in := strings.Join([]string{
		"; colours for topics",
		"work=ggg",
		"",
		"Urgent = <FORE-ff0000>",
		"not a rule",
		"; trailing comment",
		"WORK=bbb",
		"expr=a=b",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(in), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := r.Keywords(); !reflect.DeepEqual(got, []string{"WORK", "URGENT", "EXPR"}) {
		t.Fatalf("unexpected keywords %q", got)
	}
	if tok, ok := r.Lookup("work"); !ok || tok != ColorToken(Blue) {
		t.Fatalf("expected later WORK value to win, got %+v %v", tok, ok)
	}
	if tok, ok := r.Lookup("URGENT"); !ok || tok != ColorToken(Red) {
		t.Fatalf("unexpected URGENT token %+v", tok)
	}
	if rule, _ := r.Rule("expr"); rule.Value != "a=b" || !rule.Token.IsZero() {
		t.Fatalf("unexpected EXPR rule %+v", rule)
	}

	if err := r.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"; colours for topics",
		"not a rule",
		"; trailing comment",
		"WORK=bbb",
		"URGENT=<FORE-ff0000>",
		"EXPR=a=b",
	}, "\n") + "\n"
	if string(b) != want {
		t.Fatalf("unexpected sidecar:\n%s\nwant:\n%s", b, want)
	}
}

func TestLoadMissing(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Len() != 0 || len(r.Passthrough()) != 0 {
		t.Fatalf("expected empty registry")
	}
}

func TestResolveOrAssignPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.ini")
	r := New()
	if err := r.Set("home", "ccc"); err != nil {
		t.Fatal(err)
	}
	if tok := r.ResolveOrAssign("HOME"); tok != ColorToken(Cyan) {
		t.Fatalf("existing keyword reassigned: %+v", tok)
	}
	if tok := r.ResolveOrAssign("garden"); tok != DefaultToken {
		t.Fatalf("expected default token, got %+v", tok)
	}
	if err := r.Save(path); err != nil {
		t.Fatal(err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	rule, ok := again.Rule("Garden")
	if !ok || rule.Value != DefaultValue || rule.Token != DefaultToken {
		t.Fatalf("default assignment not persisted: %+v %v", rule, ok)
	}
}

func TestSetRejects(t *testing.T) {
	r := New()
	if err := r.Set("work", "nope"); err == nil {
		t.Fatal("expected error for unknown token")
	}
	if err := r.Set(" ", "ggg"); err == nil {
		t.Fatal("expected error for empty keyword")
	}
	if err := r.Set("a=b", "ggg"); err == nil {
		t.Fatal("expected error for keyword with '='")
	}
	if err := r.Set(";x", "ggg"); err == nil {
		t.Fatal("expected error for keyword starting with ';'")
	}
}

func TestResolveOrAssignSkipsUnstorable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.ini")
	for i := 0; i < 3; i++ {
		r, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		for _, k := range []string{"a=b", ";x", "home"} {
			if tok := r.ResolveOrAssign(k); tok != DefaultToken {
				t.Fatalf("%q: expected default token, got %+v", k, tok)
			}
		}
		if err := r.Save(path); err != nil {
			t.Fatal(err)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "HOME=" + DefaultValue + "\n"; string(b) != want {
		t.Fatalf("expected %q, got %q", want, b)
	}
}

func TestShorthandsParse(t *testing.T) {
	for _, short := range Shorthands() {
		if _, err := ParseToken(short); err != nil {
			t.Errorf("%s: %v", short, err)
		}
	}
	if got := len(Shorthands()); got != 7 {
		t.Fatalf("expected 7 shorthands, got %d", got)
	}
}

func TestSaveFailureNamesPath(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "styles.ini")
	const stored = "WORK=rrr\n"
	if err := os.WriteFile(path, []byte(stored), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	r, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	r.ResolveOrAssign("home")
	err = r.Save(path)
	if err == nil {
		t.Fatal("expected save into a read-only directory to fail")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error does not name %s: %v", path, err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != stored {
		t.Fatalf("sidecar changed: %q", b)
	}
}
