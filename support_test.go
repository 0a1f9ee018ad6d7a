package formstate

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-formstate/pkg/bind"
	"github.com/google/go-cmp/cmp"
)

func TestLRUProgramCacheEvicts(t *testing.T) {
	cache := NewLRUProgramCache(2)
	cache.Set("a", 1)
	cache.Set("b", 2)
	if _, ok := cache.Get("a"); !ok {
		t.Fatal("expected a cached")
	}
	cache.Set("c", 3)
	if _, ok := cache.Get("b"); ok {
		t.Fatal("expected least recently used entry b evicted")
	}
	if value, ok := cache.Get("a"); !ok || value != 1 {
		t.Fatalf("expected a retained, got %v %v", value, ok)
	}
	cache.Set("a", 10)
	if value, _ := cache.Get("a"); value != 10 {
		t.Fatalf("expected overwrite, got %v", value)
	}
	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Len())
	}
	if NewLRUProgramCache(0).capacity != 128 {
		t.Fatal("expected default capacity")
	}
}

func TestFunctionRegistryOptionKeepsCustomFunctions(t *testing.T) {
	form := New(map[string]string{"code": "4539-1488-0343-6467"},
		WithCustomFunction("hasDash", func(args ...any) (any, error) {
			value, _ := args[0].(string)
			return strings.Contains(value, "-"), nil
		}),
		WithFunctionRegistry(DefaultFunctions()),
	)
	if err := form.SetVerification(Schema{"code": Expr(`hasDash(value) && luhn(value)`)}); err != nil {
		t.Fatalf("set verification: %v", err)
	}
	if valid, err := form.VerifyFormState(); err != nil || !valid {
		t.Fatalf("expected both functions available, got %v %v", valid, err)
	}
}

func TestFunctionRegistry(t *testing.T) {
	registry := DefaultFunctions()
	if err := registry.Register("LUHN", luhnFunction); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := registry.Register(" ", luhnFunction); err == nil {
		t.Fatal("expected empty name error")
	}
	if err := registry.Register("nilfn", nil); err == nil {
		t.Fatal("expected nil function error")
	}
	if diff := cmp.Diff([]string{"digits", "luhn"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	got, err := registry.Call("Digits", "(415) 555-2671")
	if err != nil || got != "4155552671" {
		t.Fatalf("digits: %v %v", got, err)
	}
	if got, _ := registry.Call("luhn", "79927398713"); got != true {
		t.Fatalf("expected luhn pass, got %v", got)
	}
	if got, _ := registry.Call("luhn", "7992a398713"); got != false {
		t.Fatalf("expected luhn fail on letters, got %v", got)
	}
	if _, err := registry.Call("luhn", 42); err == nil {
		t.Fatal("expected argument type error")
	}
	if _, err := registry.Call("missing"); err == nil {
		t.Fatal("expected unknown function error")
	}

	clone := registry.Clone()
	if err := clone.Register("extra", digitsFunction); err != nil {
		t.Fatalf("register on clone: %v", err)
	}
	if len(registry.Names()) != 2 {
		t.Fatal("clone registrations must not leak")
	}
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := SlogLogger(slog.New(handler))

	logger.LogEvent(LogEvent{Kind: "store.set", Form: "signup", Key: "signup", Err: errors.New("down")})

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if record["msg"] != "formstate: store.set" || record["level"] != "WARN" {
		t.Fatalf("unexpected record %v", record)
	}
	if record["form"] != "signup" || record["error"] != "down" {
		t.Fatalf("missing attributes in %v", record)
	}

	if _, ok := SlogLogger(nil).(noopLogger); !ok {
		t.Fatal("nil slog logger should fall back to noop")
	}
}

func TestStrictSanitizer(t *testing.T) {
	sanitize := StrictSanitizer()
	cases := map[string]string{
		"<b>Ada</b>":                "Ada",
		"  plain  ":                 "plain",
		"Tom & Jerry":               "Tom & Jerry",
		`<a href="javascript:x">hi`: "hi",
		"&lt;b&gt;Ada&lt;/b&gt;":    "Ada",
		"&amp;lt;i&amp;gt;Ada":      "Ada",
		"5 &lt; 6":                  "5 < 6",
	}
	for input, want := range cases {
		if got := sanitize.Sanitize(input); got != want {
			t.Fatalf("Sanitize(%q) = %q, want %q", input, got, want)
		}
	}

	form := New(map[string]string{"bio": ""}, WithSanitizer(sanitize))
	if err := form.Field("bio", "&lt;script&gt;alert(1)&lt;/script&gt;"); err != nil {
		t.Fatalf("field: %v", err)
	}
	if stored, _ := form.Value("bio"); strings.Contains(stored, "<") {
		t.Fatalf("entity encoded markup was stored as a live tag: %q", stored)
	}
	upper := SanitizerFunc(strings.ToUpper)
	if upper.Sanitize("x") != "X" {
		t.Fatal("SanitizerFunc should delegate")
	}
	if SanitizerFunc(nil).Sanitize("x") != "x" {
		t.Fatal("nil SanitizerFunc should be identity")
	}
}

type signupInput struct {
	Email string `json:"email"`
	Age   int    `json:"age,string"`
}

func TestBind(t *testing.T) {
	form := New(map[string]string{"email": "a@b.com", "age": "42", "extra": "x"}, WithName("signup"))

	got, err := Bind[signupInput](form)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if diff := cmp.Diff(signupInput{Email: "a@b.com", Age: 42}, got); diff != "" {
		t.Fatalf("bound mismatch (-want +got):\n%s", diff)
	}

	var seen bind.Context
	_, err = Bind(form,
		bind.WithPreHook[signupInput](func(ctx bind.Context, fields map[string]string) (map[string]string, error) {
			seen = ctx
			return nil, nil
		}),
		bind.WithDisallowUnknownFields[signupInput](),
	)
	if err == nil {
		t.Fatal("expected unknown field error")
	}
	if seen.Form != "signup" || seen.ID != form.ID() {
		t.Fatalf("unexpected bind context %+v", seen)
	}
}
