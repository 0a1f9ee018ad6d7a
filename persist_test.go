package formstate

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formstate/pkg/store"
	"github.com/google/go-cmp/cmp"
)

type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, s.err
}

func (s failingStore) Set(context.Context, string, string) error {
	return s.err
}

func TestPersistAndPopulateRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()

	original := New(map[string]string{
		"email": "a@b.com",
		"name":  "Ada <Lovelace>",
		"note":  "line\nbreak",
	}, WithName("signup"), WithStore(mem))
	if err := original.PersistToStore(ctx); err != nil {
		t.Fatalf("persist: %v", err)
	}

	raw, ok, err := mem.Get(ctx, "signup")
	if err != nil || !ok {
		t.Fatalf("expected stored payload, got ok=%v err=%v", ok, err)
	}

	restored := New(nil, WithStore(mem))
	if err := restored.PopulateFromStore(ctx, "signup"); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if restored.Name() != "signup" {
		t.Fatalf("populate should rename the form, got %q", restored.Name())
	}
	if diff := cmp.Diff(original.State(), restored.State()); diff != "" {
		t.Fatalf("restored state mismatch (-want +got):\n%s", diff)
	}

	again, err := restored.MarshalFields()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(again) != raw {
		t.Fatalf("expected byte identical JSON\nwant: %s\n got: %s", raw, again)
	}
}

func TestMarshalFieldsWritesHTMLRaw(t *testing.T) {
	form := New(map[string]string{"b": "<b>x</b> & y", "a": "1"})
	raw, err := form.MarshalFields()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"a":"1","b":"<b>x</b> & y"}`
	if string(raw) != want {
		t.Fatalf("unexpected encoding\nwant: %s\n got: %s", want, raw)
	}
}

func TestPopulateMissingKeyYieldsEmptyForm(t *testing.T) {
	form := New(map[string]string{"a": "1"}, WithStore(store.NewMemoryStore()))
	if err := form.SetVerification(Schema{"a": Named("numeric")}); err != nil {
		t.Fatalf("set verification: %v", err)
	}
	if err := form.PopulateFromStore(context.Background(), "absent"); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if len(form.State()) != 0 || len(form.Fields()) != 0 {
		t.Fatalf("expected empty form, got %v", form.State())
	}
	if len(form.Errors()) != 0 {
		t.Fatalf("error entries for vanished fields should be pruned, got %v", form.Errors())
	}
	if form.Name() != "absent" {
		t.Fatalf("expected name absent, got %q", form.Name())
	}
}

func TestPopulateInvalidJSON(t *testing.T) {
	mem := store.NewMemoryStore()
	if err := mem.Set(context.Background(), "broken", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	form := New(map[string]string{"a": "1"}, WithStore(mem))
	if err := form.PopulateFromStore(context.Background(), "broken"); err == nil {
		t.Fatal("expected decode error")
	}
	if value, _ := form.Value("a"); value != "1" {
		t.Fatal("failed populate must leave fields untouched")
	}
}

func TestStoreOperationsWithoutStoreAreNoOps(t *testing.T) {
	form := New(map[string]string{"a": "1"})
	if err := form.PersistToStore(context.Background()); err != nil {
		t.Fatalf("persist without store: %v", err)
	}
	if err := form.PopulateFromStore(context.Background(), "x"); err != nil {
		t.Fatalf("populate without store: %v", err)
	}
	if form.Name() != DefaultFormName {
		t.Fatalf("populate without store must not rename, got %q", form.Name())
	}
	if value, _ := form.Value("a"); value != "1" {
		t.Fatal("populate without store must not change fields")
	}
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	sentinel := errors.New("backend down")
	form := New(nil, WithName("signup"), WithStore(failingStore{err: sentinel}))

	err := form.PersistToStore(context.Background())
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	if err.Error() != `formstate: persist "signup": backend down` {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := form.PopulateFromStore(context.Background(), "k"); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
}
