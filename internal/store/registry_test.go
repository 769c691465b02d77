package store

import (
	"errors"
	"sort"
	"testing"
)

// fakeStore is a minimal Store for registry tests.
type fakeStore struct {
	path string
}

func (f *fakeStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (f *fakeStore) Set(key, value []byte) error    { return nil }
func (f *fakeStore) Delete(key []byte) error        { return ErrNotFound }
func (f *fakeStore) Close() error                   { return nil }
func (f *fakeStore) Version() string                { return "fake 0.0" }

func fakeBackend(name string) Backend {
	return Backend{
		Name:    name,
		Open:    func(path string) (Store, error) { return &fakeStore{path: path}, nil },
		Version: func() string { return "fake 0.0" },
	}
}

func TestRegisterAndLookup(t *testing.T) {
	Register(fakeBackend("fake-lookup"))

	b, err := Lookup("fake-lookup")
	if err != nil {
		t.Fatal(err)
	}
	if b.Name != "fake-lookup" {
		t.Fatalf("expected fake-lookup, got %q", b.Name)
	}
	if b.Version() != "fake 0.0" {
		t.Fatalf("unexpected version %q", b.Version())
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("no-such-engine")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open("no-such-engine", "/tmp/x.db")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestOpenDispatches(t *testing.T) {
	Register(fakeBackend("fake-open"))

	s, err := Open("fake-open", "/tmp/x.db")
	if err != nil {
		t.Fatal(err)
	}
	fs, ok := s.(*fakeStore)
	if !ok {
		t.Fatalf("expected *fakeStore, got %T", s)
	}
	if fs.path != "/tmp/x.db" {
		t.Fatalf("path not forwarded, got %q", fs.path)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(fakeBackend("fake-dup"))
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Register should panic")
		}
	}()
	Register(fakeBackend("fake-dup"))
}

func TestRegisterIncompletePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("incomplete Register should panic")
		}
	}()
	Register(Backend{Name: "fake-incomplete"})
}

func TestBackendsSorted(t *testing.T) {
	Register(fakeBackend("fake-zz"))
	Register(fakeBackend("fake-aa"))

	names := Backends()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("backend names not sorted: %v", names)
	}
	found := 0
	for _, n := range names {
		if n == "fake-zz" || n == "fake-aa" {
			found++
		}
	}
	if found != 2 {
		t.Fatalf("registered backends missing from %v", names)
	}
}
