package contact

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func mustRecord(t *testing.T, name string, phones ...string) *Record {
	t.Helper()
	r, err := NewRecord(name)
	if err != nil {
		t.Fatalf("NewRecord(%q) error = %v", name, err)
	}
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			t.Fatalf("AddPhone(%q) error = %v", p, err)
		}
	}
	return r
}

func TestNewRecord(t *testing.T) {
	r, err := NewRecord("John")
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	if r.Name() != "John" {
		t.Errorf("Name() = %q, want %q", r.Name(), "John")
	}
	if len(r.Phones()) != 0 {
		t.Errorf("Phones() = %v, want empty", r.Phones())
	}
	if _, ok := r.Birthday(); ok {
		t.Error("new record should have no birthday")
	}

	if _, err := NewRecord(""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("NewRecord(\"\") error = %v, want ErrEmptyName", err)
	}
}

func TestRecord_AddPhoneThenFind(t *testing.T) {
	// Given a record with one phone
	r := mustRecord(t, "John", "1234567890")

	// Then FindPhone returns it
	got, ok := r.FindPhone("1234567890")
	if !ok || got != "1234567890" {
		t.Errorf("FindPhone() = (%q, %v), want (%q, true)", got, ok, "1234567890")
	}

	// When it is removed
	r.RemovePhone("1234567890")

	// Then FindPhone misses
	if _, ok := r.FindPhone("1234567890"); ok {
		t.Error("FindPhone() after RemovePhone should miss")
	}
}

func TestRecord_AddPhone_InvalidLeavesRecordUnchanged(t *testing.T) {
	r := mustRecord(t, "John", "1234567890")

	err := r.AddPhone("12345")

	if !errors.Is(err, ErrInvalidPhone) {
		t.Errorf("AddPhone(invalid) error = %v, want ErrInvalidPhone", err)
	}
	if got := r.Phones(); !slices.Equal(got, []string{"1234567890"}) {
		t.Errorf("Phones() = %v, want unchanged", got)
	}
}

func TestRecord_AddPhone_KeepsDuplicatesInOrder(t *testing.T) {
	r := mustRecord(t, "John", "1111111111", "2222222222", "1111111111")

	want := []string{"1111111111", "2222222222", "1111111111"}
	if got := r.Phones(); !slices.Equal(got, want) {
		t.Errorf("Phones() = %v, want %v", got, want)
	}
}

func TestRecord_EditPhone(t *testing.T) {
	tests := []struct {
		name     string
		phones   []string
		old      string
		newPhone string
		want     []string
		wantErr  error
	}{
		{
			name:     "replaces match",
			phones:   []string{"1111111111", "2222222222"},
			old:      "2222222222",
			newPhone: "3333333333",
			want:     []string{"1111111111", "3333333333"},
		},
		{
			name:     "replaces only first duplicate",
			phones:   []string{"1111111111", "1111111111"},
			old:      "1111111111",
			newPhone: "3333333333",
			want:     []string{"3333333333", "1111111111"},
		},
		{
			name:     "missing old is a no-op",
			phones:   []string{"1111111111"},
			old:      "9999999999",
			newPhone: "3333333333",
			want:     []string{"1111111111"},
		},
		{
			name:     "invalid new is rejected",
			phones:   []string{"1111111111"},
			old:      "1111111111",
			newPhone: "abc",
			want:     []string{"1111111111"},
			wantErr:  ErrInvalidPhone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRecord(t, "John", tt.phones...)

			err := r.EditPhone(tt.old, tt.newPhone)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("EditPhone() error = %v, want %v", err, tt.wantErr)
			}
			if got := r.Phones(); !slices.Equal(got, tt.want) {
				t.Errorf("Phones() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecord_RemovePhone(t *testing.T) {
	r := mustRecord(t, "John", "1111111111", "2222222222", "1111111111")

	r.RemovePhone("1111111111")
	if got, want := r.Phones(), []string{"2222222222", "1111111111"}; !slices.Equal(got, want) {
		t.Errorf("Phones() = %v, want %v", got, want)
	}

	r.RemovePhone("9999999999")
	if got := len(r.Phones()); got != 2 {
		t.Errorf("len(Phones()) = %d after removing absent phone, want 2", got)
	}
}

func TestRecord_PhonesReturnsCopy(t *testing.T) {
	r := mustRecord(t, "John", "1111111111")

	phones := r.Phones()
	phones[0] = "0000000000"

	if _, ok := r.FindPhone("1111111111"); !ok {
		t.Error("mutating Phones() result should not affect the record")
	}
}

func TestRecord_AddBirthday(t *testing.T) {
	r := mustRecord(t, "John")

	if err := r.AddBirthday("1985-07-30"); err != nil {
		t.Fatalf("AddBirthday() error = %v", err)
	}
	bd, ok := r.Birthday()
	if !ok {
		t.Fatal("Birthday() not set")
	}
	if want := time.Date(1985, time.July, 30, 0, 0, 0, 0, time.UTC); !bd.Equal(want) {
		t.Errorf("Birthday() = %v, want %v", bd, want)
	}

	// Invalid input keeps the existing value.
	if err := r.AddBirthday("30.07.1985"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("AddBirthday(invalid) error = %v, want ErrInvalidDate", err)
	}
	if got, _ := r.Birthday(); !got.Equal(bd) {
		t.Errorf("Birthday() = %v after invalid input, want %v", got, bd)
	}

	// Valid input overwrites.
	if err := r.AddBirthday("1986-01-02"); err != nil {
		t.Fatalf("AddBirthday() error = %v", err)
	}
	if got, _ := r.Birthday(); got.Format(BirthdayLayout) != "1986-01-02" {
		t.Errorf("Birthday() = %s, want 1986-01-02", got.Format(BirthdayLayout))
	}
}

func TestRecord_String(t *testing.T) {
	tests := []struct {
		name   string
		phones []string
		want   string
	}{
		{name: "no phones", want: "Contact name: John, phones: "},
		{name: "one phone", phones: []string{"1234567890"}, want: "Contact name: John, phones: 1234567890"},
		{
			name:   "two phones",
			phones: []string{"1234567890", "5555555555"},
			want:   "Contact name: John, phones: 1234567890; 5555555555",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRecord(t, "John", tt.phones...)
			if got := r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
