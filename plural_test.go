package dateformat

import (
	"testing"
)

func TestPluralCategoryEnglish(t *testing.T) {
	repo := NewLocaleDataRepository()
	data := loadTestLocale(t, repo, "en")

	tests := map[string]string{
		"0":   "other",
		"1":   "one",
		"1.0": "other", // visible fraction digits defeat i = 1 and v = 0
		"1.5": "other",
		"2":   "other",
		"21":  "other",
	}
	for number, want := range tests {
		if got := data.PluralCategory(number); got != want {
			t.Errorf("PluralCategory(%q) = %q, want %q", number, got, want)
		}
	}
}

func TestPluralCategoryArabic(t *testing.T) {
	repo := testRepository(t)
	data := loadTestLocale(t, repo, "ar")

	tests := map[int]string{
		0:   "zero",
		1:   "one",
		2:   "two",
		3:   "few",
		10:  "few",
		103: "few",
		11:  "many",
		26:  "many",
		99:  "many",
		100: "other",
		102: "other",
	}
	for quantity, want := range tests {
		if got := data.PluralCategoryInt(quantity); got != want {
			t.Errorf("PluralCategoryInt(%d) = %q, want %q", quantity, got, want)
		}
	}
}

func TestParsePluralOperands(t *testing.T) {
	tests := []struct {
		input   string
		n       float64
		i       int64
		v       int
		f       int64
		w       int
		wantErr bool
	}{
		{input: "1", n: 1, i: 1},
		{input: "1.0", n: 1, i: 1, v: 1},
		{input: "1.5", n: 1.5, i: 1, v: 1, f: 5, w: 1},
		{input: "1.50", n: 1.5, i: 1, v: 2, f: 50, w: 1},
		{input: "abc", wantErr: true},
	}
	for _, tt := range tests {
		operands, err := parsePluralOperands(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePluralOperands(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parsePluralOperands(%q): %v", tt.input, err)
		}
		if operands.n != tt.n || operands.i != tt.i || operands.v != tt.v ||
			operands.f != tt.f || operands.w != tt.w {
			t.Errorf("parsePluralOperands(%q) = %+v", tt.input, operands)
		}
	}
}

func TestCompilePluralRuleModuloRange(t *testing.T) {
	matches, err := compilePluralRule("n % 100 = 3..10")
	if err != nil {
		t.Fatal(err)
	}
	for value, want := range map[string]bool{"3": true, "10": true, "103": true, "11": false, "2": false} {
		operands, err := parsePluralOperands(value)
		if err != nil {
			t.Fatal(err)
		}
		if got := matches(operands); got != want {
			t.Errorf("rule(%s) = %v, want %v", value, got, want)
		}
	}
}

func TestCompilePluralRuleDisjunction(t *testing.T) {
	matches, err := compilePluralRule("i = 0 or n = 1 @integer 0, 1")
	if err != nil {
		t.Fatal(err)
	}
	for value, want := range map[string]bool{"0": true, "0.5": true, "1": true, "2": false} {
		operands, err := parsePluralOperands(value)
		if err != nil {
			t.Fatal(err)
		}
		if got := matches(operands); got != want {
			t.Errorf("rule(%s) = %v, want %v", value, got, want)
		}
	}
}
