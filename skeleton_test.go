package dateformat

import (
	"errors"
	"testing"
)

func TestParseSkeleton(t *testing.T) {
	tokens, err := parseSkeleton("yMMMd")
	if err != nil {
		t.Fatalf("parseSkeleton: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[0].symbol != 'y' || tokens[0].length != 1 {
		t.Errorf("token 0 = %c/%d, want y/1", tokens[0].symbol, tokens[0].length)
	}
	if tokens[1].symbol != 'M' || tokens[1].length != 3 {
		t.Errorf("token 1 = %c/%d, want M/3", tokens[1].symbol, tokens[1].length)
	}
	if tokens[2].symbol != 'd' || tokens[2].length != 1 {
		t.Errorf("token 2 = %c/%d, want d/1", tokens[2].symbol, tokens[2].length)
	}
}

func TestParseSkeletonErrors(t *testing.T) {
	tests := []struct {
		name     string
		skeleton string
	}{
		{"unsupported symbol", "yMj"},
		{"non-adjacent repeat", "yMy"},
		{"out of order", "dM"},
		{"hour before day period misordered", "Ha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSkeleton(tt.skeleton)
			if err == nil {
				t.Fatalf("parseSkeleton(%q) succeeded, want error", tt.skeleton)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("err = %T, want *ParseError", err)
			}
		})
	}
}

func TestNumericRendering(t *testing.T) {
	month := skeletonSymbols['M']
	if !numericRendering(month, 2) {
		t.Error("MM should render numerically")
	}
	if numericRendering(month, 3) {
		t.Error("MMM should render as a name")
	}
}

func TestBestDateTimePatternExact(t *testing.T) {
	en := loadTestLocale(t, testRepository(t), "en")

	tests := []struct {
		skeleton string
		want     string
	}{
		{"yM", "M/y"},
		{"yMMMd", "MMM d, y"},
		{"Hm", "HH:mm"},
		{"yw", "'week' w 'of' Y"},
	}
	for _, tt := range tests {
		got, err := BestDateTimePattern(tt.skeleton, en, CalendarGregorian)
		if err != nil {
			t.Fatalf("BestDateTimePattern(%q): %v", tt.skeleton, err)
		}
		if got != tt.want {
			t.Errorf("BestDateTimePattern(%q) = %q, want %q", tt.skeleton, got, tt.want)
		}
	}
}

func TestBestDateTimePatternExpandsWidths(t *testing.T) {
	en := loadTestLocale(t, testRepository(t), "en")

	// no GyMMMMd entry exists, so GyMMMd wins and its month run widens
	got, err := BestDateTimePattern("GyMMMMd", en, CalendarGregorian)
	if err != nil {
		t.Fatalf("BestDateTimePattern: %v", err)
	}
	if got != "MMMM d, y G" {
		t.Errorf("got %q, want %q", got, "MMMM d, y G")
	}
}

func TestBestDateTimePatternAppendsMissing(t *testing.T) {
	en := loadTestLocale(t, testRepository(t), "en")

	// yQQQ is the only quarter-bearing entry; the hour is synthesized
	// through the Hour appendItems template with its display name.
	got, err := BestDateTimePattern("yQQQH", en, CalendarGregorian)
	if err != nil {
		t.Fatalf("BestDateTimePattern: %v", err)
	}
	if got != "QQQ y ('hour': H)" {
		t.Errorf("got %q, want %q", got, "QQQ y ('hour': H)")
	}

	// the Timezone template has no display-name slot
	got, err = BestDateTimePattern("yQQQQz", en, CalendarGregorian)
	if err != nil {
		t.Fatalf("BestDateTimePattern: %v", err)
	}
	if got != "QQQQ y z" {
		t.Errorf("got %q, want %q", got, "QQQQ y z")
	}
}

func TestBestDateTimePatternVerbatimFallback(t *testing.T) {
	resetWarnings()
	empty := newLocaleData("zz", &CLDRData{})

	got, err := BestDateTimePattern("yMd", empty, CalendarGregorian)
	if err != nil {
		t.Fatalf("BestDateTimePattern: %v", err)
	}
	if got != "yMd" {
		t.Errorf("got %q, want the skeleton back verbatim", got)
	}
}

func TestExpandFieldsKeepsQuotedText(t *testing.T) {
	requested, err := parseSkeleton("YYYYww")
	if err != nil {
		t.Fatalf("parseSkeleton: %v", err)
	}
	matched, err := parseSkeleton("yw")
	if err != nil {
		t.Fatalf("parseSkeleton: %v", err)
	}
	got := expandFields("'week' w 'of' Y", requested, matched)
	if got != "'week' ww 'of' YYYY" {
		t.Errorf("got %q, want %q", got, "'week' ww 'of' YYYY")
	}
}

func TestExpandFieldsKeepsMatchedWidths(t *testing.T) {
	requested, err := parseSkeleton("Hm")
	if err != nil {
		t.Fatalf("parseSkeleton: %v", err)
	}
	// same widths on both sides, so the pattern's own run lengths stay
	got := expandFields("HH:mm", requested, requested)
	if got != "HH:mm" {
		t.Errorf("got %q, want %q", got, "HH:mm")
	}
}
