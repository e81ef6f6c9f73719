package dateformat

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// localeTagPattern is the BCP-47 grammar subset accepted by ParseLocale:
// language, optional script, optional region, then variant/extension and
// private-use subtags.
var localeTagPattern = regexp.MustCompile(`^((?:[A-Z]{2,3}(?:-[A-Z]{3}){0,3})|[A-Z]{4}|[A-Z]{5,8})` +
	`(?:-([A-Z]{4}))?` +
	`(?:-([A-Z]{2}|[0-9]{3}))?` +
	`((?:-[0-9A-Z]{5,8}|-[0-9][0-9A-Z]{3})*)` +
	`((?:-[0-9A-WYZ](?:-[0-9A-Z]{2,8})+)*)` +
	`(?:-(X(?:-[0-9A-Z]{1,8})+))?$`)

// LocaleTag is an immutable, parsed BCP-47 locale identifier. Instances are
// cached per distinct source string, so equality of pointers follows
// equality of normalized tags in practice.
type LocaleTag struct {
	Language   string
	Script     string
	Region     string
	Variant    string
	Extension  string
	PrivateUse string
}

var (
	localeTagMu    sync.RWMutex
	localeTagCache = make(map[string]*LocaleTag)
)

// ParseLocale parses tag into a LocaleTag, normalizing underscore
// separators to hyphens first. It returns a *ParseError when the string
// does not match the BCP-47 grammar.
func ParseLocale(tag string) (*LocaleTag, error) {
	key := normalizeLocale(tag)
	if key == "" {
		return nil, newParseError(tag, "empty locale tag")
	}

	localeTagMu.RLock()
	cached, ok := localeTagCache[key]
	localeTagMu.RUnlock()
	if ok {
		return cached, nil
	}

	match := localeTagPattern.FindStringSubmatch(strings.ToUpper(key))
	if match == nil {
		return nil, newParseError(tag, "does not match the BCP-47 grammar")
	}

	parsed := &LocaleTag{
		Language: normalizeLanguageCode(strings.ToLower(match[1])),
		Script:   titleCaseScript(match[2]),
		Region:   match[3],
	}
	if match[4] != "" {
		parsed.Variant = strings.ToLower(strings.TrimPrefix(match[4], "-"))
	}
	if match[5] != "" {
		parsed.Extension = strings.ToLower(strings.TrimPrefix(match[5], "-"))
	}
	if match[6] != "" {
		parsed.PrivateUse = strings.ToLower(match[6])
	}

	localeTagMu.Lock()
	localeTagCache[key] = parsed
	localeTagMu.Unlock()

	return parsed, nil
}

// MustParseLocale is ParseLocale for statically known tags.
func MustParseLocale(tag string) *LocaleTag {
	parsed, err := ParseLocale(tag)
	if err != nil {
		panic(err)
	}
	return parsed
}

// String joins the non-empty components with hyphens, applying the BCP-47
// case conventions (language lowercased, script title-cased, region
// uppercased).
func (t *LocaleTag) String() string {
	parts := make([]string, 0, 6)
	parts = append(parts, t.Language)
	for _, part := range []string{t.Script, t.Region, t.Variant, t.Extension, t.PrivateUse} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "-")
}

func titleCaseScript(script string) string {
	if script == "" {
		return ""
	}
	return strings.ToUpper(script[:1]) + strings.ToLower(script[1:])
}

// normalizeLanguageCode maps legacy ISO-639 codes to their modern
// replacements, mirroring what the CLDR data set keys on.
func normalizeLanguageCode(code string) string {
	switch code {
	case "iw":
		return "he"
	case "ji":
		return "yi"
	case "in":
		return "id"
	default:
		return code
	}
}

// normalizeLocale normalizes a single locale identifier by replacing
// underscores with hyphens and trimming whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(locale)
	if err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		value := parent.String()
		if value == "" || value == "und" {
			return ""
		}
		return value
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}

	return ""
}

// localeParentChain returns all parent locales for the given locale,
// ordered from closest parent to root.
func localeParentChain(locale string) []string {
	if locale == "" {
		return nil
	}

	var chain []string
	seen := make(map[string]struct{}, 4)

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			parentValue := parent.String()
			if parentValue == "" || parentValue == "und" {
				break
			}
			if _, exists := seen[parentValue]; exists {
				break
			}
			seen[parentValue] = struct{}{}
			chain = append(chain, parentValue)
		}
	}

	for current := localeParentTag(locale); current != ""; current = localeParentTag(current) {
		if _, exists := seen[current]; exists {
			continue
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
	}

	return chain
}
