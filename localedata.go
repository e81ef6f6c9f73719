package dateformat

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	_ "embed"
)

// DefaultLocale is the terminal fallback of every locale resolution chain.
const DefaultLocale = "en"

//go:embed testdata/en.json
var embeddedEnglishPayload []byte

// LocaleDataLoader produces the raw payload for one locale id. Loaders
// return the undecoded map form so the fallback merge can honor null
// tombstones before anything typed is built.
type LocaleDataLoader func(ctx context.Context, localeID string) (map[string]any, error)

// LocaleDataRepository resolves locale ids to merged, immutable CLDR
// payloads. Loaders register at startup; loaded entries are cached for the
// lifetime of the repository and never evicted. Concurrent loads of the
// same locale share a single in-flight call, and the cache is populated
// only after the fallback merge completes, so readers never observe a
// partially merged payload.
type LocaleDataRepository struct {
	mu       sync.Mutex
	loaders  map[string]LocaleDataLoader
	cache    map[string]*LocaleData
	inflight map[string]*localeLoad
}

type localeLoad struct {
	done chan struct{}
	data *LocaleData
	err  error
}

// NewLocaleDataRepository builds an empty repository. The embedded English
// payload registers as the development-mode fallback for DefaultLocale.
func NewLocaleDataRepository() *LocaleDataRepository {
	r := &LocaleDataRepository{
		loaders:  make(map[string]LocaleDataLoader),
		cache:    make(map[string]*LocaleData),
		inflight: make(map[string]*localeLoad),
	}
	r.RegisterLoader(DefaultLocale, func(ctx context.Context, localeID string) (map[string]any, error) {
		var raw map[string]any
		if err := json.Unmarshal(embeddedEnglishPayload, &raw); err != nil {
			return nil, fmt.Errorf("dateformat: embedded %s payload: %w", DefaultLocale, err)
		}
		return raw, nil
	})
	return r
}

// RegisterLoader stores the loader for a locale id. The last registration
// wins.
func (r *LocaleDataRepository) RegisterLoader(localeID string, loader LocaleDataLoader) {
	if loader == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[normalizeLocale(localeID)] = loader
}

// RegisteredLocales lists the locale ids with loaders, sorted.
func (r *LocaleDataRepository) RegisteredLocales() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.loaders))
	for id := range r.loaders {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// resolveLocaleID normalizes a requested tag to the composite id the
// loader table is keyed by: legacy codes modernized, Norwegian mapped to
// Bokmål, Chinese script inferred to a region, Serbian Latin kept as a
// script composite.
func resolveLocaleID(tag *LocaleTag) string {
	language := tag.Language
	region := tag.Region

	switch language {
	case "no":
		language = "nb"
	case "zh":
		if region == "" {
			switch tag.Script {
			case "Hans":
				region = "CN"
			case "Hant":
				region = "TW"
			}
		}
	case "sr":
		if tag.Script == "Latn" {
			return "sr-Latn"
		}
	}

	if region != "" {
		return language + "-" + region
	}
	return language
}

// Load resolves, loads and caches the payload for the given locale tag.
// The chain is the requested id, its CLDR parent locales, then
// DefaultLocale; falling back is logged once per distinct requested id.
func (r *LocaleDataRepository) Load(ctx context.Context, tag *LocaleTag) (*LocaleData, error) {
	if tag == nil {
		return nil, fmt.Errorf("dateformat: nil locale tag: %w", ErrInvalidArgument)
	}

	requested := resolveLocaleID(tag)

	r.mu.Lock()
	if cached, ok := r.cache[requested]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	if load, ok := r.inflight[requested]; ok {
		r.mu.Unlock()
		select {
		case <-load.done:
			return load.data, load.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	load := &localeLoad{done: make(chan struct{})}
	r.inflight[requested] = load
	r.mu.Unlock()

	data, err := r.load(ctx, requested)

	r.mu.Lock()
	if err == nil {
		r.cache[requested] = data
	}
	delete(r.inflight, requested)
	r.mu.Unlock()

	load.data, load.err = data, err
	close(load.done)
	return data, err
}

// LoadID is Load for string locale ids.
func (r *LocaleDataRepository) LoadID(ctx context.Context, localeID string) (*LocaleData, error) {
	tag, err := ParseLocale(localeID)
	if err != nil {
		return nil, err
	}
	return r.Load(ctx, tag)
}

func (r *LocaleDataRepository) load(ctx context.Context, requested string) (*LocaleData, error) {
	// walk the CLDR parent chain, not bare tag truncation: zh-Hant-TW
	// must try zh-Hant before zh
	candidates := make([]string, 0, 4)
	candidates = append(candidates, requested)
	candidates = append(candidates, localeParentChain(requested)...)
	candidates = append(candidates, DefaultLocale)

	var chosen string
	var loader LocaleDataLoader
	r.mu.Lock()
	for _, candidate := range candidates {
		if fn, ok := r.loaders[candidate]; ok {
			chosen, loader = candidate, fn
			break
		}
	}
	r.mu.Unlock()

	if loader == nil {
		return nil, fmt.Errorf("dateformat: no locale data loader for %q and no default registered", requested)
	}
	if chosen != requested {
		warnOnce("locale-fallback:"+requested,
			"locale data unavailable, falling back",
			map[string]string{"requested": requested, "using": chosen})
	}

	raw, err := loader(ctx, chosen)
	if err != nil {
		return nil, fmt.Errorf("dateformat: load locale %q: %w", chosen, err)
	}

	raw, err = r.mergeFallbackChain(ctx, raw, map[string]struct{}{chosen: {}})
	if err != nil {
		return nil, err
	}

	data, err := decodeCLDR(raw)
	if err != nil {
		return nil, err
	}
	return newLocaleData(requested, data), nil
}

// mergeFallbackChain resolves a declared __fallbackLocale recursively and
// merges it underneath the payload, primary data winning and explicit
// nulls deleting inherited keys.
func (r *LocaleDataRepository) mergeFallbackChain(ctx context.Context, raw map[string]any, seen map[string]struct{}) (map[string]any, error) {
	fallbackID, _ := raw["__fallbackLocale"].(string)
	if fallbackID == "" {
		return raw, nil
	}
	fallbackID = normalizeLocale(fallbackID)
	if _, ok := seen[fallbackID]; ok {
		return raw, nil
	}
	seen[fallbackID] = struct{}{}

	r.mu.Lock()
	loader, ok := r.loaders[fallbackID]
	r.mu.Unlock()
	if !ok {
		warnOnce("fallback-loader:"+fallbackID,
			"declared fallback locale has no loader",
			map[string]string{"fallback": fallbackID})
		return raw, nil
	}

	fallbackRaw, err := loader(ctx, fallbackID)
	if err != nil {
		return nil, fmt.Errorf("dateformat: load fallback locale %q: %w", fallbackID, err)
	}
	fallbackRaw, err = r.mergeFallbackChain(ctx, fallbackRaw, seen)
	if err != nil {
		return nil, err
	}

	merged := deepMerge(raw, fallbackRaw)
	delete(merged, "__fallbackLocale")
	return merged, nil
}

var defaultLocaleRepository = NewLocaleDataRepository()

// LocaleDataLoaders returns the process-wide repository.
func LocaleDataLoaders() *LocaleDataRepository {
	return defaultLocaleRepository
}

// RegisterLocaleDataLoader registers a loader on the process-wide
// repository. Calendar and locale plugin packages call this at startup.
func RegisterLocaleDataLoader(localeID string, loader LocaleDataLoader) {
	defaultLocaleRepository.RegisterLoader(localeID, loader)
}
