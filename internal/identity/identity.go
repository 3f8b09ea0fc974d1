// Package identity normalizes a raw brand and product title into a canonical,
// hashable product identity used as the cache key for competitor lookups.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Condition is the normalized listing condition.
type Condition string

const (
	ConditionNew      Condition = "new"
	ConditionOpenBox  Condition = "open-box"
	ConditionUsed     Condition = "used"
	ConditionForParts Condition = "for-parts"
)

// SizeUnit is the unit of a parsed size expression.
type SizeUnit string

const (
	UnitFluidOunce SizeUnit = "fl-oz"
	UnitOunce      SizeUnit = "oz"
	UnitPound      SizeUnit = "lb"
	UnitGram       SizeUnit = "g"
	UnitKilogram   SizeUnit = "kg"
	UnitMilliliter SizeUnit = "ml"
	UnitLiter      SizeUnit = "l"
	UnitCount      SizeUnit = "count"
)

// Size is a parsed size expression from a product title.
type Size struct {
	Value float64  `json:"value"`
	Unit  SizeUnit `json:"unit"`
}

// Options carries the optional caller-supplied fields for Normalize.
// Zero values degrade to the documented defaults: condition "new",
// pack count parsed from the title (or 1), nil identifiers.
type Options struct {
	UPC       string
	MPN       string
	Condition string
	PackCount int
	Variant   string
}

// Canonical is the derived product identity. It is recomputed on every
// Normalize call and never mutated afterwards.
type Canonical struct {
	Brand       string    `json:"brand"`
	ProductLine string    `json:"productLine"`
	Variant     string    `json:"variant,omitempty"`
	Size        *Size     `json:"size,omitempty"`
	PackCount   int       `json:"packCount"`
	Condition   Condition `json:"condition"`
	UPC         string    `json:"upc,omitempty"`
	MPN         string    `json:"mpn,omitempty"`
	Keywords    []string  `json:"keywords"`
	Hash        string    `json:"identityHash"`
}

// sizePattern pairs a unit with its regex. Order matters: a unit whose
// textual form contains another unit's form must come first, so "fl oz"
// is tried before "oz" and spelled-out grams before the bare "g".
type sizePattern struct {
	unit SizeUnit
	re   *regexp.Regexp
}

var sizePatterns = []sizePattern{
	{UnitFluidOunce, regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:fl\.?\s*oz\b\.?|fluid\s+ounces?\b)`)},
	{UnitOunce, regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:oz\b\.?|ounces?\b)`)},
	{UnitPound, regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:lbs?\b\.?|pounds?\b)`)},
	{UnitMilliliter, regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:ml\b\.?|milliliters?\b|millilitres?\b)`)},
	{UnitLiter, regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:liters?\b|litres?\b|l\b\.?)`)},
	{UnitKilogram, regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:kg\b\.?|kilograms?\b)`)},
	{UnitGram, regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:grams?\b|g\b\.?)`)},
	{UnitCount, regexp.MustCompile(`(?i)(\d+)\s*(?:count\b|ct\b\.?)`)},
}

// namedPacks are word multiples that win over numeric pack patterns.
var namedPacks = []struct {
	re    *regexp.Regexp
	count int
}{
	{regexp.MustCompile(`(?i)\btwin[\s-]?pack\b`), 2},
	{regexp.MustCompile(`(?i)\bdouble[\s-]?pack\b`), 2},
	{regexp.MustCompile(`(?i)\btriple[\s-]?pack\b`), 3},
}

var numericPacks = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d+)[\s-]*(?:pack|pk)\b`),
	regexp.MustCompile(`(?i)\bpack\s+of\s+(\d+)\b`),
	regexp.MustCompile(`(?i)\bbundle\s+of\s+(\d+)\b`),
	regexp.MustCompile(`(?i)\bset\s+of\s+(\d+)\b`),
	regexp.MustCompile(`(?i)\b(\d+)\s*x\b`),
	regexp.MustCompile(`(?i)\bx\s*(\d+)\b`),
}

// corporateSuffixes are stripped from the end of a brand, most specific
// variants first so ", Inc." wins over " Inc".
var corporateSuffixes = []string{
	", incorporated", " incorporated",
	", inc.", ", inc", " inc.", " inc",
	", llc.", ", llc", " llc.", " llc",
	", ltd.", ", ltd", " ltd.", " ltd",
	", corp.", ", corp", " corp.", " corp",
	" corporation", " company", " co.",
}

var (
	condForParts = regexp.MustCompile(`(?i)for[\s-]?parts|parts[\s-]?only|not[\s-]?working|as[\s-]?is|broken|defective`)
	condOpenBox  = regexp.MustCompile(`(?i)open[\s-]?box`)
	condUsed     = regexp.MustCompile(`(?i)\bused\b|pre[\s-]?owned|refurbished|second[\s-]?hand`)
	condNew      = regexp.MustCompile(`(?i)\bnew\b|\bnib\b|sealed|unopened`)
)

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "at": true, "by": true, "for": true,
	"from": true, "in": true, "is": true, "it": true, "of": true, "on": true,
	"or": true, "the": true, "to": true, "with": true,
}

var tokenSplit = regexp.MustCompile(`[\s\-_/]+`)
var spaceCollapse = regexp.MustCompile(`\s+`)

// Normalize derives a Canonical identity from a raw brand string, a freeform
// product title, and optional caller-supplied fields. It never fails: a title
// without a parseable size yields a nil Size, a title without a pack count
// yields 1, and an unrecognized condition defaults to "new".
func Normalize(brand, title string, opts Options) Canonical {
	size, sizeSpan := extractSize(title)
	packCount, packSpan := extractPackCount(title)
	if opts.PackCount > 0 {
		packCount = opts.PackCount
	}

	c := Canonical{
		Brand:       normalizeBrand(brand),
		ProductLine: productLine(title, sizeSpan, packSpan),
		Variant:     strings.TrimSpace(opts.Variant),
		Size:        size,
		PackCount:   packCount,
		Condition:   NormalizeCondition(opts.Condition),
		UPC:         strings.TrimSpace(opts.UPC),
		MPN:         strings.TrimSpace(opts.MPN),
		Keywords:    tokenize(title),
	}
	c.Hash = hashIdentity(c)
	return c
}

type span struct{ start, end int }

// extractSize runs the ordered unit patterns over the title and keeps the
// match that occurs earliest in the string. Pattern order breaks ties, which
// is what keeps "16 fl oz" from being read as plain ounces.
func extractSize(title string) (*Size, *span) {
	bestStart := -1
	var best *Size
	var bestSpan *span

	for _, p := range sizePatterns {
		loc := p.re.FindStringSubmatchIndex(title)
		if loc == nil {
			continue
		}
		if bestStart != -1 && loc[0] >= bestStart {
			continue
		}
		value, err := strconv.ParseFloat(title[loc[2]:loc[3]], 64)
		if err != nil {
			continue
		}
		bestStart = loc[0]
		best = &Size{Value: value, Unit: p.unit}
		bestSpan = &span{start: loc[0], end: loc[1]}
	}
	return best, bestSpan
}

// extractPackCount resolves the pack multiple for a title. Named multiples
// short-circuit; numeric patterns are tried in order afterwards; default 1.
func extractPackCount(title string) (int, *span) {
	for _, np := range namedPacks {
		if loc := np.re.FindStringIndex(title); loc != nil {
			return np.count, &span{start: loc[0], end: loc[1]}
		}
	}
	for _, re := range numericPacks {
		loc := re.FindStringSubmatchIndex(title)
		if loc == nil {
			continue
		}
		n, err := strconv.Atoi(title[loc[2]:loc[3]])
		if err != nil || n < 1 {
			continue
		}
		return n, &span{start: loc[0], end: loc[1]}
	}
	return 1, nil
}

// normalizeBrand lower-cases the brand and strips at most one corporate
// suffix, then trailing punctuation and whitespace.
func normalizeBrand(brand string) string {
	b := strings.ToLower(strings.TrimSpace(brand))
	for _, suffix := range corporateSuffixes {
		if strings.HasSuffix(b, suffix) {
			b = b[:len(b)-len(suffix)]
			break
		}
	}
	return strings.TrimRight(b, " \t.,-")
}

// NormalizeCondition classifies free text into the four-value condition enum.
// Empty or unrecognized input maps to "new" on purpose: resale inventory in
// this system is overwhelmingly new stock, and an unknown condition must not
// block pricing.
func NormalizeCondition(raw string) Condition {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return ConditionNew
	case condForParts.MatchString(s):
		return ConditionForParts
	case condOpenBox.MatchString(s):
		return ConditionOpenBox
	case condUsed.MatchString(s):
		return ConditionUsed
	case condNew.MatchString(s):
		return ConditionNew
	default:
		return ConditionNew
	}
}

// productLine is the lower-cased title with the detected size and pack-count
// substrings removed and whitespace collapsed.
func productLine(title string, spans ...*span) string {
	cut := make([]*span, 0, len(spans))
	for _, s := range spans {
		if s != nil {
			cut = append(cut, s)
		}
	}
	sort.Slice(cut, func(i, j int) bool { return cut[i].start > cut[j].start })

	line := title
	for _, s := range cut {
		line = line[:s.start] + " " + line[s.end:]
	}
	line = strings.ToLower(line)
	line = spaceCollapse.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// tokenize produces the sorted, deduplicated keyword set for a title:
// lower-cased tokens minus stop-words, pure digits, and single characters.
// Sorting makes the set independent of input token order.
func tokenize(title string) []string {
	seen := make(map[string]bool)
	for _, tok := range tokenSplit.Split(strings.ToLower(title), -1) {
		tok = strings.Trim(tok, ".,!?:;()[]\"'")
		if len(tok) <= 1 || stopWords[tok] || isAllDigits(tok) {
			continue
		}
		seen[tok] = true
	}
	keywords := make([]string, 0, len(seen))
	for tok := range seen {
		keywords = append(keywords, tok)
	}
	sort.Strings(keywords)
	return keywords
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// hashTuple is the exact set of fields covered by the identity hash.
// Keywords and MPN are deliberately excluded so the cache key survives
// tokenization tuning.
type hashTuple struct {
	Brand       string    `json:"brand"`
	ProductLine string    `json:"productLine"`
	Variant     string    `json:"variant"`
	Size        *Size     `json:"size"`
	PackCount   int       `json:"packCount"`
	Condition   Condition `json:"condition"`
	UPC         string    `json:"upc"`
}

func hashIdentity(c Canonical) string {
	payload, _ := json.Marshal(hashTuple{
		Brand:       c.Brand,
		ProductLine: c.ProductLine,
		Variant:     c.Variant,
		Size:        c.Size,
		PackCount:   c.PackCount,
		Condition:   c.Condition,
		UPC:         c.UPC,
	})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
