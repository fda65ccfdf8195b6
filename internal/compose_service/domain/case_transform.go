package domain

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Record is a loosely typed backend record (a contact, a conversation).
// Keys are whatever the producing side used; CamelizeKeys normalizes them.
type Record map[string]any

// CamelCase converts a single snake_case key to camelCase.
// "custom_field_name" -> "customFieldName", "phoneNumber" -> "phoneNumber".
// Only the first letter of each token is touched, so already camelCased keys
// come back unchanged. All-caps tokens are treated as words ("ID" -> "id").
func CamelCase(key string) string {
	if !strings.Contains(key, "_") {
		return lowerFirst(normalizeAcronym(key))
	}
	var b strings.Builder
	b.Grow(len(key))
	first := true
	for _, token := range strings.Split(key, "_") {
		if token == "" {
			continue
		}
		if first {
			b.WriteString(lowerFirst(normalizeAcronym(token)))
			first = false
			continue
		}
		b.WriteString(upperFirst(normalizeAcronym(token)))
	}
	if b.Len() == 0 {
		return key
	}
	return b.String()
}

// SnakeCase converts a camelCase key to snake_case ("ccEmails" -> "cc_emails").
func SnakeCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CamelizeKeys returns a copy of v with every mapping key converted by
// CamelCase, at any depth. Sequences are mapped element-wise. Scalars and any
// other value (structs, time.Time, []byte, ...) are returned unchanged.
func CamelizeKeys(v any) any {
	switch t := v.(type) {
	case Record:
		return Record(camelizeMap(t))
	case map[string]any:
		return camelizeMap(t)
	case []Record:
		out := make([]Record, len(t))
		for i, r := range t {
			out[i] = Record(camelizeMap(r))
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, m := range t {
			out[i] = camelizeMap(m)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CamelizeKeys(e)
		}
		return out
	default:
		return v
	}
}

// CamelizeRecords applies CamelizeKeys to each record. nil in, empty out.
func CamelizeRecords(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, Record(camelizeMap(r)))
	}
	return out
}

func camelizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	// Sorted so that key collisions ("first_name" vs "firstName") resolve the
	// same way on every call: a key already in camel form wins.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ck := CamelCase(k)
		if _, taken := out[ck]; taken && ck != k {
			continue
		}
		out[ck] = CamelizeKeys(m[k])
	}
	return out
}

func normalizeAcronym(token string) string {
	hasLetter := false
	for _, r := range token {
		if unicode.IsLower(r) {
			return token
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if !hasLetter || utf8.RuneCountInString(token) < 2 {
		return token
	}
	return strings.ToLower(token)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
