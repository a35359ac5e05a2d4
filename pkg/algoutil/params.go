package algoutil

import (
	"bytes"
	"net/url"
	"sort"
	"strings"
)

const (
	argSep = "&"
	kvSep  = "="
)

// ParseParams splits "k1=v1&k2=v2" into a map, values are left as is
func ParseParams(params string) map[string]string {
	m := map[string]string{}
	parts := strings.Split(params, argSep)
	for _, arg := range parts {
		// the value itself may contain "=", only split on the first one
		i := strings.Index(arg, kvSep)
		if i < 0 {
			continue
		}
		m[arg[:i]] = arg[i+1:]
	}
	return m
}

// SortParams sort the map by key in ASCII order, and concat it in
// form of "k1=v1&k2=v2", empty values are skipped
func SortParams(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	buf := &bytes.Buffer{}
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteString(kvSep)
		buf.WriteString(m[k])
		buf.WriteString(argSep)
	}
	buf.Truncate(buf.Len() - 1)
	return buf.String()
}

// Flatten keeps the first value of every key
func Flatten(values url.Values) map[string]string {
	m := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) == 0 {
			continue
		}
		m[k] = vs[0]
	}
	return m
}
