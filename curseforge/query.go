package curseforge

import (
	"fmt"
	"net/url"
	"strings"
)

type queryParam struct {
	key   string
	value string
}

// query keeps parameters in the order they were added.
type query []queryParam

func (q *query) add(key string, value any) {
	*q = append(*q, queryParam{key: key, value: fmt.Sprint(value)})
}

// addInt skips zero, which the API treats the same as absent.
func (q *query) addInt(key string, value int) {
	if value != 0 {
		q.add(key, value)
	}
}

func (q *query) addString(key, value string) {
	if value != "" {
		q.add(key, value)
	}
}

func (q *query) addBool(key string, value bool) {
	if value {
		q.add(key, value)
	}
}

// encode escapes keys and values independently, like encodeURIComponent.
func (q query) encode() string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		parts = append(parts, escapeComponent(p.key)+"="+escapeComponent(p.value))
	}
	return strings.Join(parts, "&")
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
