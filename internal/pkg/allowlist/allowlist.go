package allowlist

import (
	"strings"

	"github.com/snapshot-microservice/internal/pkg/errors"
)

// Matcher - allow-list хостов с поддержкой wildcard-паттернов
// ("*.wikipedia.org", "maps.example.com"). Сравнение регистронезависимое
type Matcher struct {
	patterns []string
}

// NewMatcher создает Matcher из списка паттернов
func NewMatcher(patterns []string) *Matcher {
	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			normalized = append(normalized, p)
		}
	}
	return &Matcher{patterns: normalized}
}

// Match проверяет, подходит ли хост хотя бы под один паттерн
func (m *Matcher) Match(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return false
	}
	for _, p := range m.patterns {
		if wildcardMatch(p, host) {
			return true
		}
	}
	return false
}

// wildcardMatch сопоставляет строку с паттерном, где '*' покрывает
// любую (в том числе пустую) последовательность символов
func wildcardMatch(pattern, s string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == s
	}

	parts := strings.Split(pattern, "*")

	// Фиксированные префикс и суффикс
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]

	last := parts[len(parts)-1]
	if !strings.HasSuffix(s, last) {
		return false
	}
	s = s[:len(s)-len(last)]

	// Промежуточные сегменты ищутся по порядку
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(s, part)
		if idx < 0 {
			return false
		}
		s = s[idx+len(part):]
	}
	return true
}

// Resolver классифицирует домен источника данных по allow-спискам
// и возвращает протокол загрузки
type Resolver struct {
	https *Matcher
	http  *Matcher
}

// NewResolver создает Resolver из списков https- и http-доменов
func NewResolver(httpsPatterns, httpPatterns []string) *Resolver {
	return &Resolver{
		https: NewMatcher(httpsPatterns),
		http:  NewMatcher(httpPatterns),
	}
}

// Protocol возвращает "https" или "http" для разрешенного домена.
// https-список проверяется первым
func (r *Resolver) Protocol(domain string) (string, error) {
	if r.https.Match(domain) {
		return "https", nil
	}
	if r.http.Match(domain) {
		return "http", nil
	}
	return "", errors.ErrDomainNotAllowed.WithDetails(map[string]interface{}{
		"domain": domain,
	})
}
