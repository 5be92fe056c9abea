package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// sanitizeLabel keeps inline emphasis in labels ("Email <em>(work)</em>") and
// strips everything else.
func sanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(labelSanitizer().Sanitize(trimmed))
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "em", "i", "small", "abbr", "span", "code")
		policy.AllowAttrs("title").OnElements("abbr", "span")
		policy.AllowAttrs("class").OnElements("span", "small")
		labelPolicy = policy
	})
	return labelPolicy
}
