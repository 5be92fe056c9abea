package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokIdent tokenKind = iota + 1
	tokString
	tokNumber
	tokBool
	tokNull
	tokEq
	tokNeq
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

func (k tokenKind) literal() bool {
	switch k {
	case tokString, tokNumber, tokBool, tokNull:
		return true
	default:
		return false
	}
}

type token struct {
	kind tokenKind
	text string
}

var operators = []struct {
	text string
	kind tokenKind
}{
	{"==", tokEq},
	{"!=", tokNeq},
	{"&&", tokAnd},
	{"||", tokOr},
	{"!", tokNot},
	{"(", tokLParen},
	{")", tokRParen},
}

func scan(input string) ([]token, error) {
	var tokens []token
	rest := input

outer:
	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			return tokens, nil
		}

		for _, op := range operators {
			if strings.HasPrefix(rest, op.text) {
				tokens = append(tokens, token{kind: op.kind, text: op.text})
				rest = rest[len(op.text):]
				continue outer
			}
		}

		switch rest[0] {
		case '"', '\'':
			text, remaining, err := scanString(rest)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokString, text: text})
			rest = remaining
			continue
		case '=', '&', '|':
			return nil, fmt.Errorf("visibility/expr: unexpected %q", rest[0])
		}

		end := strings.IndexFunc(rest, func(r rune) bool {
			return unicode.IsSpace(r) || strings.ContainsRune("()!=&|\"'", r)
		})
		if end < 0 {
			end = len(rest)
		}
		word := rest[:end]
		rest = rest[end:]
		tokens = append(tokens, classify(word))
	}
}

func scanString(input string) (string, string, error) {
	quote := input[0]
	escaped := false
	for idx := 1; idx < len(input); idx++ {
		ch := input[idx]
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == quote:
			body := input[1:idx]
			if quote == '\'' {
				body = strings.ReplaceAll(body, `\'`, `'`)
				body = strings.ReplaceAll(body, `"`, `\"`)
			}
			text, err := strconv.Unquote(`"` + body + `"`)
			if err != nil {
				return "", "", fmt.Errorf("visibility/expr: invalid string literal: %w", err)
			}
			return text, input[idx+1:], nil
		}
	}
	return "", "", fmt.Errorf("visibility/expr: unterminated string literal")
}

func classify(word string) token {
	switch strings.ToLower(word) {
	case "true", "false":
		return token{kind: tokBool, text: strings.ToLower(word)}
	case "null", "nil":
		return token{kind: tokNull, text: "null"}
	}
	if _, err := strconv.ParseFloat(word, 64); err == nil {
		return token{kind: tokNumber, text: word}
	}
	return token{kind: tokIdent, text: word}
}
