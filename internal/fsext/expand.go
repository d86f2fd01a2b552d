// Package fsext holds filesystem path helpers.
package fsext

import (
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"github.com/yumosx/loft/internal/env"
)

// Expand is a wrapper around [expand.Literal]. It resolves shell variables
// in s from e.
func Expand(s string, e env.Env) (string, error) {
	if s == "" {
		return "", nil
	}
	p := syntax.NewParser()
	word, err := p.Document(strings.NewReader(s))
	if err != nil {
		return "", err
	}
	cfg := &expand.Config{
		Env: expand.FuncEnviron(e.Get),
	}
	return expand.Literal(cfg, word)
}
