// Package cacherules applies configured Cache-Control defaults and
// overrides to response headers before finalization.
package cacherules

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	headermap "github.com/outbound-dev/outbound/pkg/header-map"
)

type Rules []Rule

type Rule struct {
	Prefix   string            `yaml:"prefix"`
	Path     string            `yaml:"path"`
	Default  string            `yaml:"default"`
	Override string            `yaml:"override"`
	Query    map[string]string `yaml:"query"`
	Headers  map[string]string `yaml:"headers"`
}

// Apply finds the first matching rule for the request and applies it to the
// headers. Only successful GET responses are touched.
func (r Rules) Apply(headers *headermap.Map, req *http.Request, status int) {
	if req.Method != http.MethodGet {
		return
	}
	if status != 0 && status != http.StatusOK {
		return
	}
	if rule := r.find(req); rule != nil {
		applyRule(*rule, headers)
	}
}

func applyRule(rule Rule, headers *headermap.Map) {
	if rule.Override != "" {
		log.Trace().Msg("Overriding Cache-Control header")
		headers.Set("Cache-Control", rule.Override)
	} else if rule.Default != "" && headers.Get("Cache-Control") == "" {
		log.Trace().Msg("Applying default Cache-Control header")
		headers.Set("Cache-Control", rule.Default)
	}
	for name, value := range rule.Headers {
		log.Trace().Msgf("Setting header %s", name)
		headers.Set(name, value)
	}
}

func (r Rules) find(req *http.Request) *Rule {
rulesLoop:
	for _, rule := range r {
		if rule.Path != "" && rule.Path != req.URL.Path {
			continue
		}
		if rule.Prefix != "" && !strings.HasPrefix(req.URL.Path, rule.Prefix) {
			continue
		}
		if len(rule.Query) > 0 {
			qry := req.URL.Query()
			for name, value := range rule.Query {
				if value == "" && !qry.Has(name) {
					continue rulesLoop
				} else if value != "" && qry.Get(name) != value {
					continue rulesLoop
				}
			}
		}
		return &rule
	}
	return nil
}
