// Package extract defines the contract between platform scrapers and the
// normalization layer: a generic key/value record shape, plus the ordered
// fallback chain that tries progressively less reliable sources until one
// of them yields data.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Record is one raw listing as pulled from a source, before any
// normalization. Values are loosely typed: strings, json numbers, bools and
// nested arrays all occur depending on the vendor.
type Record map[string]any

// String probes keys in priority order and returns the first present,
// non-empty value coerced to a string. The key order is the vendor-variant
// resolution policy: put the most trustworthy field name first.
func (r Record) String(keys ...string) string {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		s := coerceString(v)
		if s != "" {
			return s
		}
	}
	return ""
}

// Strings returns a string slice value, coercing each element.
func (r Record) Strings(key string) []string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		s := coerceString(item)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		// json numbers decode as float64, keep integers clean
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return ""
	}
}

// Strategy is one named way of obtaining raw records for a theater, e.g. a
// REST endpoint or an embedded-script scan.
type Strategy struct {
	Name string
	Run  func(ctx context.Context) ([]Record, error)
}

// Attempt is the outcome of running one strategy. Err distinguishes a
// strategy that itself failed from one that simply found nothing.
type Attempt struct {
	Strategy string
	Records  int
	Err      error
}

// Errs collects the errors out of a list of attempts.
func Errs(attempts []Attempt) []error {
	var errs []error
	for _, a := range attempts {
		if a.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.Strategy, a.Err))
		}
	}
	return errs
}

// RunChain executes strategies in order and stops at the first one that
// yields a non-empty record set. A strategy's own failure never aborts the
// chain: it is recorded in the attempts and the next strategy runs. When
// every strategy comes back empty or broken the records are nil and the
// attempts tell the story.
func RunChain(ctx context.Context, strategies []Strategy) ([]Record, []Attempt) {
	var attempts []Attempt

	for _, strategy := range strategies {
		records, err := strategy.Run(ctx)
		attempts = append(attempts, Attempt{
			Strategy: strategy.Name,
			Records:  len(records),
			Err:      err,
		})
		if err != nil {
			slog.WarnContext(ctx, "extraction strategy failed",
				"strategy", strategy.Name, "err", err)
			continue
		}
		if len(records) > 0 {
			slog.DebugContext(ctx, "extraction strategy succeeded",
				"strategy", strategy.Name, "records", len(records))
			return records, attempts
		}
		slog.DebugContext(ctx, "extraction strategy found nothing",
			"strategy", strategy.Name)
	}

	return nil, attempts
}
