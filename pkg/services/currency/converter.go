package currency

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type Kind int

const (
	// Exact means a real rate was applied (or none was needed).
	Exact Kind = iota
	// Approximate means no rate was available and the amount passed
	// through unconverted. This is a known precision compromise, kept
	// visible so callers can flag it instead of silently absorbing it.
	Approximate
)

type ConversionResult struct {
	Amount float64
	Kind   Kind
}

// RateSource fetches a single conversion rate, typically backed by the
// backend's /currency/convert endpoint.
type RateSource interface {
	GetRate(ctx context.Context, from, to string) (float64, error)
}

// Converter resolves currency conversions against a sparse rate table.
// Missing pairs degrade to a no-op conversion rather than blocking an
// aggregation pass.
type Converter struct {
	mu     sync.RWMutex
	rates  map[string]float64
	source RateSource
	warned map[string]struct{}
}

func NewConverter(source RateSource) *Converter {
	return &Converter{
		rates:  make(map[string]float64),
		source: source,
		warned: make(map[string]struct{}),
	}
}

func rateKey(from, to string) string {
	return strings.ToUpper(from) + "->" + strings.ToUpper(to)
}

// Prime fetches and caches rates for the given currency pairs. Lookup
// failures are logged and skipped; the pair simply stays unpriced.
func (c *Converter) Prime(ctx context.Context, pairs [][2]string) {
	logger := zerolog.Ctx(ctx)
	for _, p := range pairs {
		from, to := p[0], p[1]
		if from == "" || to == "" || strings.EqualFold(from, to) {
			continue
		}
		key := rateKey(from, to)

		c.mu.RLock()
		_, cached := c.rates[key]
		c.mu.RUnlock()
		if cached {
			continue
		}

		if c.source == nil {
			continue
		}
		rate, err := c.source.GetRate(ctx, from, to)
		if err != nil || rate <= 0 {
			logger.Warn().
				Err(err).
				Str("pair", key).
				Msg("rate lookup failed, pair stays unpriced")
			continue
		}

		c.mu.Lock()
		c.rates[key] = rate
		c.mu.Unlock()
	}
}

// SetRate seeds the table directly, used by tests and by callers that
// already hold a rate snapshot.
func (c *Converter) SetRate(from, to string, rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[rateKey(from, to)] = rate
}

// HasRate reports whether a direct rate exists for the pair.
func (c *Converter) HasRate(from, to string) bool {
	if from == "" || to == "" || strings.EqualFold(from, to) {
		return true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rates[rateKey(from, to)]
	return ok
}

// Convert applies the cached rate for from->to. Identity pairs and
// empty currencies convert exactly; a missing rate yields the raw
// amount flagged Approximate, logged once per pair.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) ConversionResult {
	if from == "" || to == "" || strings.EqualFold(from, to) {
		return ConversionResult{Amount: amount, Kind: Exact}
	}

	key := rateKey(from, to)
	c.mu.RLock()
	rate, ok := c.rates[key]
	c.mu.RUnlock()

	if !ok {
		c.warnOnce(ctx, key)
		return ConversionResult{Amount: amount, Kind: Approximate}
	}

	return ConversionResult{Amount: amount * rate, Kind: Exact}
}

func (c *Converter) warnOnce(ctx context.Context, key string) {
	c.mu.Lock()
	_, seen := c.warned[key]
	if !seen {
		c.warned[key] = struct{}{}
	}
	c.mu.Unlock()

	if !seen {
		zerolog.Ctx(ctx).Warn().
			Str("pair", key).
			Msg(fmt.Sprintf("no rate for %s, amounts pass through unconverted", key))
	}
}
