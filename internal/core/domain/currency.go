package domain

import (
	"fmt"
	"strings"
)

// CurrencyCode is an ISO-4217 style three letter code, always upper case.
type CurrencyCode string

// defaultPrecision is the minor-unit precision used for codes not listed in minorUnits.
const defaultPrecision = 2

// minorUnits lists currencies whose minor unit differs from two decimals.
var minorUnits = map[CurrencyCode]int32{
	"JPY": 0,
	"KRW": 0,
	"CLP": 0,
	"VND": 0,
	"BHD": 3,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
}

// NormalizeCurrency trims and upper-cases a code and checks it has three letters.
func NormalizeCurrency(code string) (CurrencyCode, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", fmt.Errorf("currency code %q must be 3 letters", code)
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("currency code %q must be alphabetic", code)
		}
	}
	return CurrencyCode(c), nil
}

// Precision returns the number of decimal places of the currency's minor unit.
func (c CurrencyCode) Precision() int32 {
	if p, ok := minorUnits[c]; ok {
		return p
	}
	return defaultPrecision
}

func (c CurrencyCode) String() string {
	return string(c)
}

// PairKey identifies an ordered (source, target) pair. Its string form is
// the six letter concatenation used by quotation APIs, e.g. "USDPEN".
type PairKey struct {
	Source CurrencyCode
	Target CurrencyCode
}

// NewPairKey builds a PairKey.
func NewPairKey(source, target CurrencyCode) PairKey {
	return PairKey{Source: source, Target: target}
}

// ParsePairKey splits a six letter quote key such as "USDEUR".
func ParsePairKey(key string) (PairKey, error) {
	if len(key) != 6 {
		return PairKey{}, fmt.Errorf("pair key %q must be 6 letters", key)
	}
	source, err := NormalizeCurrency(key[:3])
	if err != nil {
		return PairKey{}, err
	}
	target, err := NormalizeCurrency(key[3:])
	if err != nil {
		return PairKey{}, err
	}
	return PairKey{Source: source, Target: target}, nil
}

func (p PairKey) String() string {
	return string(p.Source) + string(p.Target)
}
