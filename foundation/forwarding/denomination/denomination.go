// Package denomination provides support for converting amounts between
// the units accepted by the tooling and rel, the base unit the ledger
// accounts are kept in.
package denomination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Set of units accepted by the tooling.
const (
	Rel  = "rel"
	KRel = "krel"
	MRel = "mrel"
	GRel = "grel"
)

// factors maps each unit to its value in rel.
var factors = map[string]decimal.Decimal{
	Rel:  decimal.New(1, 0),
	KRel: decimal.New(1, 3),
	MRel: decimal.New(1, 6),
	GRel: decimal.New(1, 9),
}

// Parse converts an amount expressed in the specified unit into rel.
// The conversion must produce a whole, non-negative number of rel that
// fits in 64 bits.
func Parse(amount string, unit string) (uint64, error) {
	factor, exists := factors[strings.ToLower(unit)]
	if !exists {
		return 0, fmt.Errorf("unknown unit %q, expecting one of %s", unit, Units())
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q can't be negative", amount)
	}

	rel := d.Mul(factor)
	if !rel.IsInteger() {
		return 0, fmt.Errorf("amount %s %s is not a whole number of rel", amount, unit)
	}

	bi := rel.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("amount %s %s doesn't fit in 64 bits", amount, unit)
	}

	return bi.Uint64(), nil
}

// Format converts a value in rel into the specified unit.
func Format(value uint64, unit string) (string, error) {
	factor, exists := factors[strings.ToLower(unit)]
	if !exists {
		return "", fmt.Errorf("unknown unit %q, expecting one of %s", unit, Units())
	}

	return decimal.NewFromUint64(value).Div(factor).String(), nil
}

// Units returns the accepted unit names in a stable order.
func Units() string {
	names := make([]string, 0, len(factors))
	for name := range factors {
		names = append(names, name)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}
