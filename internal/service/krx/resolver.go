package krx

import (
	"regexp"
	"strconv"
	"strings"

	"KIndex/internal/domain/models"
	"KIndex/pkg/util"
)

// ResolverConfig selects and names the target contract universe.
type ResolverConfig struct {
	ProductLabel  string
	SessionLabel  string
	NamePrefix    string
	SessionSuffix string
	// LooseMonthMatch re-enables the older bare-YYYYMM heuristic as a
	// secondary fallback for providers that never adopted the strict name
	// format. Off by default.
	LooseMonthMatch bool
	// PreferPast flips the nearest-month tie-break for the settlement-day
	// edge case, where the desired behavior is a policy choice.
	PreferPast bool
}

// Resolver deterministically picks the single relevant contract row out of a
// noisy, inconsistently-labeled result set.
type Resolver struct {
	cfg    ResolverConfig
	strict *regexp.Regexp
	loose  *regexp.Regexp
}

func NewResolver(cfg ResolverConfig) *Resolver {
	// Fixed prefix, capitalized session marker, YYYYMM token, fixed session
	// suffix in parentheses. Rows off this format are excluded outright;
	// that is stricter than the loose heuristic on purpose, to kill false
	// positives from spread and non-front products.
	strict := regexp.MustCompile(
		`^` + regexp.QuoteMeta(cfg.NamePrefix) + ` F (\d{6}) \(` + regexp.QuoteMeta(cfg.SessionSuffix) + `\)$`,
	)
	return &Resolver{
		cfg:    cfg,
		strict: strict,
		loose:  regexp.MustCompile(`(\d{6})`),
	}
}

// candidate is one row that survived filtering and month parsing.
type candidate struct {
	serial int
	month  string
	asOf   string
	name   string
	row    map[string]any
}

// Resolve picks the nearest-month row relative to baseSerial (year*12+month).
// A nil result is not a failure; it means no row survived the strict filter.
func (r *Resolver) Resolve(rows []map[string]any, baseSerial int) *models.ContractRow {
	var cands []candidate
	for _, row := range rows {
		product := field(row, "PROD_NM", "prodNm", "product")
		session := field(row, "MKT_NM", "mktNm", "market")
		if !labelMatches(product, r.cfg.ProductLabel) || !labelMatches(session, r.cfg.SessionLabel) {
			continue
		}

		name := field(row, "ISU_NM", "isuNm", "name")
		month, ok := r.parseMonth(name)
		if !ok {
			// Unparseable names are excluded, never fatal.
			continue
		}
		serial, ok := monthSerial(month)
		if !ok {
			continue
		}

		cands = append(cands, candidate{
			serial: serial,
			month:  month,
			asOf:   field(row, "TRD_DD", "trdDd", "BAS_DD", "basDd"),
			name:   name,
			row:    row,
		})
	}
	if len(cands) == 0 {
		return nil
	}

	// Pick the winning month: minimize (|serial-base|, tie-break on the
	// future-or-equal side, serial).
	best := cands[0]
	for _, c := range cands[1:] {
		if r.betterMonth(c, best, baseSerial) {
			best = c
		}
	}

	// Within the winning month, the greatest (asOfDate, name) pair wins:
	// the most recent as-of date, tie-broken by name.
	for _, c := range cands {
		if c.serial != best.serial {
			continue
		}
		if c.asOf > best.asOf || (c.asOf == best.asOf && c.name > best.name) {
			best = c
		}
	}

	return &models.ContractRow{
		ContractMonth:   best.month,
		AsOfDate:        best.asOf,
		Name:            best.name,
		SettlementPrice: util.CleanNumber(field(best.row, "SETL_PRC", "TDD_CLSPRC", "setlPrice", "settlePrice")),
		PriceDelta:      util.CleanNumber(field(best.row, "CMP_PRVDD_PRC", "cmpPrevddPrc", "change")),
		ProductLabel:    field(best.row, "PROD_NM", "prodNm", "product"),
		SessionLabel:    field(best.row, "MKT_NM", "mktNm", "market"),
	}
}

// betterMonth reports whether month candidate a beats b relative to base.
func (r *Resolver) betterMonth(a, b candidate, base int) bool {
	if a.serial == b.serial {
		return false
	}
	distA, distB := abs(a.serial-base), abs(b.serial-base)
	if distA != distB {
		return distA < distB
	}
	futureA, futureB := a.serial >= base, b.serial >= base
	if futureA != futureB {
		if r.cfg.PreferPast {
			return !futureA
		}
		return futureA
	}
	return a.serial < b.serial
}

func (r *Resolver) parseMonth(name string) (string, bool) {
	if m := r.strict.FindStringSubmatch(name); m != nil {
		return m[1], true
	}
	if r.cfg.LooseMonthMatch {
		if m := r.loose.FindStringSubmatch(name); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// monthSerial converts YYYYMM to year*12+month for distance arithmetic.
func monthSerial(yyyymm string) (int, bool) {
	if len(yyyymm) != 6 {
		return 0, false
	}
	year, err := strconv.Atoi(yyyymm[:4])
	if err != nil {
		return 0, false
	}
	month, err := strconv.Atoi(yyyymm[4:])
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return year*12 + month, true
}

// SerialOf returns the serial for a YYYYMM basis month, for callers
// computing the "current month" anchor.
func SerialOf(year, month int) int { return year*12 + month }

// labelMatches is a whitespace-insensitive exact/substring match.
func labelMatches(have, want string) bool {
	if want == "" {
		return true
	}
	return strings.Contains(util.NormalizeLabel(have), util.NormalizeLabel(want))
}

// field pulls the first present key out of an inconsistently-cased row.
func field(row map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := row[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			// Plain notation: %v falls back to %g, whose scientific form
			// breaks the lexicographic as-of comparison.
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
