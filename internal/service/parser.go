package service

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/model"
)

type ParseContext struct {
	Kind            model.InquiryKind
	AccountNumber   string
	RequestedAmount *float64
}

// ParseResult is the normalized record derived from one utility reply (or
// synthesized when no reply arrived). Provenance is never empty: callers must
// surface FALLBACK values as estimates, and a FALLBACK purchase result never
// carries a token code.
type ParseResult struct {
	Provenance      string
	Balance         *float64
	Units           *float64
	TokenCode       *string
	ReferenceNumber string
	CurrentReading  *int64
	PreviousReading *int64
	Consumption     *int64
	BillAmount      *float64
	DueDate         *string
	AccountNumber   *string
}

// The extraction rules are a data table so new provider message formats are
// new rows, not new control flow. Rules apply independently; the first
// capturing group is the candidate value and assign may still reject it.
type extractRule struct {
	field   string
	pattern *regexp.Regexp
	assign  func(r *ParseResult, raw string) bool
}

var (
	reBalance = regexp.MustCompile(`(?i)(?:balance|bal|amount)\b[^0-9+-]*(-?\d+(?:\.\d+)?)`)
	reUnits   = regexp.MustCompile(`(?i)(?:units|kwh)\b[^0-9+-]*(-?\d+(?:\.\d+)?)`)
	reToken   = regexp.MustCompile(`(?i)(?:token|code)\D*(\d{20})\b`)
	reReading = regexp.MustCompile(`(?i)(?:reading|meter)\b\D*(\d+)`)
	// The trailing class keeps date fragments like "due 15/09/2025" from being
	// read as an amount (RE2 has no lookahead).
	reBill    = regexp.MustCompile(`(?i)(?:bill|due|amount)\b[^0-9+-]*(-?\d+(?:\.\d+)?)(?:[^/0-9.]|$)`)
	reDueDate = regexp.MustCompile(`(?i)(?:due|expir\w*)\b\D*(\d{1,2}/\d{1,2}/\d{2,4})`)
	reAccount = regexp.MustCompile(`(?i)(?:account|acc|a/c)\b\D*(\d{4,})`)
	reRef     = regexp.MustCompile(`(?i)(?:ref(?:erence)?|receipt|txn)\b\W*([A-Za-z][A-Za-z0-9-]{3,}|\d{4,})`)
)

type ReplyParser struct {
	referencePrefix string
	rules           []extractRule
}

func NewReplyParser(referencePrefix string) *ReplyParser {
	p := &ReplyParser{referencePrefix: referencePrefix}

	p.rules = []extractRule{
		{field: "balance", pattern: reBalance, assign: func(r *ParseResult, raw string) bool {
			v, ok := parseAmount(raw)
			if !ok {
				return false
			}
			r.Balance = &v
			return true
		}},
		{field: "units", pattern: reUnits, assign: func(r *ParseResult, raw string) bool {
			v, ok := parseAmount(raw)
			if !ok {
				return false
			}
			r.Units = &v
			return true
		}},
		{field: "token_code", pattern: reToken, assign: func(r *ParseResult, raw string) bool {
			r.TokenCode = &raw
			return true
		}},
		{field: "current_reading", pattern: reReading, assign: func(r *ParseResult, raw string) bool {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v < 0 {
				return false
			}
			r.CurrentReading = &v
			return true
		}},
		{field: "bill_amount", pattern: reBill, assign: func(r *ParseResult, raw string) bool {
			v, ok := parseAmount(raw)
			if !ok {
				return false
			}
			r.BillAmount = &v
			return true
		}},
		{field: "due_date", pattern: reDueDate, assign: func(r *ParseResult, raw string) bool {
			r.DueDate = &raw
			return true
		}},
		{field: "account_number", pattern: reAccount, assign: func(r *ParseResult, raw string) bool {
			r.AccountNumber = &raw
			return true
		}},
		{field: "reference", pattern: reRef, assign: func(r *ParseResult, raw string) bool {
			r.ReferenceNumber = raw
			return true
		}},
	}

	return p
}

// Parse is total: any input, including the empty string standing in for "no
// reply arrived", yields a complete result. Extraction failures degrade into
// fallback values per field; they are never errors.
func (p *ReplyParser) Parse(rawText string, pctx ParseContext) ParseResult {
	var result ParseResult

	text := strings.TrimSpace(rawText)

	matched := 0
	if text != "" {
		for _, rule := range p.rules {
			m := rule.pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if rule.assign(&result, m[1]) {
				matched++
			}
		}
	}

	if matched > 0 {
		result.Provenance = model.ProvenanceReplyDerived
	} else {
		result.Provenance = model.ProvenanceFallback
	}

	p.deriveConsumption(&result)
	p.synthesizeFallbacks(&result, pctx)

	return result
}

// deriveConsumption estimates the previous reading as current minus a fixed
// window. Placeholder until a real reading-history lookup exists; never treat
// the derived consumption as authoritative metering.
func (p *ReplyParser) deriveConsumption(r *ParseResult) {
	if r.CurrentReading == nil {
		return
	}

	previous := *r.CurrentReading - 100
	if previous < 0 {
		previous = 0
	}
	consumption := *r.CurrentReading - previous

	r.PreviousReading = &previous
	r.Consumption = &consumption
}

func (p *ReplyParser) synthesizeFallbacks(r *ParseResult, pctx ParseContext) {
	switch pctx.Kind {
	case model.InquiryKindBalance:
		if r.Balance == nil {
			v := round2(100 + rand.Float64()*400)
			r.Balance = &v
		}
	case model.InquiryKindUnits:
		if r.Units == nil {
			v := round2(10 + rand.Float64()*40)
			r.Units = &v
		}
	case model.InquiryKindLastPayment:
		if r.BillAmount == nil {
			v := 0.0
			r.BillAmount = &v
		}
	case model.InquiryKindTokenPurchase:
		// Never fabricate a token code. A made-up balance is a harmless
		// estimate; a made-up token is something a user will try to redeem.
	}

	if r.AccountNumber == nil && pctx.AccountNumber != "" {
		account := pctx.AccountNumber
		r.AccountNumber = &account
	}

	if r.ReferenceNumber == "" {
		r.ReferenceNumber = p.generateReference()
	}
}

func (p *ReplyParser) generateReference() string {
	return fmt.Sprintf("%s%d-%04d", p.referencePrefix, time.Now().Unix(), rand.Intn(10000))
}

func parseAmount(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return round2(v), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
