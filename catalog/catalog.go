// Package catalog holds the education-loan schemes, universities and degree
// types used to match a student to a lender.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"emi-planner/amortization"
)

//go:embed default_catalog.xml
var defaultCatalog []byte

const (
	// DefaultTier applies to universities missing from the catalog.
	DefaultTier = "C"

	// MaxMatches is how many schemes Match ranks.
	MaxMatches = 3

	// Sandbox defaults used when a scheme prefills loan parameters.
	PrefillPrincipal   = 800000
	PrefillTenureYears = 10
)

var (
	ErrInvalidQuery       = errors.New("invalid scheme query")
	ErrUniversityRequired = fmt.Errorf("%w: university is required", ErrInvalidQuery)
	ErrDegreeRequired     = fmt.Errorf("%w: degree is required", ErrInvalidQuery)
	ErrInvalidAmount      = fmt.Errorf("%w: loan amount must be positive", ErrInvalidQuery)
	ErrSchemeNotFound     = errors.New("scheme not found")
)

// Rank labels for matched schemes, best first.
var ranks = []string{"winner", "runner_up", "backup"}

type Scheme struct {
	ID                 string   `json:"id"`
	BankName           string   `json:"bank_name"`
	SchemeName         string   `json:"scheme_name"`
	InterestRate       float64  `json:"interest_rate"`
	MaxAmount          float64  `json:"max_amount"`
	MoratoriumYears    int      `json:"moratorium_years"`
	CollateralRequired bool     `json:"collateral_required"`
	ProcessingFee      float64  `json:"processing_fee"`
	Tiers              []string `json:"tiers"`
}

// Eligible reports whether the scheme lends to the tier.
func (s Scheme) Eligible(tier string) bool {
	for _, t := range s.Tiers {
		if t == tier {
			return true
		}
	}
	return false
}

type University struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

type MatchInput struct {
	University string  `json:"university"`
	Degree     string  `json:"degree"`
	LoanAmount float64 `json:"loan_amount"`
}

type Match struct {
	Rank   string `json:"rank"`
	Scheme Scheme `json:"scheme"`
}

type MatchResult struct {
	University string  `json:"university"`
	Tier       string  `json:"tier"`
	Matches    []Match `json:"matches"`
}

// Catalog is read-only after Parse.
type Catalog struct {
	schemes      []Scheme
	universities []University
	degrees      []string
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file, falling back to the embedded one for an empty path.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog XML document.
func Parse(data []byte) (*Catalog, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse catalog XML: %w", err)
	}
	root := doc.SelectElement("catalog")
	if root == nil {
		return nil, errors.New("catalog element not found in XML")
	}

	c := &Catalog{}
	for _, el := range root.FindElements("./universities/university") {
		name := strings.TrimSpace(el.Text())
		if name == "" {
			continue
		}
		c.universities = append(c.universities, University{
			Name: name,
			Tier: el.SelectAttrValue("tier", DefaultTier),
		})
	}
	for _, el := range root.FindElements("./degrees/degree") {
		if d := strings.TrimSpace(el.Text()); d != "" {
			c.degrees = append(c.degrees, d)
		}
	}
	for _, el := range root.FindElements("./schemes/scheme") {
		s, err := parseScheme(el)
		if err != nil {
			return nil, err
		}
		c.schemes = append(c.schemes, s)
	}
	if len(c.schemes) == 0 {
		return nil, errors.New("no schemes found in catalog")
	}
	return c, nil
}

func parseScheme(el *etree.Element) (Scheme, error) {
	s := Scheme{
		ID:         el.SelectAttrValue("id", ""),
		BankName:   childText(el, "bank"),
		SchemeName: childText(el, "name"),
		Tiers:      strings.Fields(childText(el, "tiers")),
	}
	if s.ID == "" {
		return Scheme{}, fmt.Errorf("scheme %q has no id", s.SchemeName)
	}

	var err error
	if s.CollateralRequired, err = strconv.ParseBool(el.SelectAttrValue("collateral", "false")); err != nil {
		return Scheme{}, fmt.Errorf("scheme %s: collateral: %w", s.ID, err)
	}
	if s.InterestRate, err = strconv.ParseFloat(childText(el, "rate"), 64); err != nil {
		return Scheme{}, fmt.Errorf("scheme %s: rate: %w", s.ID, err)
	}
	if s.MaxAmount, err = strconv.ParseFloat(childText(el, "maxAmount"), 64); err != nil {
		return Scheme{}, fmt.Errorf("scheme %s: maxAmount: %w", s.ID, err)
	}
	if s.MoratoriumYears, err = strconv.Atoi(childText(el, "moratorium")); err != nil {
		return Scheme{}, fmt.Errorf("scheme %s: moratorium: %w", s.ID, err)
	}
	if fee := childText(el, "processingFee"); fee != "" {
		if s.ProcessingFee, err = strconv.ParseFloat(fee, 64); err != nil {
			return Scheme{}, fmt.Errorf("scheme %s: processingFee: %w", s.ID, err)
		}
	}
	return s, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func (c *Catalog) Schemes() []Scheme {
	out := make([]Scheme, len(c.schemes))
	copy(out, c.schemes)
	return out
}

func (c *Catalog) Degrees() []string {
	out := make([]string, len(c.degrees))
	copy(out, c.degrees)
	return out
}

// Scheme looks up a scheme by ID.
func (c *Catalog) Scheme(id string) (Scheme, error) {
	for _, s := range c.schemes {
		if s.ID == id {
			return s, nil
		}
	}
	return Scheme{}, fmt.Errorf("%w: %s", ErrSchemeNotFound, id)
}

// TierOf returns the university's tier, DefaultTier when unknown.
func (c *Catalog) TierOf(university string) string {
	for _, u := range c.universities {
		if u.Name == university {
			return u.Tier
		}
	}
	return DefaultTier
}

// SearchUniversities filters universities by case-insensitive substring.
// An empty query returns all of them.
func (c *Catalog) SearchUniversities(query string) []University {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]University, 0, len(c.universities))
	for _, u := range c.universities {
		if q == "" || strings.Contains(strings.ToLower(u.Name), q) {
			out = append(out, u)
		}
	}
	return out
}

// Match ranks the cheapest schemes that lend to the university's tier and
// cover the loan amount.
func (c *Catalog) Match(in MatchInput) (MatchResult, error) {
	if strings.TrimSpace(in.University) == "" {
		return MatchResult{}, ErrUniversityRequired
	}
	if strings.TrimSpace(in.Degree) == "" {
		return MatchResult{}, ErrDegreeRequired
	}
	if !c.knownDegree(in.Degree) {
		return MatchResult{}, fmt.Errorf("%w: unknown degree %q", ErrInvalidQuery, in.Degree)
	}
	if in.LoanAmount <= 0 {
		return MatchResult{}, ErrInvalidAmount
	}

	tier := c.TierOf(in.University)
	eligible := make([]Scheme, 0, len(c.schemes))
	for _, s := range c.schemes {
		if s.Eligible(tier) && s.MaxAmount >= in.LoanAmount {
			eligible = append(eligible, s)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].InterestRate < eligible[j].InterestRate
	})

	res := MatchResult{University: in.University, Tier: tier, Matches: []Match{}}
	for i, s := range eligible {
		if i == MaxMatches {
			break
		}
		res.Matches = append(res.Matches, Match{Rank: ranks[i], Scheme: s})
	}
	return res, nil
}

// Cheapest returns the lowest-rate scheme in the catalog.
func (c *Catalog) Cheapest() Scheme {
	best := c.schemes[0]
	for _, s := range c.schemes[1:] {
		if s.InterestRate < best.InterestRate {
			best = s
		}
	}
	return best
}

// Prefill builds sandbox loan parameters from a scheme.
func Prefill(s Scheme) amortization.LoanParameters {
	return amortization.LoanParameters{
		Name:              s.BankName + " — " + s.SchemeName,
		Principal:         PrefillPrincipal,
		AnnualRatePercent: s.InterestRate,
		TenureYears:       PrefillTenureYears,
		MoratoriumYears:   s.MoratoriumYears,
	}
}

func (c *Catalog) knownDegree(degree string) bool {
	for _, d := range c.degrees {
		if d == degree {
			return true
		}
	}
	return false
}
