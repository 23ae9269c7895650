package domain

// Package is a website package sold with monthly or annual billing.
type Package struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Monthly     float64  `json:"monthly"`
	Annual      float64  `json:"annual"`
	Popular     bool     `json:"popular"`
	Features    []string `json:"features"`
}

// AddOn is an optional recurring extra.
type AddOn struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Monthly     float64 `json:"monthly"`
	Annual      float64 `json:"annual"`
}

type Tier string

const (
	TierBasic     Tier = "basic"
	TierBusiness  Tier = "business"
	TierCorporate Tier = "corporate"
)

func (t Tier) Valid() bool {
	return t == TierBasic || t == TierBusiness || t == TierCorporate
}

// Service is a one-time service priced per tier.
type Service struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Features    []string         `json:"features"`
	Pricing     map[Tier]float64 `json:"pricing"`
}
