// Package catalog holds the static reference data the simulation reads:
// countries, asset seeds, company types and the event pools. A Catalog is
// built once and passed to the engine explicitly.
package catalog

import "sort"

type Category string

const (
	Commodity  Category = "Commodity"
	Tech       Category = "Tech"
	Crypto     Category = "Crypto"
	Pharma     Category = "Pharma"
	RealEstate Category = "Real Estate"
	Global     Category = "Global"
	Industrial Category = "Industrial"
	Consumer   Category = "Consumer"
)

func Categories() []Category {
	return []Category{Commodity, Tech, Crypto, Pharma, RealEstate, Global, Industrial, Consumer}
}

func (c Category) Valid() bool {
	for _, k := range Categories() {
		if k == c {
			return true
		}
	}
	return false
}

type Party struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Effects Vector `json:"effects"`
}

type ElectionCycle struct {
	Year     int `json:"year"`
	Month    int `json:"month"`
	Interval int `json:"interval"`
}

// Due reports whether an election falls in the given month.
func (e ElectionCycle) Due(year, month int) bool {
	if e.Interval <= 0 || year < e.Year || month != e.Month {
		return false
	}
	return (year-e.Year)%e.Interval == 0
}

type Country struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	TaxRate             float64        `json:"tax_rate"`
	CompanyCostModifier float64        `json:"company_cost_modifier"`
	LocalMarkets        []string       `json:"local_markets"`
	ImmigrationCost     float64        `json:"immigration_cost"`
	Parties             []Party        `json:"parties"`
	Election            *ElectionCycle `json:"election,omitempty"`
	Authoritarian       bool           `json:"authoritarian,omitempty"`
}

func (c Country) HasLocalMarket(assetID string) bool {
	for _, id := range c.LocalMarkets {
		if id == assetID {
			return true
		}
	}
	return false
}

func (c Country) Party(id string) (Party, bool) {
	for _, p := range c.Parties {
		if p.ID == id {
			return p, true
		}
	}
	return Party{}, false
}

type AssetSeed struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	Price           float64  `json:"price"`
	Volatility      float64  `json:"volatility"`
	Trend           float64  `json:"trend"`
	DNA             Vector   `json:"dna"`
	StateOwned      bool     `json:"state_owned,omitempty"`
	Scam            bool     `json:"scam,omitempty"`
	ResidencyLocked bool     `json:"residency_locked,omitempty"`
}

type CompanyType string

const (
	CompanyTech       CompanyType = "tech"
	CompanyMining     CompanyType = "mining"
	CompanyPharma     CompanyType = "pharma"
	CompanyMedia      CompanyType = "media"
	CompanyFinance    CompanyType = "finance"
	CompanyRealEstate CompanyType = "real_estate"
)

type CompanyData struct {
	BaseCost              float64 `json:"base_cost"`
	BaseIncome            float64 `json:"base_income"`
	UpgradeCostMultiplier float64 `json:"upgrade_cost_multiplier"`
	IncomeMultiplier      float64 `json:"income_multiplier"`
}

// EventTemplate is one entry of the major event pool.
type EventTemplate struct {
	ID             string `json:"id"`
	TitleKey       string `json:"title_key"`
	DescriptionKey string `json:"description_key"`
	Effects        Vector `json:"effects"`
}

// NewsTemplate is one entry of the minor news pool. BindsAsset templates get a
// random asset id as their "asset" parameter.
type NewsTemplate struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	Key        string `json:"key"`
	BindsAsset bool   `json:"binds_asset,omitempty"`
}

type Catalog struct {
	Countries      []Country                   `json:"countries"`
	Assets         []AssetSeed                 `json:"assets"`
	CompanyTypes   map[CompanyType]CompanyData `json:"company_types"`
	InitialFactors Vector                      `json:"initial_factors"`
	MajorEvents    []EventTemplate             `json:"major_events"`
	MinorNews      []NewsTemplate              `json:"minor_news"`
}

func (c *Catalog) Country(id string) (Country, bool) {
	for _, country := range c.Countries {
		if country.ID == id {
			return country, true
		}
	}
	return Country{}, false
}

func (c *Catalog) Asset(id string) (AssetSeed, bool) {
	for _, a := range c.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return AssetSeed{}, false
}

func (c *Catalog) Company(t CompanyType) (CompanyData, bool) {
	d, ok := c.CompanyTypes[t]
	return d, ok
}

// CompanyTypeNames returns the company types sorted by name.
func (c *Catalog) CompanyTypeNames() []CompanyType {
	out := make([]CompanyType, 0, len(c.CompanyTypes))
	for t := range c.CompanyTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
