package catalog

type fx = map[Factor]float64

func party(id, name string, effects fx) Party {
	return Party{ID: id, Name: name, Effects: VectorOf(effects)}
}

// Default returns a fresh copy of the built-in reference data.
func Default() *Catalog {
	return &Catalog{
		Countries:      defaultCountries(),
		Assets:         defaultAssets(),
		CompanyTypes:   defaultCompanyTypes(),
		InitialFactors: defaultFactors(),
		MajorEvents:    defaultMajorEvents(),
		MinorNews:      defaultMinorNews(),
	}
}

func defaultCountries() []Country {
	return []Country{
		{
			ID: "USA", Name: "United States", TaxRate: 0.21, CompanyCostModifier: 1.0, ImmigrationCost: 10_000_000,
			LocalMarkets: []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "PFE", "MRNA", "JNJ", "CAT", "PG", "NY_RealEstate"},
			Parties: []Party{
				party("dems", "Democrats", fx{SECRegulation: 0.08, ClimateChangeImpact: -0.03, USEconomy: -0.02}),
				party("gop", "Republicans", fx{SECRegulation: -0.08, OilSupply: 0.04, USEconomy: 0.03}),
			},
			Election: &ElectionCycle{Year: 2024, Month: 11, Interval: 4},
		},
		{
			ID: "CHN", Name: "China", TaxRate: 0.25, CompanyCostModifier: 0.7, ImmigrationCost: 20_000_000,
			LocalMarkets:  []string{"TCEHY", "BABA"},
			Parties:       []Party{party("ccp", "Communist Party", nil)},
			Authoritarian: true,
		},
		{
			ID: "DEU", Name: "Germany", TaxRate: 0.30, CompanyCostModifier: 1.2, ImmigrationCost: 8_000_000,
			LocalMarkets: []string{"VOW3_DE", "SIE_DE", "SAP"},
			Parties: []Party{
				party("cdu", "CDU/CSU", fx{EUEconomy: 0.03, SECRegulation: -0.02}),
				party("spd", "SPD", fx{EUEconomy: -0.01, ClimateChangeImpact: -0.02}),
			},
			Election: &ElectionCycle{Year: 2025, Month: 2, Interval: 4},
		},
		{
			ID: "JPN", Name: "Japan", TaxRate: 0.23, CompanyCostModifier: 1.1, ImmigrationCost: 12_000_000,
			LocalMarkets: []string{"TM", "TKY_RealEstate"},
			Parties:      []Party{party("ldp", "LDP", fx{JapanEconomy: 0.02})},
		},
		{
			ID: "GBR", Name: "United Kingdom", TaxRate: 0.25, CompanyCostModifier: 1.3, ImmigrationCost: 13_000_000,
			LocalMarkets: []string{"LSE_RealEstate", "BP", "HSBC"},
			Parties: []Party{
				party("con", "Conservatives", fx{EUEconomy: 0.01, GlobalStability: 0.01}),
				party("lab", "Labour", fx{EUEconomy: -0.01, PublicSentiment: 0.02}),
			},
			Election: &ElectionCycle{Year: 2024, Month: 7, Interval: 5},
		},
		{
			ID: "AUS", Name: "Australia", TaxRate: 0.30, CompanyCostModifier: 1.2, ImmigrationCost: 9_000_000,
			LocalMarkets: []string{"SYD_RealEstate", "BHP"},
			Parties: []Party{
				party("lib", "Liberal", fx{GlobalSupplyChain: 0.02}),
				party("lab", "Labor", fx{ClimateChangeImpact: -0.02}),
			},
		},
		{
			ID: "IND", Name: "India", TaxRate: 0.22, CompanyCostModifier: 0.6, ImmigrationCost: 5_000_000,
			LocalMarkets: []string{"TTM", "RELIANCE"},
			Parties: []Party{
				party("bjp", "BJP", fx{IndiaEconomy: 0.04, AsiaTensions: 0.02}),
				party("inc", "Congress", fx{IndiaEconomy: 0.01, PublicSentiment: 0.02}),
			},
			Election: &ElectionCycle{Year: 2024, Month: 5, Interval: 5},
		},
		{
			ID: "BRA", Name: "Brazil", TaxRate: 0.34, CompanyCostModifier: 0.8, ImmigrationCost: 6_000_000,
			LocalMarkets: []string{"RIO_RealEstate", "PBR"},
			Parties: []Party{
				party("pl", "Liberal Party", fx{OilSupply: 0.02, ClimateChangeImpact: 0.03}),
				party("pt", "Workers Party", fx{PublicSentiment: 0.02, GlobalStability: -0.01}),
			},
			Election: &ElectionCycle{Year: 2026, Month: 10, Interval: 4},
		},
		{
			ID: "RUS", Name: "Russia", TaxRate: 0.20, CompanyCostModifier: 0.8, ImmigrationCost: 15_000_000,
			LocalMarkets:  []string{"RUS_SCAM"},
			Parties:       []Party{party("ur", "United Russia", nil)},
			Authoritarian: true,
		},
		{
			ID: "FRA", Name: "France", TaxRate: 0.28, CompanyCostModifier: 1.3, ImmigrationCost: 9_000_000,
			LocalMarkets: []string{"LVMUY", "TTE"},
			Parties: []Party{
				party("rem", "La République En Marche!", fx{EUEconomy: 0.02}),
				party("rn", "National Rally", fx{EUEconomy: -0.03, GlobalStability: -0.02}),
			},
			Election: &ElectionCycle{Year: 2027, Month: 4, Interval: 5},
		},
		{
			ID: "KOR", Name: "South Korea", TaxRate: 0.25, CompanyCostModifier: 0.9, ImmigrationCost: 11_000_000,
			LocalMarkets: []string{"SSNLF", "HYMTF"},
			Parties: []Party{
				party("dp", "Democratic Party", fx{AsiaTensions: -0.02}),
				party("ppp", "People Power Party", fx{AsiaTensions: 0.02, TechInnovation: 0.01}),
			},
		},
		{
			ID: "NLD", Name: "Netherlands", TaxRate: 0.25, CompanyCostModifier: 1.2, ImmigrationCost: 10_000_000,
			LocalMarkets: []string{"ASML", "UL"},
			Parties:      []Party{party("vvd", "VVD", fx{EUEconomy: 0.01})},
		},
		{
			ID: "TWN", Name: "Taiwan", TaxRate: 0.20, CompanyCostModifier: 1.0, ImmigrationCost: 14_000_000,
			LocalMarkets: []string{"TSM"},
			Parties: []Party{
				party("dpp", "DPP", fx{AsiaTensions: 0.04}),
				party("kmt", "KMT", fx{AsiaTensions: -0.03, ChinaEconomy: 0.01}),
			},
			Election: &ElectionCycle{Year: 2028, Month: 1, Interval: 4},
		},
		{
			ID: "CHE", Name: "Switzerland", TaxRate: 0.18, CompanyCostModifier: 1.5, ImmigrationCost: 25_000_000,
			LocalMarkets: []string{"RHHBY", "NVS", "UBS"},
			Parties:      []Party{party("svp", "SVP", fx{GlobalStability: 0.01})},
		},
		{
			ID: "CAN", Name: "Canada", TaxRate: 0.26, CompanyCostModifier: 1.1, ImmigrationCost: 7_000_000,
			LocalMarkets: []string{"VAN_RealEstate", "SHOP"},
			Parties: []Party{
				party("lib", "Liberal", fx{ClimateChangeImpact: -0.02}),
				party("con", "Conservative", fx{OilSupply: 0.02}),
			},
			Election: &ElectionCycle{Year: 2025, Month: 4, Interval: 4},
		},
		{
			ID: "ARE", Name: "UAE", TaxRate: 0.09, CompanyCostModifier: 1.4, ImmigrationCost: 18_000_000,
			LocalMarkets:  []string{"DBI_RealEstate"},
			Parties:       []Party{party("monarchy", "Monarchy", nil)},
			Authoritarian: true,
		},
		{
			ID: "SAU", Name: "Saudi Arabia", TaxRate: 0.20, CompanyCostModifier: 1.1, ImmigrationCost: 16_000_000,
			LocalMarkets:  []string{"RUH_RealEstate", "SAOC"},
			Parties:       []Party{party("monarchy", "Monarchy", nil)},
			Authoritarian: true,
		},
	}
}

func seed(id, name string, cat Category, price, vol, trend float64, dna fx) AssetSeed {
	return AssetSeed{
		ID:              id,
		Name:            name,
		Category:        cat,
		Price:           price,
		Volatility:      vol,
		Trend:           trend,
		DNA:             VectorOf(dna),
		ResidencyLocked: cat == RealEstate,
	}
}

func defaultAssets() []AssetSeed {
	assets := []AssetSeed{
		seed("OIL", "Crude Oil", Commodity, 75, 0.03, 0.0001, fx{GlobalStability: -0.8, USEconomy: 0.5, ChinaEconomy: 0.6, MiddleEastTension: 1.5, OilSupply: -2.0, RussiaEconomy: 0.7}),
		seed("GOLD", "Gold", Commodity, 1800, 0.015, 0, fx{GlobalStability: -1.5, USFedPolicy: -1.2, Inflation: 1.0, PublicSentiment: -0.5}),
		seed("SILVER", "Silver", Commodity, 22, 0.02, 0, fx{GlobalStability: -1.0, USFedPolicy: -0.8, Inflation: 0.8, TechInnovation: 0.3}),
		seed("COPPER", "Copper", Commodity, 4.5, 0.025, 0.0002, fx{GlobalSupplyChain: -0.8, ChinaEconomy: 1.2, USEconomy: 0.6, TechInnovation: 0.5}),
		seed("PLATINUM", "Platinum", Commodity, 950, 0.022, 0, fx{GlobalStability: -0.5, TechInnovation: 0.6, RussiaEconomy: -0.4}),
		seed("WHEAT", "Wheat", Commodity, 6, 0.04, 0.0001, fx{ClimateChangeImpact: -1.5, GlobalSupplyChain: -1.0, RussiaEconomy: 0.8, IndiaEconomy: 0.5}),

		seed("AAPL", "Apple Inc.", Tech, 170, 0.02, 0.0003, fx{USEconomy: 1.0, TechInnovation: 0.8, GlobalSupplyChain: -0.5, ChinaEconomy: 0.4, PublicSentiment: 0.3}),
		seed("GOOGL", "Alphabet Inc.", Tech, 2800, 0.021, 0.0003, fx{USEconomy: 0.8, TechInnovation: 1.2, SECRegulation: -0.6, PublicSentiment: 0.4}),
		seed("MSFT", "Microsoft Corp.", Tech, 300, 0.019, 0.0002, fx{USEconomy: 1.1, TechInnovation: 1.0, SECRegulation: -0.3, PublicSentiment: 0.2}),
		seed("AMZN", "Amazon.com, Inc.", Tech, 3400, 0.025, 0.00025, fx{USEconomy: 1.2, USJobGrowth: 0.4, GlobalSupplyChain: -0.3, PublicSentiment: 0.5}),
		seed("TSLA", "Tesla, Inc.", Tech, 700, 0.045, 0.0005, fx{TechInnovation: 1.5, OilSupply: 0.5, ChinaEconomy: 0.6, SECRegulation: -0.5, PublicSentiment: 1.0}),
		seed("NVDA", "NVIDIA Corp.", Tech, 200, 0.035, 0.0006, fx{TechInnovation: 2.0, GlobalSupplyChain: -0.7, ChinaEconomy: 0.3, USFedPolicy: -0.4}),
		seed("TSM", "TSMC", Tech, 120, 0.03, 0.0005, fx{TechInnovation: 2.2, GlobalSupplyChain: -1.8, AsiaTensions: -1.5, USEconomy: 0.9}),
		seed("SAP", "SAP SE", Tech, 130, 0.018, 0.0002, fx{EUEconomy: 1.2, TechInnovation: 0.8, USEconomy: 0.5}),
		seed("SHOP", "Shopify Inc.", Tech, 65, 0.05, 0.0004, fx{USEconomy: 1.0, PublicSentiment: 0.8, TechInnovation: 0.6}),

		seed("BTC", "Bitcoin", Crypto, 40000, 0.05, 0, fx{GlobalStability: -0.8, USFedPolicy: -1.5, SECRegulation: -2.0, PublicSentiment: 1.2, Inflation: 0.5}),
		seed("ETH", "Ethereum", Crypto, 2800, 0.06, 0.0001, fx{TechInnovation: 0.5, USFedPolicy: -1.2, SECRegulation: -1.8, PublicSentiment: 1.0, Inflation: 0.4}),
		seed("XRP", "Ripple", Crypto, 0.75, 0.08, 0, fx{SECRegulation: -2.5, PublicSentiment: 0.8}),
		seed("SOL", "Solana", Crypto, 150, 0.09, 0.0002, fx{TechInnovation: 0.8, USFedPolicy: -1.0, PublicSentiment: 1.5}),
		seed("ADA", "Cardano", Crypto, 1.2, 0.07, 0.0001, fx{TechInnovation: 0.6, PublicSentiment: 0.7}),
		seed("DOGE", "Dogecoin", Crypto, 0.15, 0.15, 0, fx{PublicSentiment: 2.5}),
		seed("SHIB", "Shiba Inu", Crypto, 0.000025, 0.20, 0, fx{PublicSentiment: 3.0}),

		seed("PFE", "Pfizer Inc.", Pharma, 50, 0.018, 0.0001, fx{PharmaDemand: 1.5, GlobalStability: -0.3, SECRegulation: -0.4}),
		seed("MRNA", "Moderna, Inc.", Pharma, 150, 0.04, 0.0002, fx{PharmaDemand: 2.0, TechInnovation: 0.5}),
		seed("JNJ", "Johnson & Johnson", Pharma, 160, 0.015, 0, fx{PharmaDemand: 1.0, USEconomy: 0.3}),
		seed("RHHBY", "Roche Holding AG", Pharma, 400, 0.016, 0, fx{PharmaDemand: 1.2, EUEconomy: 0.5}),
		seed("NVS", "Novartis AG", Pharma, 90, 0.017, 0, fx{PharmaDemand: 1.1, EUEconomy: 0.4}),

		seed("NY_RealEstate", "New York Real Estate", RealEstate, 1000, 0.005, 0.0001, fx{USEconomy: 1.5, USFedPolicy: -2.0, USJobGrowth: 1.0, GlobalStability: 0.5}),
		seed("VAN_RealEstate", "Vancouver Real Estate", RealEstate, 1200, 0.006, 0.0001, fx{ChinaEconomy: 1.0, AsiaTensions: 1.5, GlobalStability: 0.6}),
		seed("DBI_RealEstate", "Dubai Real Estate", RealEstate, 800, 0.008, 0.0002, fx{OilSupply: 1.0, MiddleEastTension: -1.0, GlobalStability: 0.8, RussiaEconomy: 0.5}),
		seed("TKY_RealEstate", "Tokyo Real Estate", RealEstate, 900, 0.004, 0, fx{JapanEconomy: 2.0, AsiaTensions: -0.5, GlobalStability: 0.4}),
		seed("LSE_RealEstate", "London Real Estate", RealEstate, 1300, 0.005, 0.0001, fx{EUEconomy: 0.8, USEconomy: 0.5, GlobalStability: 0.7}),
		seed("SYD_RealEstate", "Sydney Real Estate", RealEstate, 1100, 0.007, 0.00015, fx{ChinaEconomy: 1.2, GlobalStability: 0.5, AsiaTensions: -0.4}),
		seed("RIO_RealEstate", "Rio de Janeiro RE", RealEstate, 500, 0.01, 0.0001, fx{GlobalStability: 0.4, PublicSentiment: -0.8}),
		seed("RUH_RealEstate", "Riyadh Real Estate", RealEstate, 750, 0.009, 0.0002, fx{OilSupply: 1.2, MiddleEastTension: -0.8, GlobalStability: 0.6}),

		seed("TCEHY", "Tencent Holdings", Global, 60, 0.03, 0.0002, fx{ChinaEconomy: 1.5, SECRegulation: -1.0, AsiaTensions: -0.8}),
		seed("BABA", "Alibaba Group", Global, 120, 0.032, 0.0001, fx{ChinaEconomy: 1.8, SECRegulation: -1.2, AsiaTensions: -1.0, GlobalSupplyChain: 0.4}),
		seed("SAOC", "Saudi Aramco", Global, 11, 0.02, 0.0001, fx{OilSupply: 1.8, MiddleEastTension: -1.2, GlobalStability: 0.4}),
		seed("TM", "Toyota Motor Corp.", Global, 180, 0.018, 0.0001, fx{JapanEconomy: 1.2, GlobalSupplyChain: -0.6, OilSupply: 0.2}),
		seed("SSNLF", "Samsung Electronics", Global, 1300, 0.025, 0.0002, fx{TechInnovation: 1.0, GlobalSupplyChain: -0.8, AsiaTensions: -0.5}),
		seed("LVMUY", "LVMH", Global, 800, 0.02, 0.0002, fx{EUEconomy: 1.0, ChinaEconomy: 0.8, PublicSentiment: 0.6}),
		seed("ASML", "ASML Holding", Global, 700, 0.028, 0.0004, fx{TechInnovation: 2.5, GlobalSupplyChain: -1.5, ChinaEconomy: -0.5, USEconomy: 0.8}),
		seed("VOW3_DE", "Volkswagen AG", Global, 180, 0.022, 0, fx{EUEconomy: 1.2, GlobalSupplyChain: -0.7, OilSupply: -0.3}),
		seed("TTM", "Tata Motors", Global, 30, 0.03, 0.0003, fx{IndiaEconomy: 1.5, GlobalSupplyChain: -0.4}),
		seed("BP", "BP plc", Global, 35, 0.025, 0.0001, fx{OilSupply: -1.5, GlobalStability: -0.6, EUEconomy: 0.5, ClimateChangeImpact: -1.0}),
		seed("HSBC", "HSBC Holdings", Global, 30, 0.022, 0.0001, fx{GlobalStability: 1.0, USEconomy: 0.6, ChinaEconomy: 0.8, EUEconomy: 0.7, USFedPolicy: -0.5}),
		seed("PBR", "Petrobras", Global, 15, 0.04, 0, fx{OilSupply: -1.2, GlobalStability: -0.7}),
		seed("RUS_SCAM", "Gazprom Invest", Global, 2, 0.35, 0.005, fx{RussiaEconomy: 1.5, PublicSentiment: 0.5, GlobalStability: -1.0}),
		seed("TTE", "TotalEnergies SE", Global, 55, 0.026, 0.0001, fx{OilSupply: -1.6, EUEconomy: 0.6, ClimateChangeImpact: -0.8}),
		seed("HYMTF", "Hyundai Motor", Global, 45, 0.028, 0.0002, fx{GlobalSupplyChain: -0.7, AsiaTensions: -0.4, USEconomy: 0.5}),
		seed("UBS", "UBS Group AG", Global, 18, 0.024, 0.0001, fx{GlobalStability: 1.2, EUEconomy: 0.8, USFedPolicy: 0.6}),

		seed("CAT", "Caterpillar Inc.", Industrial, 220, 0.019, 0.0001, fx{USEconomy: 1.2, USJobGrowth: 0.8, GlobalSupplyChain: -0.3}),
		seed("SIE_DE", "Siemens AG", Industrial, 140, 0.018, 0, fx{EUEconomy: 1.2, GlobalSupplyChain: -0.5}),
		seed("BHP", "BHP Group", Industrial, 50, 0.028, 0.0002, fx{ChinaEconomy: 1.5, GlobalSupplyChain: -0.6, USEconomy: 0.4}),
		seed("RELIANCE", "Reliance Industries", Industrial, 35, 0.029, 0.0003, fx{IndiaEconomy: 1.8, OilSupply: 0.5, GlobalSupplyChain: -0.3}),

		seed("PG", "Procter & Gamble", Consumer, 150, 0.012, 0, fx{USEconomy: 0.8, GlobalStability: 0.3, Inflation: -0.2}),
		seed("UL", "Unilever PLC", Consumer, 50, 0.014, 0, fx{EUEconomy: 0.7, GlobalStability: 0.4, Inflation: -0.3}),
	}
	for i := range assets {
		switch assets[i].ID {
		case "SAOC", "PBR":
			assets[i].StateOwned = true
		case "RUS_SCAM":
			assets[i].Scam = true
		case "SIE_DE", "VOW3_DE":
			assets[i].ResidencyLocked = true
		}
	}
	return assets
}

func defaultCompanyTypes() map[CompanyType]CompanyData {
	return map[CompanyType]CompanyData{
		CompanyTech:       {BaseCost: 2_000_000, BaseIncome: 50_000, UpgradeCostMultiplier: 1.8, IncomeMultiplier: 1.7},
		CompanyMining:     {BaseCost: 5_000_000, BaseIncome: 120_000, UpgradeCostMultiplier: 2.0, IncomeMultiplier: 1.6},
		CompanyPharma:     {BaseCost: 8_000_000, BaseIncome: 150_000, UpgradeCostMultiplier: 1.9, IncomeMultiplier: 1.8},
		CompanyMedia:      {BaseCost: 1_000_000, BaseIncome: 30_000, UpgradeCostMultiplier: 1.6, IncomeMultiplier: 1.5},
		CompanyFinance:    {BaseCost: 3_000_000, BaseIncome: 75_000, UpgradeCostMultiplier: 1.7, IncomeMultiplier: 1.6},
		CompanyRealEstate: {BaseCost: 10_000_000, BaseIncome: 180_000, UpgradeCostMultiplier: 2.2, IncomeMultiplier: 1.5},
	}
}

func defaultFactors() Vector {
	return VectorOf(fx{
		GlobalStability: 0.6, USEconomy: 0.7, ChinaEconomy: 0.8, EUEconomy: 0.6,
		JapanEconomy: 0.5, IndiaEconomy: 0.7, RussiaEconomy: 0.4, MiddleEastTension: 0.6,
		AsiaTensions: 0.5, TechInnovation: 0.7, GlobalSupplyChain: 0.5, OilSupply: 0.6,
		USFedPolicy: 0.5, SECRegulation: 0.5, USJobGrowth: 0.6, PublicSentiment: 0.5,
		ClimateChangeImpact: 0.3, PharmaDemand: 0.6, Inflation: 0.5,
	})
}

func defaultMajorEvents() []EventTemplate {
	return []EventTemplate{
		{ID: "ai_breakthrough", TitleKey: "event.ai_breakthrough.title", DescriptionKey: "event.ai_breakthrough.desc",
			Effects: VectorOf(fx{TechInnovation: 0.15, PublicSentiment: 0.1})},
		{ID: "oil_embargo", TitleKey: "event.oil_embargo.title", DescriptionKey: "event.oil_embargo.desc",
			Effects: VectorOf(fx{OilSupply: -0.2, MiddleEastTension: 0.15, Inflation: 0.05})},
		{ID: "pandemic_wave", TitleKey: "event.pandemic_wave.title", DescriptionKey: "event.pandemic_wave.desc",
			Effects: VectorOf(fx{PharmaDemand: 0.25, GlobalSupplyChain: -0.15, PublicSentiment: -0.1})},
		{ID: "fed_hike", TitleKey: "event.fed_hike.title", DescriptionKey: "event.fed_hike.desc",
			Effects: VectorOf(fx{USFedPolicy: 0.2, Inflation: -0.05, USEconomy: -0.05})},
		{ID: "strait_standoff", TitleKey: "event.strait_standoff.title", DescriptionKey: "event.strait_standoff.desc",
			Effects: VectorOf(fx{AsiaTensions: 0.2, GlobalSupplyChain: -0.1, GlobalStability: -0.05})},
		{ID: "crypto_crackdown", TitleKey: "event.crypto_crackdown.title", DescriptionKey: "event.crypto_crackdown.desc",
			Effects: VectorOf(fx{SECRegulation: 0.2, PublicSentiment: -0.05})},
		{ID: "china_stimulus", TitleKey: "event.china_stimulus.title", DescriptionKey: "event.china_stimulus.desc",
			Effects: VectorOf(fx{ChinaEconomy: 0.15, GlobalSupplyChain: 0.05})},
		{ID: "heatwave", TitleKey: "event.heatwave.title", DescriptionKey: "event.heatwave.desc",
			Effects: VectorOf(fx{ClimateChangeImpact: 0.15, IndiaEconomy: -0.05})},
		{ID: "jobs_boom", TitleKey: "event.jobs_boom.title", DescriptionKey: "event.jobs_boom.desc",
			Effects: VectorOf(fx{USJobGrowth: 0.15, USEconomy: 0.05, PublicSentiment: 0.05})},
	}
}

func defaultMinorNews() []NewsTemplate {
	return []NewsTemplate{
		{ID: "mn1", Source: "Market Watch", Key: "news.minor.inflation_debate"},
		{ID: "mn2", Source: "Global Trade Org", Key: "news.minor.shipping_disruption"},
		{ID: "mn3", Source: "Tech Chronicle", Key: "news.minor.gadget_rumours"},
		{ID: "mn4", Source: "Energy Tribune", Key: "news.minor.opec_hold"},
		{ID: "mn5", Source: "Financial Times", Key: "news.minor.rates_hold"},
		{ID: "mn6", Source: "Pharma Journal", Key: "news.minor.trial_results"},
		{ID: "mn7", Source: "World News", Key: "news.minor.diplomatic_talks"},
		{ID: "mn8", Source: "Economic Forum", Key: "news.minor.manufacturing_output"},
		{ID: "mn9", Source: "Market Watch", Key: "news.minor.analyst_upgrade", BindsAsset: true},
		{ID: "mn10", Source: "Bloomberg Terminal", Key: "news.minor.unusual_volume", BindsAsset: true},
		{ID: "mn11", Source: "Reuters", Key: "news.minor.insider_filing", BindsAsset: true},
	}
}
