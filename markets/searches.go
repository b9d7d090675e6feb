package markets

// Search pairs a keyword query with the snapshot category its hits land in.
type Search struct {
	Query    string
	Category string
}

// Snapshot categories, in display order.
const (
	CategoryTariffs     = "tariffs"
	CategoryFed         = "fed"
	CategoryPolicy      = "policy"
	CategoryCommodities = "commodities"
)

// DefaultSearches covers the policy, macro, and commodity questions that move
// farm economics.
func DefaultSearches() []Search {
	return []Search{
		// Trade policy affecting agriculture
		{Query: "tariff china", Category: CategoryTariffs},
		{Query: "tariff canada", Category: CategoryTariffs},
		{Query: "tariff mexico", Category: CategoryTariffs},
		{Query: "trade war", Category: CategoryTariffs},
		{Query: "USMCA", Category: CategoryTariffs},
		{Query: "import export ban", Category: CategoryTariffs},

		// Fed and macro, which drive commodity prices and farm credit
		{Query: "fed rate cut", Category: CategoryFed},
		{Query: "fed rate hike", Category: CategoryFed},
		{Query: "recession 2026", Category: CategoryFed},
		{Query: "inflation rate", Category: CategoryFed},
		{Query: "interest rate", Category: CategoryFed},

		// Ag policy
		{Query: "farm bill", Category: CategoryPolicy},
		{Query: "government shutdown", Category: CategoryPolicy},
		{Query: "ethanol mandate", Category: CategoryPolicy},
		{Query: "EPA agriculture", Category: CategoryPolicy},
		{Query: "biofuel", Category: CategoryPolicy},
		{Query: "USDA", Category: CategoryPolicy},
		{Query: "food prices", Category: CategoryPolicy},

		// Commodities and weather
		{Query: "oil price", Category: CategoryCommodities},
		{Query: "drought", Category: CategoryCommodities},
		{Query: "El Nino", Category: CategoryCommodities},
		{Query: "La Nina", Category: CategoryCommodities},
		{Query: "crop production", Category: CategoryCommodities},
		{Query: "grain prices", Category: CategoryCommodities},
		{Query: "corn soybeans wheat", Category: CategoryCommodities},
	}
}

// blocklist rejects questions that leak through the ag-focused queries but
// clearly are not agriculture signal.
var blocklist = []string{
	// Crypto
	"bitcoin", "btc", "ethereum", "eth ", "crypto", "microstrategy",
	"nft", "solana", "dogecoin", "memecoin", "token price",
	// Immigration (not trade)
	"deport", "deportation", "immigration", "immigrant", "border wall",
	"asylum", "migrant",
	// Social issues unrelated to ag
	"abortion", "roe v wade", "supreme court justice",
	"marriage equality", "gender",
	// Entertainment and sports
	"oscar", "grammy", "emmy", "super bowl winner", "nba finals",
	"nfl", "mlb", "nhl", "world cup", "premier league",
	"box office", "movie", "netflix", "streaming",
	"dating", "kardashian", "celebrity",
	// Tech companies
	"tiktok ban", "twitter", "x.com", "facebook", "instagram",
	"spacex", "mars landing", "moon landing",
	"ai model", "chatgpt", "openai", "google gemini",
	// Extreme events
	"nuclear war", "world war",
	"assassination", "imprisoned",
	"alien", "ufo", "uap",
	// Health/pharma noise
	"covid vaccine mandate", "ivermectin",
	"bird flu vaccine",
	// Political personality noise
	"who will win", "approval rating",
	"twitter followers", "podcast",
	"pardon", "indictment",
}
