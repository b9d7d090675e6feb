package feed

import "github.com/agsist/agfeed/news"

// FeedSource describes one configured upstream syndication endpoint. Sources
// are immutable once the pipeline starts; the URL doubles as the source's
// identity.
type FeedSource struct {
	URL       string
	Name      string
	Category  news.Category
	Community bool
	Icon      string
}

// DefaultSources returns the built-in agricultural feed list used when no
// configuration file or source store overrides it. Community sources are
// public discussion feeds and get stricter quality filtering downstream.
func DefaultSources() []FeedSource {
	return []FeedSource{
		// Community discussions
		{URL: "https://www.reddit.com/r/farming/.rss", Name: "r/farming", Category: news.CategoryCommunity, Community: true, Icon: "🚜"},
		{URL: "https://www.reddit.com/r/agriculture/.rss", Name: "r/agriculture", Category: news.CategoryCommunity, Community: true, Icon: "🌾"},
		{URL: "https://www.reddit.com/r/tractors/.rss", Name: "r/tractors", Category: news.CategoryCommunity, Community: true, Icon: "🚜"},
		{URL: "https://www.reddit.com/r/homestead/.rss", Name: "r/homestead", Category: news.CategoryCommunity, Community: true, Icon: "🏡"},
		{URL: "https://www.reddit.com/r/ranching/.rss", Name: "r/ranching", Category: news.CategoryCommunity, Community: true, Icon: "🐄"},
		{URL: "https://www.reddit.com/r/agronomy/.rss", Name: "r/agronomy", Category: news.CategoryCommunity, Community: true, Icon: "🔬"},
		{URL: "https://www.reddit.com/r/dairyfarming/.rss", Name: "r/dairyfarming", Category: news.CategoryCommunity, Community: true, Icon: "🥛"},
		{URL: "https://www.reddit.com/r/Cattle/.rss", Name: "r/Cattle", Category: news.CategoryCommunity, Community: true, Icon: "🐄"},

		// Government
		{URL: "https://www.usda.gov/rss/home.xml", Name: "USDA", Category: news.CategoryGovernment, Icon: "🏛️"},
		{URL: "https://www.nass.usda.gov/rss/feeds/news_room.xml", Name: "USDA NASS", Category: news.CategoryGovernment, Icon: "📊"},
		{URL: "https://www.ers.usda.gov/rss/feeds/ers-newsroom.xml", Name: "USDA ERS", Category: news.CategoryGovernment, Icon: "📈"},
		{URL: "https://www.fsa.usda.gov/rss/news.xml", Name: "USDA FSA", Category: news.CategoryGovernment, Icon: "🏛️"},
		{URL: "https://droughtmonitor.unl.edu/rss/rss.aspx", Name: "Drought Monitor", Category: news.CategoryWeather, Icon: "🌡️"},
		{URL: "https://www.nrcs.usda.gov/rss/nrcs-news.xml", Name: "USDA NRCS", Category: news.CategoryGovernment, Icon: "🌱"},
		{URL: "https://www.ams.usda.gov/rss-feeds/market-news", Name: "USDA AMS", Category: news.CategoryMarkets, Icon: "📊"},
		{URL: "https://www.rma.usda.gov/rss/news.xml", Name: "USDA RMA", Category: news.CategoryGovernment, Icon: "🛡️"},

		// Universities / extension services
		{URL: "https://extension.umn.edu/rss/crop-news", Name: "UMN Extension", Category: news.CategoryUniversity, Icon: "🎓"},
		{URL: "https://crops.extension.iastate.edu/feed", Name: "Iowa State", Category: news.CategoryUniversity, Icon: "🎓"},
		{URL: "https://agcrops.osu.edu/feed", Name: "Ohio State", Category: news.CategoryUniversity, Icon: "🎓"},
		{URL: "https://ipcm.wisc.edu/feed/", Name: "UW Madison", Category: news.CategoryUniversity, Icon: "🎓"},
		{URL: "https://farmdoc.illinois.edu/feed", Name: "farmdoc (UIUC)", Category: news.CategoryUniversity, Icon: "🎓"},
		{URL: "https://extension.purdue.edu/extmedia/rss/ag-news.xml", Name: "Purdue Extension", Category: news.CategoryUniversity, Icon: "🎓"},
		{URL: "https://www.agronomy.k-state.edu/rss/news.xml", Name: "Kansas State", Category: news.CategoryUniversity, Icon: "🎓"},
		{URL: "https://cropwatch.unl.edu/feed", Name: "Nebraska Extension", Category: news.CategoryUniversity, Icon: "🎓"},
		{URL: "https://www.ag.ndsu.edu/news/rss", Name: "NDSU Extension", Category: news.CategoryUniversity, Icon: "🎓"},
		{URL: "https://www.canr.msu.edu/news/rss", Name: "Michigan State", Category: news.CategoryUniversity, Icon: "🎓"},
		{URL: "https://extension.sdstate.edu/rss.xml", Name: "South Dakota State", Category: news.CategoryUniversity, Icon: "🎓"},

		// Industry press
		{URL: "https://www.agweb.com/rss.xml", Name: "AgWeb", Category: news.CategoryIndustry, Icon: "📰"},
		{URL: "https://www.dtnpf.com/agriculture/web/ag/rss", Name: "DTN", Category: news.CategoryIndustry, Icon: "📰"},
		{URL: "https://www.agriculture.com/rss/news", Name: "Successful Farming", Category: news.CategoryIndustry, Icon: "📰"},
		{URL: "https://brownfieldagnews.com/feed/", Name: "Brownfield", Category: news.CategoryIndustry, Icon: "📻"},
		{URL: "https://www.feedstuffs.com/rss.xml", Name: "Feedstuffs", Category: news.CategoryIndustry, Icon: "🐷"},
		{URL: "https://www.hoards.com/rss.xml", Name: "Hoard's Dairyman", Category: news.CategoryIndustry, Icon: "🥛"},
		{URL: "https://www.dairyherd.com/rss.xml", Name: "Dairy Herd", Category: news.CategoryIndustry, Icon: "🥛"},
		{URL: "https://www.farmjournal.com/rss.xml", Name: "Farm Journal", Category: news.CategoryIndustry, Icon: "📰"},
		{URL: "https://www.progressivefarmer.com/rss.xml", Name: "Progressive Farmer", Category: news.CategoryIndustry, Icon: "📰"},
		{URL: "https://www.no-tillfarmer.com/rss.xml", Name: "No-Till Farmer", Category: news.CategoryIndustry, Icon: "🌱"},
		{URL: "https://www.high-plains-journal.com/rss.xml", Name: "High Plains Journal", Category: news.CategoryIndustry, Icon: "🌾"},
		{URL: "https://www.cornandsoybeandigest.com/rss.xml", Name: "Corn & Soybean Digest", Category: news.CategoryIndustry, Icon: "🌽"},

		// Markets
		{URL: "https://www.farms.com/rss/markets/", Name: "Farms.com", Category: news.CategoryMarkets, Icon: "💹"},
		{URL: "https://www.barchart.com/solutions/rss/agriculture", Name: "Barchart Ag", Category: news.CategoryMarkets, Icon: "📈"},
		{URL: "https://www.cmegroup.com/rss/agricultural-news.xml", Name: "CME Group", Category: news.CategoryMarkets, Icon: "💹"},

		// Weather / climate
		{URL: "https://www.cpc.ncep.noaa.gov/rss/outlooks.xml", Name: "NOAA Climate", Category: news.CategoryWeather, Icon: "🌦️"},
		{URL: "https://www.weather.gov/rss_page.php?site=mkx", Name: "NWS Milwaukee", Category: news.CategoryWeather, Icon: "⛈️"},
	}
}
