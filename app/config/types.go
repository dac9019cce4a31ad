package config

// Sources is the parsed sources configuration file: which feeds, category
// maps and video channels one aggregation run covers.
type Sources struct {
	Articles []ArticleConfig  `yaml:"articles"`
	News     []CategoryConfig `yaml:"news"`
	YouTube  YouTubeConfig    `yaml:"youtube"`
}

// ArticleConfig describes one publisher's blog feeds.
type ArticleConfig struct {
	Name  string   `yaml:"name"`
	Feeds []string `yaml:"feeds"`
	// FloorToDay rounds the window cutoff down to midnight UTC. Set it for
	// publishers that date items by day rather than by time.
	FloorToDay bool `yaml:"floor_to_day"`
}

// CategoryConfig describes a news site with one feed per category.
type CategoryConfig struct {
	Name  string            `yaml:"name"`
	Feeds map[string]string `yaml:"feeds"`
	// Categories selects which feeds to fetch; empty means all of them.
	Categories []string `yaml:"categories"`
}

// YouTubeConfig lists the channel handles to aggregate.
type YouTubeConfig struct {
	Channels []string `yaml:"channels"`
}

// SourceCount returns the number of configured sources, counting the channel
// list as one source.
func (s *Sources) SourceCount() int {
	count := len(s.Articles) + len(s.News)
	if len(s.YouTube.Channels) > 0 {
		count++
	}
	return count
}
