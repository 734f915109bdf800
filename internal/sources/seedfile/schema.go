package seedfile

// Entry represents a single bookmark entry in the seed YAML.
type Entry struct {
	URL        string   `yaml:"url"`
	Img        string   `yaml:"img"`
	Title      string   `yaml:"title"`
	Tags       []string `yaml:"tags"`
	SourcePage string   `yaml:"source_page"`
}

// Config is the root structure for a bookmarks seed file.
type Config struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}
