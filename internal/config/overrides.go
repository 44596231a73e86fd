package config

// Overrides carries command-line values. A nil field was not set on the
// command line and leaves the loaded value alone.
type Overrides struct {
	Size         *int
	Rows         *int
	Cols         *int
	Seed         *int64
	Words        []string
	WordFiles    []string
	Language     *string
	Alphabet     *string
	Mode         *string
	Orientations []string
	OutputDir    *string
	Formats      []string
	Paper        *string
	Landscape    *bool
	Grayscale    *bool
	Overlay      *bool
}

// Merge applies o on top of c. Size applies first so explicit rows and cols
// still win. Words and word files given on the command line replace the
// ones from the file.
func (c *Config) Merge(o Overrides) {
	if o.Size != nil {
		c.Rows, c.Cols = *o.Size, *o.Size
	}
	setIf(&c.Rows, o.Rows)
	setIf(&c.Cols, o.Cols)
	if o.Seed != nil {
		seed := *o.Seed
		c.Seed = &seed
	}
	if o.Words != nil {
		c.Words = o.Words
	}
	if o.WordFiles != nil {
		c.WordFiles = o.WordFiles
	}
	setIf(&c.Language, o.Language)
	setIf(&c.Alphabet, o.Alphabet)
	setIf(&c.Placement.Mode, o.Mode)
	if o.Orientations != nil {
		c.Placement.Orientations = o.Orientations
	}
	setIf(&c.Output.Dir, o.OutputDir)
	if o.Formats != nil {
		c.Output.Formats = o.Formats
	}
	setIf(&c.Output.Paper, o.Paper)
	setIf(&c.Output.Landscape, o.Landscape)
	setIf(&c.Output.Grayscale, o.Grayscale)
	setIf(&c.Output.Overlay, o.Overlay)
}
