package season

// Season is one NBA season year as reported by the provider, e.g. 2023 for
// the 2023-24 season.
type Season struct {
	Season      int
	SourceID    int64
	PayloadHash string
	IsActive    bool
}
