package league

// League is one competition the provider reports, e.g. "standard" or
// "vegas". Some provider payloads carry only the league name; those get a
// synthetic source id derived from the name.
type League struct {
	SourceID    int64
	Name        string
	Type        *string
	LogoURL     *string
	PayloadHash string
	IsActive    bool
}
