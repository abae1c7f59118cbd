package domain

// Service represents one entry of the salon service catalog.
// LegacyCode carries the pre-migration reference code still used by
// parts of the upstream catalog; exclusion lookups match both keys.
type Service struct {
	ID              string
	LegacyCode      *string
	Name            string
	DurationMinutes int
	Price           float64
	Category        string
}

// HasLegacyCode returns true if the service still carries a legacy reference code
func (s *Service) HasLegacyCode() bool {
	return s.LegacyCode != nil && *s.LegacyCode != ""
}

// Professional is a service provider who can be booked.
// ExcludedServiceIDs is a denylist of service ids or legacy reference
// codes this professional does not perform.
type Professional struct {
	ID                 string
	DisplayName        string
	SiteID             string
	ExcludedServiceIDs []string
}

// Client is a salon client. Contact details are opaque to scheduling.
type Client struct {
	ID      string
	Name    string
	Contact string
}
