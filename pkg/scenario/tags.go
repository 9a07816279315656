package scenario

import "fmt"

// ContentTag is a closed enumeration of presentation tags. The shell maps
// each tag to an icon or asset; the engine never performs dynamic lookups
// by arbitrary string.
type ContentTag string

const (
	TagLottery    ContentTag = "lottery"
	TagInvestment ContentTag = "investment"
	TagJobOffer   ContentTag = "job_offer"
	TagBanking    ContentTag = "banking"
	TagDelivery   ContentTag = "delivery"
	TagFriendly   ContentTag = "friendly"
	TagMessage    ContentTag = "message" // generic fallback
)

var validTags = map[ContentTag]struct{}{
	TagLottery:    {},
	TagInvestment: {},
	TagJobOffer:   {},
	TagBanking:    {},
	TagDelivery:   {},
	TagFriendly:   {},
	TagMessage:    {},
}

// Valid reports whether the tag is a member of the closed enumeration.
func (t ContentTag) Valid() bool {
	_, ok := validTags[t]
	return ok
}

// ParseContentTag validates a raw tag string, defaulting empty to TagMessage.
func ParseContentTag(raw string) (ContentTag, error) {
	if raw == "" {
		return TagMessage, nil
	}
	t := ContentTag(raw)
	if !t.Valid() {
		return "", fmt.Errorf("unknown content tag %q", raw)
	}
	return t, nil
}
