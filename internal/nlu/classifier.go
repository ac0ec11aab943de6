package nlu

import "strings"

// Topic is the domain handler a chat query resolves to.
type Topic string

const (
	TopicVendorSearch Topic = "vendor_search"
	TopicPriceLookup  Topic = "price_lookup"
	TopicDeliveryTime Topic = "delivery_time"
	TopicDeliveryFee  Topic = "delivery_fee"
	TopicOrderCancel  Topic = "order_cancel"
	TopicOrderTrack   Topic = "order_track"
	TopicPayment      Topic = "payment_info"
	TopicFallback     Topic = "fallback"
)

type classifierRule struct {
	topic Topic
	match func(text string) bool
}

// Classifier selects a domain handler for a free-text chat query by
// evaluating a fixed priority list of keyword predicates. Only the first
// matching rule fires: a query naming both vendors-within-radius and
// payment always resolves to vendor search.
//
// The rule ordering (vendor search, price, delivery, orders, payment,
// fallback) is a product contract. Swapping rules changes behavior on
// ambiguous queries; do not reorder without product signoff.
type Classifier struct {
	vocabulary *Vocabulary
	rules      []classifierRule
}

// NewClassifier builds a Classifier. The vocabulary gates the price rule:
// price keywords without a recognized vegetable fall through to the
// lower-priority rules.
func NewClassifier(vocabulary *Vocabulary) *Classifier {
	c := &Classifier{vocabulary: vocabulary}
	c.rules = []classifierRule{
		{TopicVendorSearch, func(t string) bool {
			return containsAny(t, "vendor", "shop", "store", "seller") &&
				containsAny(t, "radius", "km", "kilometer", "kilometre", "near")
		}},
		{TopicPriceLookup, func(t string) bool {
			return containsAny(t, "price", "cost", "rate") && c.vocabulary.Find(t) != ""
		}},
		{TopicDeliveryTime, func(t string) bool {
			return strings.Contains(t, "delivery") && containsAny(t, "time", "long")
		}},
		{TopicDeliveryFee, func(t string) bool {
			return strings.Contains(t, "delivery") && containsAny(t, "fee", "charge", "cost")
		}},
		{TopicOrderCancel, func(t string) bool {
			return strings.Contains(t, "order") && strings.Contains(t, "cancel")
		}},
		{TopicOrderTrack, func(t string) bool {
			return strings.Contains(t, "order") && strings.Contains(t, "track")
		}},
		{TopicPayment, func(t string) bool {
			return strings.Contains(t, "pay")
		}},
	}
	return c
}

// Classify returns the topic of the first rule whose keywords are present
// in the lowercased text, or TopicFallback. Filler phrases are not
// stripped here; domain keywords are matched against the raw text.
func (c *Classifier) Classify(raw string) Topic {
	t := strings.ToLower(raw)
	for _, r := range c.rules {
		if r.match(t) {
			return r.topic
		}
	}
	return TopicFallback
}

// Vocabulary returns the produce vocabulary the classifier consults.
func (c *Classifier) Vocabulary() *Vocabulary {
	return c.vocabulary
}

func containsAny(text string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
