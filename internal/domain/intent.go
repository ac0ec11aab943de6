package domain

// NavigationTarget is a route the UI shell can navigate to.
type NavigationTarget string

const (
	RouteHome    NavigationTarget = "/"
	RouteMarkets NavigationTarget = "/markets"
	RouteVendors NavigationTarget = "/vendors"
	RoutePrices  NavigationTarget = "/prices"
	RouteOrders  NavigationTarget = "/orders"
	RouteCart    NavigationTarget = "/cart"
	RouteProfile NavigationTarget = "/profile"
	RouteHelp    NavigationTarget = "/help"

	// ActionBack is a pseudo-target meaning "navigate to the previous view".
	// It is not a real route.
	ActionBack NavigationTarget = "back"
)

// Intent is a canonical recognized command mapped to a navigation action.
// Variants are the accepted phrase alternatives, stored lowercase; their
// order is insertion order and does not affect matching.
type Intent struct {
	Key      string           `json:"key"`
	Action   NavigationTarget `json:"action"`
	Variants []string         `json:"variants"`
}

// TranscriptAlternative is one candidate text interpretation of spoken
// audio, produced per recognition event by the speech backend.
type TranscriptAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// ResolvedCommand is the outcome of matching a voice utterance: the intent
// that won, the transcript that produced it and the recognizer confidence
// of that transcript.
type ResolvedCommand struct {
	Key        string           `json:"key"`
	Action     NavigationTarget `json:"action"`
	Transcript string           `json:"transcript"`
	Confidence float64          `json:"confidence"`
}
