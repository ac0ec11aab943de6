package nlu

import (
	"fmt"
	"strings"

	"github.com/seu-repo/mandi-assist/internal/domain"
)

// Canned response texts. The no-result and failure texts are deliberately
// distinct so the UI can tell an empty search from a broken backend.
const (
	textLocationRequest = "I need your location to find vendors near you. Please allow location access and try again."
	textPriceUnknown    = "Please ask about a specific vegetable, for example \"price of tomatoes\"."
	textDeliveryTime    = "Deliveries usually arrive within 45 to 90 minutes of order confirmation."
	textDeliveryFee     = "Delivery is free for orders above Rs 199. Below that a Rs 25 delivery charge applies."
	textOrderCancel     = "You can cancel an order from Orders while it is still being packed. After dispatch, contact support and we will help."
	textOrderTrack      = "Open Orders and tap your order to see live tracking once it is dispatched."
	textPayment         = "We accept UPI, debit and credit cards, net banking and cash on delivery."
	textFallback        = "I didn't understand that. You can ask me about nearby vendors, vegetable prices, delivery, orders or payment."
	textUnavailable     = "Something went wrong on our side. Please try again in a moment."
)

// FormatNearby renders a proximity search result. The vendor list is also
// attached as data for programmatic use by the UI layer.
func FormatNearby(radiusKm float64, vendors []domain.NearbyVendor) domain.ChatResponse {
	if len(vendors) == 0 {
		return domain.ChatResponse{
			Text: fmt.Sprintf("No vendors found within %s km of you. Try a larger radius.", trimFloat(radiusKm)),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d vendor(s) within %s km:\n", len(vendors), trimFloat(radiusKm))
	for i, v := range vendors {
		fmt.Fprintf(&b, "%d. %s, %s (%.1f km)\n", i+1, v.Name, v.Address, v.DistanceKm)
	}
	return domain.ChatResponse{
		Text: strings.TrimRight(b.String(), "\n"),
		Data: vendors,
	}
}

// FormatPrice renders a price record. A nil record yields the generic
// ask-about-a-specific-vegetable response.
func FormatPrice(rec *domain.PriceRecord) domain.ChatResponse {
	if rec == nil {
		return domain.ChatResponse{Text: textPriceUnknown}
	}
	return domain.ChatResponse{
		Text: fmt.Sprintf("%s is selling at Rs %s/kg on average (Rs %s to Rs %s).",
			capitalize(rec.Vegetable), trimFloat(rec.Average), trimFloat(rec.Min), trimFloat(rec.Max)),
		Data: rec,
	}
}

// FormatLocationRequest is the missing-precondition response for vendor
// queries without a location fix.
func FormatLocationRequest() domain.ChatResponse {
	return domain.ChatResponse{Text: textLocationRequest}
}

// FormatDeliveryTime answers how long deliveries take.
func FormatDeliveryTime() domain.ChatResponse {
	return domain.ChatResponse{Text: textDeliveryTime}
}

// FormatDeliveryFee answers what delivery costs.
func FormatDeliveryFee() domain.ChatResponse {
	return domain.ChatResponse{Text: textDeliveryFee}
}

// FormatOrderCancel explains how to cancel an order.
func FormatOrderCancel() domain.ChatResponse {
	return domain.ChatResponse{Text: textOrderCancel}
}

// FormatOrderTrack explains how to track an order.
func FormatOrderTrack() domain.ChatResponse {
	return domain.ChatResponse{Text: textOrderTrack}
}

// FormatPaymentMethods lists the accepted payment methods.
func FormatPaymentMethods() domain.ChatResponse {
	return domain.ChatResponse{Text: textPayment}
}

// FormatFallback is the help response for queries no rule claims.
func FormatFallback() domain.ChatResponse {
	return domain.ChatResponse{Text: textFallback}
}

// FormatUnavailable is the collaborator-failure response. It must stay
// distinct from the empty-search text.
func FormatUnavailable() domain.ChatResponse {
	return domain.ChatResponse{Text: textUnavailable}
}

// trimFloat prints a float without trailing zeros: 5 not 5.0, 2.5 as is.
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	s = strings.TrimSuffix(s, ".0")
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
