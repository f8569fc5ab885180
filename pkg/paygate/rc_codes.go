package paygate

// Gateway decline codes. Anything not listed here is treated as a hard
// decline with the raw code surfaced in logs.
const (
	DeclineInsufficientFunds = "insufficient_funds"
	DeclineCardExpired       = "card_expired"
	DeclineCardInvalid       = "card_invalid"
	DeclineDoNotHonor        = "do_not_honor"
	DeclineFraudSuspected    = "fraud_suspected"
)

// declineMessages maps decline codes to customer-safe messages.
var declineMessages = map[string]string{
	DeclineInsufficientFunds: "The card has insufficient funds",
	DeclineCardExpired:       "The card has expired",
	DeclineCardInvalid:       "The card number is invalid",
	DeclineDoNotHonor:        "The card was declined",
	DeclineFraudSuspected:    "The card was declined",
}

// DeclineMessage returns a customer-safe message for a decline code.
func DeclineMessage(code string) string {
	if msg, ok := declineMessages[code]; ok {
		return msg
	}
	return "The payment was declined"
}
