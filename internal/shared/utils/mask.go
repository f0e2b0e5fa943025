package utils

// MaskMerchantID masks a merchant account identifier for safe logging,
// keeping only the first and last two characters.
// Example: "MERCH12345" -> "ME***45"
func MaskMerchantID(merchantID string) string {
	if len(merchantID) <= 4 {
		return "***"
	}
	return merchantID[:2] + "***" + merchantID[len(merchantID)-2:]
}
