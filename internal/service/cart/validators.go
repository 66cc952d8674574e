package cart

import "strings"

func isValidUserID(userID int64) bool {
	return userID > 0
}

func isValidProductID(productID string) bool {
	return strings.TrimSpace(productID) != ""
}
