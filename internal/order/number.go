package order

import (
	"strconv"
	"strings"
	"time"
)

// NewOrderNumber derives the order number from the submission timestamp,
// base36-encoded: CP-MDLJ3K2V1. Not sequential and not guaranteed globally
// unique; two submissions in the same millisecond collide. Accepted
// limitation at this order volume — replacing it with a random or
// sequence-backed id changes observable behavior and needs a product
// decision first.
func NewOrderNumber(now time.Time) string {
	return "CP-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}
