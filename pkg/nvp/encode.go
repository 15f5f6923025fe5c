package nvp

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Encode serializes gateway entries, then transaction entries, as
// "&KEY=value" pairs with form-encoded values. Keys within each group are
// sorted so identical input always yields the same body.
func Encode(gateway GatewayConfig, transaction TransactionFields) string {
	var b strings.Builder
	appendFields(&b, gateway)
	appendFields(&b, transaction)
	return b.String()
}

func appendFields(b *strings.Builder, fields map[string]string) {
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte('&')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fields[key]))
	}
}
