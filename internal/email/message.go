// Package email renders intake notifications. Delivery lives in the ses and
// noop subpackages.
package email

import (
	"fmt"
	"html"
	"strings"

	"dealerops/internal/port"
)

// Subject returns the subject line for a committed batch.
func Subject(n port.BatchCommittedNotice) string {
	if n.OrderReference != "" {
		return fmt.Sprintf("%d vehicles ordered (%s)", len(n.VINs), n.OrderReference)
	}
	return fmt.Sprintf("%d vehicles ordered", len(n.VINs))
}

// TextBody renders the plain text notification.
func TextBody(n port.BatchCommittedNotice, frontendURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d vehicles were added to inventory as ordered on %s.\n\n",
		len(n.VINs), n.CommittedAt.UTC().Format("2006-01-02 15:04 MST"))
	writeField := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	writeField("Supplier", n.Supplier)
	writeField("Order reference", n.OrderReference)
	writeField("Estimated arrival", n.EstimatedETA)
	b.WriteString("\nVINs:\n")
	for _, vin := range n.VINs {
		fmt.Fprintf(&b, "  %s\n", vin)
	}
	if frontendURL != "" {
		fmt.Fprintf(&b, "\nReview inventory: %s/inventory\n", strings.TrimRight(frontendURL, "/"))
	}
	return b.String()
}

// HTMLBody renders the HTML notification.
func HTMLBody(n port.BatchCommittedNotice, frontendURL string) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family:sans-serif">`)
	fmt.Fprintf(&b, "<p>%d vehicles were added to inventory as <strong>ordered</strong>.</p><ul>", len(n.VINs))
	for _, vin := range n.VINs {
		fmt.Fprintf(&b, "<li><code>%s</code></li>", html.EscapeString(vin))
	}
	b.WriteString("</ul>")
	if n.Supplier != "" {
		fmt.Fprintf(&b, "<p>Supplier: %s</p>", html.EscapeString(n.Supplier))
	}
	if n.EstimatedETA != "" {
		fmt.Fprintf(&b, "<p>Estimated arrival: %s</p>", html.EscapeString(n.EstimatedETA))
	}
	if frontendURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s/inventory">Review inventory</a></p>`,
			html.EscapeString(strings.TrimRight(frontendURL, "/")))
	}
	b.WriteString("</body></html>")
	return b.String()
}
