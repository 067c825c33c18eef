package email

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dealerops/internal/port"
)

func TestMessages(t *testing.T) {
	n := port.BatchCommittedNotice{
		VINs:           []string{"1HGBH41JXMN109186", "5YJ3E1EB8NF123456"},
		Supplier:       "Müller & Söhne",
		OrderReference: "PO-2024-0042",
		CommittedAt:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	assert.Equal(t, "2 vehicles ordered (PO-2024-0042)", Subject(n))
	assert.Equal(t, "1 vehicles ordered", Subject(port.BatchCommittedNotice{VINs: []string{"x"}}))

	text := TextBody(n, "https://ops.dealer.test/")
	assert.Contains(t, text, "on 2026-03-01 09:30 UTC")
	assert.Contains(t, text, "Supplier: Müller & Söhne\n")
	assert.NotContains(t, text, "Estimated arrival")
	assert.Contains(t, text, "  5YJ3E1EB8NF123456\n")
	assert.True(t, strings.HasSuffix(text, "Review inventory: https://ops.dealer.test/inventory\n"))

	body := HTMLBody(n, "")
	assert.Contains(t, body, "Müller &amp; Söhne")
	assert.Contains(t, body, "<code>1HGBH41JXMN109186</code>")
	assert.NotContains(t, body, "href")
}
