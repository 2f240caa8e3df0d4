package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/lambrugeorge/colipop-site/internal/domain"
	"github.com/lambrugeorge/colipop-site/internal/notify"
)

// orderMessage formats the staff notification for one order, text and HTML,
// plus the best-effort buyer confirmation.
func orderMessage(sub domain.OrderSubmission, number string, now time.Time) *notify.Message {
	itemsText := make([]string, len(sub.Items))
	itemsHTML := make([]string, len(sub.Items))
	for i, item := range sub.Items {
		lineTotal := item.Price * float64(item.Quantity)
		itemsText[i] = fmt.Sprintf("• %s x%d — %.2f RON", item.Title, item.Quantity, lineTotal)
		itemsHTML[i] = fmt.Sprintf("<li><strong>%s</strong> x%d — %.2f RON</li>", item.Title, item.Quantity, lineTotal)
	}

	notes := sub.Notes
	if notes == "" {
		notes = "—"
	}

	coupon := sub.Coupon
	if coupon == "" {
		coupon = "Cupon"
	}

	var text strings.Builder
	fmt.Fprintf(&text, "=== COMANDĂ NOUĂ COLIPOP ===\n")
	fmt.Fprintf(&text, "Număr comandă: %s\n", number)
	fmt.Fprintf(&text, "Data: %s\n\n", now.Format("02.01.2006, 15:04:05"))
	fmt.Fprintf(&text, "--- CLIENT ---\n")
	fmt.Fprintf(&text, "Nume: %s\n", sub.Name)
	fmt.Fprintf(&text, "Email: %s\n", sub.Email)
	fmt.Fprintf(&text, "Telefon: %s\n", sub.Phone)
	fmt.Fprintf(&text, "Adresă livrare: %s\n", sub.Address)
	fmt.Fprintf(&text, "Observații: %s\n", notes)
	fmt.Fprintf(&text, "Modalitate plată: %s\n\n", sub.Payment.Label())
	fmt.Fprintf(&text, "--- PRODUSE ---\n%s\n\n", strings.Join(itemsText, "\n"))
	if sub.Subtotal > 0 {
		fmt.Fprintf(&text, "Subtotal: %.2f RON\n", sub.Subtotal)
	}
	if sub.Discount > 0 {
		fmt.Fprintf(&text, "Reducere (%s): -%.2f RON\n", coupon, sub.Discount)
	}
	fmt.Fprintf(&text, "--- TOTAL: %.2f RON ---\n\n", sub.Total)
	fmt.Fprintf(&text, "---\n")
	fmt.Fprintf(&text, "Furnizor: SC COLIPOP S.R.L.\n")
	fmt.Fprintf(&text, "CUI: 83252082 | Reg. Com: J09/6282/2025\n")
	fmt.Fprintf(&text, "IBAN: RO25ROCT8325208210890001\n")
	fmt.Fprintf(&text, "Sediul: Colegiul Economic 'Ion Ghica', Brăila\n")

	var html strings.Builder
	fmt.Fprintf(&html, "<h2>Comandă Nouă #%s</h2>", number)
	fmt.Fprintf(&html, "<p><strong>Nume:</strong> %s</p>", sub.Name)
	fmt.Fprintf(&html, "<p><strong>Email:</strong> %s</p>", sub.Email)
	fmt.Fprintf(&html, "<p><strong>Telefon:</strong> %s</p>", sub.Phone)
	fmt.Fprintf(&html, "<p><strong>Adresă:</strong> %s</p>", sub.Address)
	fmt.Fprintf(&html, "<p><strong>Plată:</strong> %s</p><hr/>", sub.Payment.Label())
	fmt.Fprintf(&html, "<h3>Produse:</h3><ul>%s</ul>", strings.Join(itemsHTML, ""))
	if sub.Subtotal > 0 {
		fmt.Fprintf(&html, "<p>Subtotal: %.2f RON</p>", sub.Subtotal)
	}
	if sub.Discount > 0 {
		fmt.Fprintf(&html, `<p style="color: green;"><strong>Reducere (%s):</strong> -%.2f RON</p>`, coupon, sub.Discount)
	}
	fmt.Fprintf(&html, `<h3>Total: <span style="color: #F79A19;">%.2f RON</span></h3><hr/>`, sub.Total)
	fmt.Fprintf(&html, "<p><small>Generat automat de ColiPop Website.</small></p>")

	var confirm strings.Builder
	fmt.Fprintf(&confirm, "<h2>Salut %s,</h2>", sub.Name)
	fmt.Fprintf(&confirm, "<p>Îți mulțumim pentru comanda ta la ColiPop!</p>")
	fmt.Fprintf(&confirm, "<p>Numărul comenzii tale este: <strong>%s</strong></p>", number)
	fmt.Fprintf(&confirm, "<p>Vom procesa comanda în scurt timp și te vom contacta pentru confirmarea livrării.</p><hr/>")
	fmt.Fprintf(&confirm, "<h3>Sumar comandă:</h3><ul>%s</ul>", strings.Join(itemsHTML, ""))
	if sub.Subtotal > 0 {
		fmt.Fprintf(&confirm, "<p>Subtotal: %.2f RON</p>", sub.Subtotal)
	}
	if sub.Discount > 0 {
		fmt.Fprintf(&confirm, `<p style="color: green;"><strong>Reducere (%s):</strong> -%.2f RON</p>`, coupon, sub.Discount)
	}
	fmt.Fprintf(&confirm, "<h3>Total de plată: %.2f RON</h3><hr/>", sub.Total)
	fmt.Fprintf(&confirm, "<p>Cu drag,</p><p><strong>Echipa ColiPop</strong></p>")

	return &notify.Message{
		Subject:     fmt.Sprintf("[ColiPop] Comandă nouă #%s — %.2f RON", number, sub.Total),
		Text:        text.String(),
		HTML:        html.String(),
		SenderName:  sub.Name,
		SenderEmail: sub.Email,
		Confirm: &notify.Confirmation{
			To:      sub.Email,
			Subject: fmt.Sprintf("Confirmare comandă #%s - ColiPop", number),
			HTML:    confirm.String(),
		},
	}
}

// contactMessage formats a contact-form notification. No confirmation is
// sent for contact messages.
func contactMessage(sub domain.ContactSubmission) *notify.Message {
	name := strings.TrimSpace(sub.Name)
	email := strings.TrimSpace(sub.Email)
	message := strings.TrimSpace(sub.Message)

	text := fmt.Sprintf("Mesaj nou de contact\n\nNume: %s\nEmail: %s\n\nMesaj:\n%s\n",
		name, email, message)

	html := fmt.Sprintf(
		"<h2>Mesaj nou de contact</h2><p><strong>Nume:</strong> %s</p><p><strong>Email:</strong> %s</p><hr/><p>%s</p>",
		name, email, message)

	return &notify.Message{
		Subject:     "Contact ColiPop",
		Text:        text,
		HTML:        html,
		SenderName:  name,
		SenderEmail: email,
	}
}
