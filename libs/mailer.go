package libs

import (
	"context"
	"fmt"
	"html"
	"strings"

	"storefront/models"

	"gopkg.in/gomail.v2"
)

// Mailer sends order confirmations over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *Mailer) OrderPlaced(ctx context.Context, customer models.Identity, order models.Order) error {
	if m == nil || customer.Email == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(orderConfirmation(m.from, customer.Email, order)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func orderConfirmation(from, to string, order models.Order) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s", order.OrderNumber))

	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(item.Name),
			item.Quantity,
			item.UnitPrice.StringFixed(2),
			item.Subtotal.StringFixed(2),
		)
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>Thank you for your order!</h2>
    <p>Order number: <strong>%s</strong></p>
    <table cellpadding="6">
        <tr><th>Product</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr>
%s    </table>
    <p><strong>Total: %s</strong></p>
    <p style="color: #666; font-size: 12px;">This is an automated email. Please do not reply.</p>
</body>
</html>
`, html.EscapeString(order.OrderNumber), rows.String(), order.Total.StringFixed(2))

	msg.SetBody("text/html", body)
	return msg
}
