package services

import (
	"context"
	"fmt"
	"log"

	"resto_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// Mailer envoie la confirmation de commande. Comme pour le paiement : pas de
// retry, l'échec remonte à l'appelant.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order models.Order) error
}

// SMTPMailer envoie les confirmations via un serveur SMTP classique.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, order models.Order) error {
	msg := mail.NewMsg()

	if err := msg.From(m.From); err != nil {
		return err
	}
	if err := msg.To(order.Email); err != nil {
		return err
	}
	msg.Subject("Confirmation de votre commande")
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	client, err := mail.NewClient(m.Host,
		mail.WithPort(m.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de la confirmation de commande à", order.Email)
	return client.DialAndSendWithContext(ctx, msg)
}

func orderConfirmationHTML(order models.Order) string {
	rows := ""
	for _, item := range order.Products {
		rows += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
			</tr>`, item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif;">
	<h2>Merci pour votre commande !</h2>
	<p>Commande <strong>%s</strong> — paiement de %.2f€ reçu. Bon appétit !</p>
	<table style="border-collapse: collapse;">
		<thead>
			<tr><th>Produit</th><th>Quantité</th><th>Total</th></tr>
		</thead>
		<tbody>%s</tbody>
	</table>
</body>
</html>`, order.OrderID, order.TotalPayment, rows)
}
