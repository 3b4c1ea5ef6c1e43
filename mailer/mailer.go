package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/fit-nest-dev/fit-nest-api/models"
	"gopkg.in/gomail.v2"
)

// Sender is the notification surface the controllers depend on. Every send is
// best-effort: failures are logged and never fail the request.
type Sender interface {
	SendOTP(to, code string)
	SendOrderConfirmation(to string, order *models.Order)
	SendOrderStatusUpdate(to string, order *models.Order)
	SendTrainerAssigned(trainerEmail, memberEmail string, a *models.TrainerAssignment)
	SendTrainerRemoved(trainerEmail, memberEmail string, a *models.TrainerAssignment)
}

// Mailer sends transactional mail over SMTP. Constructed once in main and
// injected into the controllers.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and MAIL_FROM.
func NewFromEnv() *Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	return &Mailer{
		dialer: gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")),
		from:   from,
	}
}

func (m *Mailer) send(to, subject, body string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("❌ Failed to send %q mail to %s: %v", subject, to, err)
		return
	}
	log.Printf("✅ Sent %q mail to %s", subject, to)
}

func (m *Mailer) SendOTP(to, code string) {
	m.send(to, "Your Fit-Nest verification code",
		fmt.Sprintf("Your one-time verification code is %s. It expires in 10 minutes.", code))
}

func (m *Mailer) SendOrderConfirmation(to string, order *models.Order) {
	m.send(to, "Order confirmed",
		fmt.Sprintf("Your order %s for ₹%.2f has been placed successfully.", order.OrderID, order.TotalAmount))
}

func (m *Mailer) SendOrderStatusUpdate(to string, order *models.Order) {
	m.send(to, "Order update",
		fmt.Sprintf("Your order %s is now: %s.", order.OrderID, order.Status))
}

func (m *Mailer) SendTrainerAssigned(trainerEmail, memberEmail string, a *models.TrainerAssignment) {
	m.send(trainerEmail, "New member assigned",
		fmt.Sprintf("%s has been assigned to you from %s to %s.",
			a.MemberName, fmtDate(a.StartDate), fmtDate(a.EndDate)))
	m.send(memberEmail, "Trainer assigned",
		fmt.Sprintf("Your trainer request has been approved for %s to %s.",
			fmtDate(a.StartDate), fmtDate(a.EndDate)))
}

func (m *Mailer) SendTrainerRemoved(trainerEmail, memberEmail string, a *models.TrainerAssignment) {
	m.send(trainerEmail, "Member unassigned",
		fmt.Sprintf("%s is no longer assigned to you.", a.MemberName))
	m.send(memberEmail, "Trainer removed",
		"Your trainer assignment has been removed and your payment refunded.")
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return "unset"
	}
	return t.Format("2006-01-02")
}
