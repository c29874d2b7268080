package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"elysian/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// SendBookingEmail renders the confirmation email for a new booking and ships
// it asynchronously. Rendering failures are logged, never surfaced to the
// caller: the booking is already committed by the time we get here.
func (s *SenderService) SendBookingEmail(data entities.BookingEmailData, toEmail string) {
	if toEmail == "" {
		return
	}

	subject := fmt.Sprintf("Your Elysian Retreat booking is confirmed - %s", data.BookingID)

	var roomLines string
	for _, room := range data.Rooms {
		roomLines += fmt.Sprintf("  Room %s (%s) - %.2f/night\n", room.Number, room.Type, room.Price)
	}
	plainTextBody := fmt.Sprintf(
		"Dear %s,\n\nYour booking at Elysian Retreat is confirmed.\n\n"+
			"Booking Details:\n"+
			"Booking ID: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n"+
			"Guests: %d adults, %d children\n"+
			"Rooms:\n%s"+
			"Total Amount: %.2f\n\n"+
			"We look forward to hosting you.\n\n"+
			"Elysian Retreat. All rights reserved.",
		data.GuestName, data.BookingID,
		data.CheckInFormatted, data.CheckOutFormatted,
		data.Adults, data.Children, roomLines, data.TotalAmount,
	)

	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: failed to parse booking email template (%s): %v", tmplPath, err)
		return
	}

	var htmlBodyBuffer bytes.Buffer
	if err := tmpl.Execute(&htmlBodyBuffer, data); err != nil {
		log.Printf("ALERT: failed to render booking email for %s: %v", data.BookingID, err)
		return
	}
	htmlBody := htmlBodyBuffer.String()

	go func(toEmail, guestName, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, guestName, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Printf("ALERT (async): email delivery failed for booking %s: %v", data.BookingID, errEmail)
		}
	}(toEmail, data.GuestName, subject, plainTextBody, htmlBody)
}

// SendBookingSMS sends the short confirmation text for a new booking.
func (s *SenderService) SendBookingSMS(data entities.BookingEmailData, toNumber string) {
	if toNumber == "" {
		return
	}

	smsMessage := fmt.Sprintf("Elysian Retreat: Booking %s confirmed!\nCheck-in: %s.\nMore details in your email.",
		data.BookingID, data.CheckInFormatted)

	if errSMS := SendSMS(toNumber, smsMessage); errSMS != nil {
		log.Printf("ALERT: booking %s was created, but the confirmation SMS to %s failed: %v",
			data.BookingID, toNumber, errSMS)
	}
}

// ShareBill pushes the plain-text bill summary to the guest over WhatsApp,
// falling back to SMS when the WhatsApp channel is not configured.
func (s *SenderService) ShareBill(toNumber, billText string) error {
	if toNumber == "" {
		return fmt.Errorf("guest has no mobile number on file")
	}
	if err := SendWhatsApp(toNumber, billText); err != nil {
		log.Printf("WhatsApp share failed for %s, falling back to SMS: %v", toNumber, err)
		return SendSMS(toNumber, billText)
	}
	return nil
}

// FormatStayDate renders a stay boundary the way guest-facing messages show
// it.
func FormatStayDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}
