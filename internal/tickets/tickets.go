// Package tickets renders booking e-tickets as PDF with a signed QR code.
package tickets

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"AIRESCAPE_BACK-END/internal/models"
)

// ErrInvalidSignature is returned by Verify for tampered or foreign payloads
var ErrInvalidSignature = errors.New("invalid ticket signature")

// Ticket is everything printed on an e-ticket
type Ticket struct {
	Booking   models.Booking
	Passenger models.User
	Flight    *models.Flight
	Hotel     *models.Hotel
	IssuedAt  time.Time
}

// Issuer signs and renders tickets
type Issuer struct {
	secret []byte
}

// NewIssuer creates an issuer signing with secret
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Payload returns the QR content: bookingID|userID|type|issuedAt|signature
func (i *Issuer) Payload(t Ticket) string {
	data := fmt.Sprintf("%d|%d|%s|%d", t.Booking.ID, t.Booking.UserID, t.Booking.BookingType, t.IssuedAt.Unix())
	return data + "|" + i.sign(data)
}

// Verify checks a payload produced by Payload and returns its signed part
func (i *Issuer) Verify(payload string) (string, error) {
	idx := strings.LastIndex(payload, "|")
	if idx <= 0 {
		return "", ErrInvalidSignature
	}
	data, sig := payload[:idx], payload[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(i.sign(data))) {
		return "", ErrInvalidSignature
	}
	return data, nil
}

func (i *Issuer) sign(data string) string {
	h := hmac.New(sha256.New, i.secret)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Render returns the ticket as a PDF document
func (i *Issuer) Render(t Ticket) ([]byte, error) {
	if t.IssuedAt.IsZero() {
		t.IssuedAt = time.Now().UTC()
	}

	qrPNG, err := qrcode.Encode(i.Payload(t), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("AirEscape booking #%d", t.Booking.ID), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "AirEscape E-Ticket")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(45, 8, label)
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, value)
		pdf.Ln(8)
	}

	line("Booking:", fmt.Sprintf("#%d (%s)", t.Booking.ID, t.Booking.BookingStatus))
	line("Passenger:", strings.TrimSpace(displayTitle(t.Passenger)+" "+t.Passenger.FirstName+" "+t.Passenger.LastName))
	line("Email:", t.Passenger.Email)
	line("Booked on:", t.Booking.BookingDate.Format("02 Jan 2006 15:04"))

	switch {
	case t.Flight != nil:
		f := t.Flight
		line("Flight:", f.FlightNumber)
		line("Route:", f.DepartureCity+" -> "+f.ArrivalCity)
		line("Departs:", f.DepartureDate.Format("02 Jan 2006")+" "+clock(f.DepartureTime))
		line("Arrives:", f.ArrivalDate.Format("02 Jan 2006")+" "+clock(f.ArrivalTime))
		line("Seats:", fmt.Sprintf("%d", t.Booking.Seats))
	case t.Hotel != nil:
		line("Hotel:", t.Hotel.Name)
		line("Location:", t.Hotel.Location)
		line("Per night:", fmt.Sprintf("%.2f", t.Hotel.PricePerNight))
	}
	line("Total:", fmt.Sprintf("%.2f", t.Booking.TotalPrice))
	pdf.Ln(4)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 45, 45, false, imageOpts, 0, "")

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, "Issued "+t.IssuedAt.Format(time.RFC1123)+". Present the QR code at check-in.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func displayTitle(u models.User) string {
	if u.Title == nil {
		return ""
	}
	return *u.Title
}

func clock(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
