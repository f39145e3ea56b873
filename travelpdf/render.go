package travelpdf

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"travelbook/models"
)

// Renderer prints a travel with its itineraries. Confirmed bookings get a
// QR code carrying a signed confirmation payload.
type Renderer struct {
	secret []byte
}

func NewRenderer(secret []byte) *Renderer {
	return &Renderer{secret: secret}
}

// ConfirmationPayload returns travelID|bookingID|confirmation|signature.
func (r *Renderer) ConfirmationPayload(travelID string, b *models.Booking) string {
	data := fmt.Sprintf("%s|%s|%s", travelID, b.ID, b.Confirmation)
	h := hmac.New(sha256.New, r.secret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return data + "|" + sig
}

// Verify checks a payload produced by ConfirmationPayload.
func (r *Renderer) Verify(payload string) bool {
	i := strings.LastIndex(payload, "|")
	if i < 0 {
		return false
	}
	h := hmac.New(sha256.New, r.secret)
	h.Write([]byte(payload[:i]))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(want), []byte(payload[i+1:]))
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func dateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return "-"
	case end == "" || end == start:
		return start
	case start == "":
		return "until " + end
	}
	return start + " to " + end
}

// Render writes t as a PDF document to w.
func (r *Renderer) Render(t *models.Travel, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(t.Title), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(t.Title))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(40, 7, label)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 7, tr(dash(value)))
		pdf.Ln(7)
	}
	line("Destination", strings.Trim(t.City+", "+t.Country, ", "))
	line("Dates", dateRange(t.StartDate, t.EndDate))
	if t.DurationDays != nil {
		line("Duration", fmt.Sprintf("%d days", *t.DurationDays))
	}
	line("Budget", fmt.Sprintf("%.2f %s", t.Budget, t.Currency))
	line("Type", string(t.Type))
	line("Status", string(t.Status))
	if t.Rating != nil {
		line("Rating", fmt.Sprintf("%d / 5", *t.Rating))
	}
	if t.Description != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 6, tr(t.Description), "", "L", false)
	}
	if len(t.Highlights) > 0 {
		pdf.Ln(2)
		pdf.MultiCell(0, 6, tr("Highlights: "+strings.Join(t.Highlights, ", ")), "", "L", false)
	}

	for i := range t.Itineraries {
		if err := r.itinerary(pdf, tr, t.ID, &t.Itineraries[i]); err != nil {
			return err
		}
	}

	return pdf.Output(w)
}

func (r *Renderer) itinerary(pdf *gofpdf.Fpdf, tr func(string) string, travelID string, it *models.Itinerary) error {
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 9, tr(it.Title))
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	route := fmt.Sprintf("%s, %s -> %s, %s", dash(it.OriginCity), dash(it.OriginCountry), dash(it.DestinationCity), dash(it.DestinationCountry))
	pdf.Cell(0, 6, tr(route))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s  |  %s  |  %s", dateRange(it.StartDate, it.EndDate), dash(string(it.Transport)), dash(string(it.Accommodation)))))
	pdf.Ln(8)

	for i := range it.Bookings {
		b := &it.Bookings[i]
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, tr(fmt.Sprintf("[%s] %s", b.Type, b.Title)))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, tr(fmt.Sprintf("%s  %s  %.2f %s  %s", dateRange(b.StartDate, b.EndDate), dash(b.Provider), b.Price, b.Currency, b.Status)))
		pdf.Ln(6)
		if b.Confirmation == "" || b.Status != models.BookingConfirmed {
			continue
		}
		pdf.Cell(0, 6, tr("Confirmation: "+b.Confirmation))
		pdf.Ln(6)
		qrPNG, err := qrcode.Encode(r.ConfirmationPayload(travelID, b), qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("qr for booking %s: %w", b.ID, err)
		}
		imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		name := "qr-" + b.ID
		pdf.RegisterImageOptionsReader(name, imageOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions(name, 15, 0, 30, 30, true, imageOpts, 0, "")
	}

	if len(it.Activities) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, "Daily activities")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		for _, a := range it.Activities {
			when := a.Date
			if a.StartTime != "" {
				when += " " + a.StartTime
			}
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s  %s (%s) %s", when, a.Title, a.Type, a.Location)), "", "L", false)
		}
	}
	return pdf.Error()
}
