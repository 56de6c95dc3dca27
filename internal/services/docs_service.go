package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/jinzhu/copier"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// DocsService renders booking documents.
type DocsService struct {
	DB        *sql.DB
	RequestID string
	Loader    func(ctx context.Context, rc domain.RequestContext, bookingID int64) (ticketDocData, error)
}

type ticketDocData struct {
	BookingID         int64
	TicketCode        string
	Status            domain.BookingStatus
	SeatNumber        int
	PassengerName     string
	PassengerIDNumber string
	PassengerPhone    string
	NumberPlate       string
	Model             string
	DepartureFrom     string
	DepartureTo       string
	DepartureTime     time.Time
	ArrivalTime       time.Time
	PricePerSeat      float64
}

// GenerateETicket returns the PDF bytes and a download filename.
func (s DocsService) GenerateETicket(ctx context.Context, rc domain.RequestContext, bookingID int64) ([]byte, string, error) {
	data, err := s.load(ctx, rc, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s DocsService) load(ctx context.Context, rc domain.RequestContext, bookingID int64) (ticketDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, rc, bookingID)
	}
	var out ticketDocData
	booking, err := BookingService{DB: s.DB}.Get(ctx, rc, bookingID)
	if err != nil {
		return out, err
	}
	bus, err := repositories.BusRepository{DB: s.DB}.GetByID(ctx, booking.BusID)
	if err != nil {
		return out, err
	}
	if err := copier.Copy(&out, &bus); err != nil {
		return out, domain.InternalError{Err: err}
	}
	if err := copier.Copy(&out, &booking); err != nil {
		return out, domain.InternalError{Err: err}
	}
	out.BookingID = booking.ID

	if out.PassengerName == "" && booking.UserID != nil {
		if u, err := (repositories.UserRepository{DB: s.DB}).GetByID(ctx, *booking.UserID); err == nil {
			out.PassengerName = u.Username
		}
	}
	return out, nil
}

func buildETicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+d.TicketCode, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket code    : %s", safe(d.TicketCode, "-")),
		fmt.Sprintf("Status         : %s", safe(string(d.Status), "-")),
		fmt.Sprintf("Passenger      : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("ID number      : %s", safe(d.PassengerIDNumber, "-")),
		fmt.Sprintf("Phone          : %s", safe(d.PassengerPhone, "-")),
		fmt.Sprintf("Seat           : %d", d.SeatNumber),
		fmt.Sprintf("Bus            : %s %s", safe(d.NumberPlate, "-"), d.Model),
		fmt.Sprintf("Route          : %s -> %s", safe(d.DepartureFrom, "-"), safe(d.DepartureTo, "-")),
		fmt.Sprintf("Departure      : %s", utils.FormatTripTime(d.DepartureTime)),
		fmt.Sprintf("Arrival        : %s", utils.FormatTripTime(d.ArrivalTime)),
		fmt.Sprintf("Fare           : %s", utils.FormatMoney(d.PricePerSeat)),
		fmt.Sprintf("Booking        : #%d", d.BookingID),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	png, err := qrcode.Encode(d.TicketCode, qrcode.Medium, 256)
	if err != nil {
		return nil, "", fmt.Errorf("encode qr: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("ticket-qr", 150, 20, 45, 45, false, opts, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger and one seat. Show it when boarding.", "", "", false)

	if err := pdf.Error(); err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", safeFilenamePart(d.TicketCode), safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40])
	}
	return s
}
