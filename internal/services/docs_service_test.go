package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"busbooking/internal/domain"
)

func TestDocsServiceGenerate(t *testing.T) {
	loader := func(_ context.Context, _ domain.RequestContext, id int64) (ticketDocData, error) {
		dep := time.Date(2024, 8, 15, 8, 0, 0, 0, time.UTC)
		return ticketDocData{
			BookingID:     id,
			TicketCode:    "12A345",
			Status:        domain.BookingBooked,
			SeatNumber:    7,
			PassengerName: "Tester Name",
			NumberPlate:   "ABC123",
			DepartureFrom: "NY",
			DepartureTo:   "Boston",
			DepartureTime: dep,
			ArrivalTime:   dep.Add(4 * time.Hour),
			PricePerSeat:  30,
		}, nil
	}

	svc := DocsService{Loader: loader}
	pdf, filename, err := svc.GenerateETicket(context.Background(), domain.RequestContext{UserID: 1}, 10)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "ETICKET_12A345_Tester_Name.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceForbiddenPropagates(t *testing.T) {
	svc := DocsService{Loader: func(context.Context, domain.RequestContext, int64) (ticketDocData, error) {
		return ticketDocData{}, domain.ForbiddenError{}
	}}
	_, _, err := svc.GenerateETicket(context.Background(), domain.RequestContext{UserID: 2}, 1)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := safeFilenamePart("  "); got != "NA" {
		t.Fatalf("blank -> %q", got)
	}
	if got := safeFilenamePart("a/b:c"); got != "a_b_c" {
		t.Fatalf("got %q", got)
	}
	if got := safeFilenamePart(strings.Repeat("x", 60)); len(got) != 40 {
		t.Fatalf("expected truncation to 40, got %d", len(got))
	}
	got := safeFilenamePart(strings.Repeat("é", 45))
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) != 40 {
		t.Fatalf("expected 40 whole runes, got %q", got)
	}
}
