package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// BoardingPassData carries the fields printed on the pass
type BoardingPassData struct {
	Barcode       string
	PassengerName string
	Document      string
	FlightCode    string
	Origin        string
	Destination   string
	Departure     time.Time
	SeatNumber    string
	SeatClass     string
	BoardingGate  string
	FinalPrice    float64
}

// BuildBoardingPass renders the boarding pass as a one-page PDF
func BuildBoardingPass(d BoardingPassData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Boarding Pass", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOARDING PASS")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger : %s", safe(d.PassengerName)),
		fmt.Sprintf("Document  : %s", safe(d.Document)),
		fmt.Sprintf("Flight    : %s", safe(d.FlightCode)),
		fmt.Sprintf("Route     : %s -> %s", safe(d.Origin), safe(d.Destination)),
		fmt.Sprintf("Departure : %s", d.Departure.Format("2006-01-02 15:04")),
		fmt.Sprintf("Seat      : %s (%s)", safe(d.SeatNumber), safe(d.SeatClass)),
		fmt.Sprintf("Gate      : %s", safe(d.BoardingGate)),
		fmt.Sprintf("Price     : %.2f", d.FinalPrice),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, d.Barcode)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this pass with a valid ID at the boarding gate.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BOARDING_%s.pdf", d.Barcode)
	return buf.Bytes(), filename, nil
}

func safe(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
