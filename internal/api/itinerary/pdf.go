package itinerary

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

const qrSizeMM = 35

// RenderPDF lays out an itinerary as an A4 document. Text is encoded as
// cp1252, so scripts outside it are not rendered faithfully.
func RenderPDF(it *types.Itinerary) ([]byte, error) {
	if it == nil {
		return nil, errors.New("nil itinerary")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Itinerary", true)
	pdf.AddPage()

	title, notes, _ := strings.Cut(it.Summary, "\n")
	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(150, 8, tr(title), "", "L", false)
	pdf.Ln(2)

	if url := mapURL(it.Days); url != "" {
		png, err := qrcode.Encode(url, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to encode map link: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("map", opts, bytes.NewReader(png))
		pdf.ImageOptions("map", 165, 10, qrSizeMM, qrSizeMM, false, opts, 0, url)
		pdf.SetY(max(pdf.GetY(), 12+qrSizeMM))
	}

	for _, day := range it.Days {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 9, day.Date)
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 11)
		writeSlot(pdf, tr, "Morning", day.Morning)
		if day.Lunch != "" {
			line(pdf, tr, "Lunch: "+day.Lunch)
		}
		writeSlot(pdf, tr, "Afternoon", day.Afternoon)
		if day.Dinner != "" {
			line(pdf, tr, "Dinner: "+day.Dinner)
		}
		writeSlot(pdf, tr, "Evening", day.Evening)
		for _, t := range day.Transfers {
			line(pdf, tr, fmt.Sprintf("  %s -> %s: %d min, %.2f km (%s)", t.FromPlace, t.ToPlace, t.TravelMin, t.DistanceKm, t.Mode))
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 9, "Tips")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 11)
	for _, section := range []struct {
		label string
		items []string
	}{
		{"Etiquette", it.Tips.Etiquette},
		{"Packing", it.Tips.Packing},
		{"Safety", it.Tips.Safety},
		{"Local customs", it.Tips.LocalCustoms},
	} {
		if len(section.items) == 0 {
			continue
		}
		line(pdf, tr, section.label+": "+strings.Join(section.items, "; "))
	}
	if notes != "" {
		pdf.Ln(2)
		line(pdf, tr, notes)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSlot(pdf *gofpdf.Fpdf, tr func(string) string, label string, places []types.Place) {
	if len(places) == 0 {
		return
	}
	names := make([]string, 0, len(places))
	for _, p := range places {
		names = append(names, p.Name)
	}
	line(pdf, tr, label+": "+strings.Join(names, ", "))
}

func line(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	pdf.MultiCell(0, 6, tr(text), "", "L", false)
}

// mapURL links the first located place of the trip on OpenStreetMap.
func mapURL(days []types.DayPlan) string {
	for _, d := range days {
		for _, p := range d.Places() {
			if p.Lat != 0 || p.Lon != 0 {
				return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.5f&mlon=%.5f#map=14/%.5f/%.5f", p.Lat, p.Lon, p.Lat, p.Lon)
			}
		}
	}
	return ""
}
