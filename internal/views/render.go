package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sbilibin2017/gw-currency-rates/internal/models"
)

const (
	loadingText = "Загрузка..."
	heading     = "Курс валют к рублю"
	updatedText = "Данные актуальны на: "
)

//go:embed templates/widget.html
var templatesFS embed.FS

var widgetTmpl = template.Must(template.ParseFS(templatesFS, "templates/widget.html"))

// Renderer turns widget state into HTML, plain text or the JSON view model.
type Renderer struct {
	loc *time.Location
}

// NewRenderer returns a renderer that shows LastUpdated in loc.
// A nil loc means time.Local.
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{loc: loc}
}

// Response builds the JSON view model for s.
func (r *Renderer) Response(s models.WidgetState) models.WidgetResponse {
	resp := models.WidgetResponse{State: s.Status()}

	switch resp.State {
	case models.WidgetError:
		resp.Error = s.Error
	case models.WidgetLoaded:
		resp.Rates = make([]models.RateView, 0, len(s.Rates))
		for _, rate := range s.Rates {
			resp.Rates = append(resp.Rates, models.RateView{
				Currency:  rate.Currency,
				Rate:      rate.Rate,
				Formatted: FormatRUB(rate.Rate),
			})
		}
		if s.LastUpdated != nil {
			ts := s.LastUpdated.In(r.loc)
			resp.LastUpdated = &ts
			resp.LastUpdatedFormatted = FormatDateTime(ts, r.loc)
		}
	}

	return resp
}

// HTML writes the widget fragment for s.
func (r *Renderer) HTML(w io.Writer, s models.WidgetState) error {
	if err := widgetTmpl.Execute(w, r.Response(s)); err != nil {
		return fmt.Errorf("render widget html: %w", err)
	}
	return nil
}

// Text renders s for a terminal.
func (r *Renderer) Text(s models.WidgetState) string {
	resp := r.Response(s)

	switch resp.State {
	case models.WidgetLoading:
		return loadingText + "\n"
	case models.WidgetError:
		return resp.Error + "\n"
	}

	var b strings.Builder
	b.WriteString(heading + "\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, rate := range resp.Rates {
		fmt.Fprintf(tw, "1 %s\t%s\n", rate.Currency, rate.Formatted)
	}
	_ = tw.Flush()

	if resp.LastUpdatedFormatted != "" {
		b.WriteString(updatedText + resp.LastUpdatedFormatted + "\n")
	}
	return b.String()
}
