package i18n

import (
	"fmt"

	"golang.org/x/text/message"

	"github.com/cuenta-regresiva/backend/internal/models"
)

// Localizer formats the page's sentences for one locale.
type Localizer struct {
	locale  string
	printer *message.Printer
}

// Locale returns the locale this localizer formats for.
func (l *Localizer) Locale() string {
	return l.locale
}

// Countdown renders the remaining time, or the completion message once the event is reached.
// Hours, minutes and seconds are zero-padded to two digits.
func (l *Localizer) Countdown(b models.Breakdown, completed bool) string {
	if completed {
		return l.printer.Sprintf(KeyCompleted)
	}
	return l.printer.Sprintf(KeyRemaining,
		b.Days,
		fmt.Sprintf("%02d", b.Hours),
		fmt.Sprintf("%02d", b.Minutes),
		fmt.Sprintf("%02d", b.Seconds),
	)
}

// InsufficientPhotos is the gallery warning shown when a folder is short of photos.
func (l *Localizer) InsufficientPhotos(required int, folder string) string {
	return l.printer.Sprintf(KeyInsufficientPhotos, required, folder)
}

// OverlayUnavailable is shown when a country outline cannot be drawn.
func (l *Localizer) OverlayUnavailable(country string) string {
	return l.printer.Sprintf(KeyOverlayUnavailable, country)
}

// Distance describes how far a city is from the event city.
func (l *Localizer) Distance(from string, km int, to string) string {
	return l.printer.Sprintf(KeyDistance, from, km, to)
}
