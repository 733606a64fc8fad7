package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuenta-regresiva/backend/internal/models"
)

func TestLoadEmbedded(t *testing.T) {
	b, err := LoadEmbedded()
	require.NoError(t, err)
	assert.Equal(t, []string{"en-US", "es-MX"}, b.Locales())

	for _, locale := range b.Locales() {
		for _, key := range []string{KeyRemaining, KeyCompleted, KeyInsufficientPhotos, KeyOverlayUnavailable, KeyDistance} {
			_, ok := b.Message(locale, key)
			assert.True(t, ok, "%s missing %s", locale, key)
		}
	}
}

func TestLocalizer_Countdown(t *testing.T) {
	b, err := LoadEmbedded()
	require.NoError(t, err)

	oneOfEach := models.Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}

	es := b.Localizer("es-MX")
	assert.Equal(t, "es-MX", es.Locale())
	assert.Equal(t, "1 días, 01 horas, 01 minutos, 01 segundos", es.Countdown(oneOfEach, false))
	assert.Equal(t, "125 días, 23 horas, 05 minutos, 00 segundos",
		es.Countdown(models.Breakdown{Days: 125, Hours: 23, Minutes: 5}, false))

	en := b.Localizer("en-US")
	assert.Equal(t, "1 days, 01 hours, 01 minutes, 01 seconds", en.Countdown(oneOfEach, false))

	msg, _ := b.Message("es-MX", KeyCompleted)
	assert.Equal(t, msg, es.Countdown(models.Breakdown{}, true))
}

func TestLocalizer_FallsBackToBase(t *testing.T) {
	b, err := LoadEmbedded()
	require.NoError(t, err)

	l := b.Localizer("fr-FR")
	assert.Equal(t, BaseLocale, l.Locale())
	assert.Contains(t, l.Countdown(models.Breakdown{Days: 2}, false), "días")
}

func TestLocalizer_Messages(t *testing.T) {
	b, err := LoadEmbedded()
	require.NoError(t, err)
	es := b.Localizer("es-MX")

	assert.Equal(t,
		"Se necesitan al menos 10 imágenes en la carpeta 'images' para mostrar correctamente la galería y el avioncito.",
		es.InsufficientPhotos(10, "images"))
	assert.Equal(t, "No se pudo cargar el contorno de Mexico.", es.OverlayUnavailable("Mexico"))
	assert.Equal(t, "Madrid está a 42 km de Monterrey.", es.Distance("Madrid", 42, "Monterrey"))
}

func TestLoadFromFS_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fs      fstest.MapFS
		wantErr string
	}{
		{
			name:    "no files",
			fs:      fstest.MapFS{},
			wantErr: "no catalog files",
		},
		{
			name: "locale mismatch",
			fs: fstest.MapFS{
				"locales/es-MX/page.yaml": {Data: []byte("locale: \"en-US\"\nmessages:\n  a: \"b\"\n")},
			},
			wantErr: "must match path locale",
		},
		{
			name: "missing base locale",
			fs: fstest.MapFS{
				"locales/en-US/page.yaml": {Data: []byte("locale: \"en-US\"\nmessages:\n  a: \"b\"\n")},
			},
			wantErr: "base locale",
		},
		{
			name: "empty messages",
			fs: fstest.MapFS{
				"locales/es-MX/page.yaml": {Data: []byte("locale: \"es-MX\"\n")},
			},
			wantErr: "messages map is required",
		},
		{
			name: "duplicate key across namespaces",
			fs: fstest.MapFS{
				"locales/es-MX/a.yaml": {Data: []byte("locale: \"es-MX\"\nmessages:\n  k: \"1\"\n")},
				"locales/es-MX/b.yaml": {Data: []byte("locale: \"es-MX\"\nmessages:\n  k: \"2\"\n")},
			},
			wantErr: "duplicate key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFS(tt.fs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
