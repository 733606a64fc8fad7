// Package gallery builds the photo layout of the page from the asset store.
package gallery

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"

	"github.com/cuenta-regresiva/backend/internal/models"
	"github.com/cuenta-regresiva/backend/internal/storage"
)

// DefaultRequired is the minimum photo count the page needs.
const DefaultRequired = 10

// ErrInsufficientPhotos is returned when a folder holds fewer photos than required.
var ErrInsufficientPhotos = errors.New("insufficient photos")

var photoName = regexp.MustCompile(`(?i)^photo(\d+)\.(jpe?g|png)$`)

// Options controls Build.
type Options struct {
	// Required is the minimum number of photos; DefaultRequired when zero.
	Required int
	// URLPrefix is prepended to each photo's folder-relative path.
	URLPrefix string
	// Exclude lists file names that are not gallery photos (the marker image).
	Exclude []string
	// Message is shown when the folder is short of photos.
	Message string
}

// CheckMinimum reports ErrInsufficientPhotos when count < required.
func CheckMinimum(count, required int) error {
	if count < required {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientPhotos, count, required)
	}
	return nil
}

// Slot returns the page region for the photo with the given number:
// 1-3 left column, 4-6 right column, the rest the centre grid.
func Slot(n int) string {
	switch {
	case n >= 1 && n <= 3:
		return models.SlotLeft
	case n >= 4 && n <= 6:
		return models.SlotRight
	default:
		return models.SlotCenter
	}
}

// Build lists folder and lays its photos out. A folder short of photos, or
// one that cannot be listed, yields an unavailable gallery carrying
// opts.Message rather than an error.
func Build(store storage.Store, folder string, opts Options) models.Gallery {
	required := opts.Required
	if required <= 0 {
		required = DefaultRequired
	}

	g := models.Gallery{
		Folder:   folder,
		Required: required,
		Photos:   []models.Photo{},
	}

	names, err := store.List(folder)
	if err != nil {
		fmt.Printf("[Gallery] Failed to list %q: %v\n", folder, err)
		g.Message = opts.Message
		return g
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, n := range opts.Exclude {
		excluded[n] = true
	}

	type numbered struct {
		n    int
		name string
	}
	var photos []numbered
	for _, name := range names {
		if excluded[name] {
			continue
		}
		m := photoName.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		photos = append(photos, numbered{n: n, name: name})
	}
	// Only numbered photos have a slot on the page.
	g.Count = len(photos)

	if err := CheckMinimum(g.Count, required); err != nil {
		fmt.Printf("[Gallery] %s: %v\n", folder, err)
		g.Message = opts.Message
		return g
	}

	sort.Slice(photos, func(i, j int) bool { return photos[i].n < photos[j].n })
	for _, p := range photos {
		g.Photos = append(g.Photos, models.Photo{
			Name: p.name,
			URL:  opts.URLPrefix + path.Join(folder, p.name),
			Slot: Slot(p.n),
		})
	}
	g.Available = true
	return g
}
