// File: models/gallery.go
package models

// ----------------------- gallery model -----------------------

// GalleryItem is one image on the public gallery page.
type GalleryItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"` // "url" or "upload"
}

// Normalize backfills defaults for an item loaded from the API.
func (g *GalleryItem) Normalize() {
	if g.Type == "" {
		g.Type = SourceURL
	}
}

// Complete reports whether the item has both a title and a URL. Incomplete
// items are dropped from the published collection (with admin confirmation)
// rather than rejected.
func (g GalleryItem) Complete() bool {
	return g.Title != "" && g.URL != ""
}

// PartitionGallery splits items into the publishable subset and the count of
// incomplete ones that would be dropped by a save.
func PartitionGallery(items []GalleryItem) (valid []GalleryItem, dropped int) {
	valid = make([]GalleryItem, 0, len(items))
	for _, item := range items {
		if item.Complete() {
			valid = append(valid, item)
		} else {
			dropped++
		}
	}
	return valid, dropped
}
