package upload

const (
	SubdirPhotos = "photos"
	SubdirVideos = "videos"
	SubdirPDFs   = "pdfs"
)

const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaPDF   = "pdf"
)

var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var galleryVideoTypes = []string{"video/mp4", "video/quicktime", "video/x-msvideo", "video/webm"}

var attachmentVideoTypes = []string{"video/mp4", "video/quicktime", "video/x-msvideo", "video/x-ms-wmv", "video/x-ms-asf", "video/webm"}

// Rule constrains one upload call site. An empty Subdir routes the file by its
// detected kind (images to photos, videos to videos, PDFs to pdfs).
type Rule struct {
	Subdir   string
	MaxBytes int64
	Allowed  []string
}

func (r Rule) allows(contentType string) bool {
	for _, a := range r.Allowed {
		if a == contentType {
			return true
		}
	}
	return false
}

type Rules struct {
	Photo Rule
	Video Rule
	Media Rule
	PDF   Rule
}

// NewRules builds the call site rules: gallery uploads use galleryMax, files
// attached to news, publications and documentation use attachmentMax.
func NewRules(galleryMax, attachmentMax int64) Rules {
	media := make([]string, 0, len(imageTypes)+len(attachmentVideoTypes))
	media = append(media, imageTypes...)
	media = append(media, attachmentVideoTypes...)

	return Rules{
		Photo: Rule{Subdir: SubdirPhotos, MaxBytes: galleryMax, Allowed: imageTypes},
		Video: Rule{Subdir: SubdirVideos, MaxBytes: galleryMax, Allowed: galleryVideoTypes},
		Media: Rule{MaxBytes: attachmentMax, Allowed: media},
		PDF:   Rule{Subdir: SubdirPDFs, MaxBytes: attachmentMax, Allowed: []string{"application/pdf"}},
	}
}
