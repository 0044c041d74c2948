package fal

import "encoding/json"

// Result is the one internal shape every provider response is mapped to.
// Raw carries the original payload for diagnostics when no usable image
// reference could be extracted.
type Result struct {
	ImageURL string
	VideoURL string
	Raw      json.RawMessage
}

// The provider's response schema is not stable across calls: the image URL
// has been observed under image.url, image_url, imageUrl, images[0].url and
// the same set nested under output. This is the only place that knows about
// those shapes.
type rawPayload struct {
	Image       *rawMedia   `json:"image"`
	ImageURL    string      `json:"image_url"`
	ImageURLAlt string      `json:"imageUrl"`
	Images      []rawMedia  `json:"images"`
	Video       *rawMedia   `json:"video"`
	VideoURL    string      `json:"video_url"`
	VideoURLAlt string      `json:"videoUrl"`
	Output      *rawPayload `json:"output"`
}

type rawMedia struct {
	URL string `json:"url"`
}

// Normalize maps a raw provider payload to a Result. Unparseable or empty
// payloads yield a Result with no image URL; callers decide how to surface
// that.
func Normalize(body []byte) *Result {
	result := &Result{Raw: json.RawMessage(body)}

	var payload rawPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return result
	}

	result.ImageURL = extractImageURL(&payload)
	result.VideoURL = extractVideoURL(&payload)
	return result
}

func extractImageURL(p *rawPayload) string {
	if p == nil {
		return ""
	}
	if p.Image != nil && p.Image.URL != "" {
		return p.Image.URL
	}
	if p.ImageURL != "" {
		return p.ImageURL
	}
	if p.ImageURLAlt != "" {
		return p.ImageURLAlt
	}
	if len(p.Images) > 0 && p.Images[0].URL != "" {
		return p.Images[0].URL
	}
	return extractImageURL(p.Output)
}

func extractVideoURL(p *rawPayload) string {
	if p == nil {
		return ""
	}
	if p.Video != nil && p.Video.URL != "" {
		return p.Video.URL
	}
	if p.VideoURL != "" {
		return p.VideoURL
	}
	if p.VideoURLAlt != "" {
		return p.VideoURLAlt
	}
	return extractVideoURL(p.Output)
}
