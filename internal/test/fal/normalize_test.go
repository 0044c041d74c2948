package fal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"virtual-tryon-backend/internal/fal"
)

func TestNormalize_ImageShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "nested image object",
			body: `{"image":{"url":"https://cdn/a.jpg"}}`,
			want: "https://cdn/a.jpg",
		},
		{
			name: "snake_case image_url",
			body: `{"image_url":"https://cdn/b.jpg"}`,
			want: "https://cdn/b.jpg",
		},
		{
			name: "camelCase imageUrl",
			body: `{"imageUrl":"https://cdn/c.jpg"}`,
			want: "https://cdn/c.jpg",
		},
		{
			name: "images array",
			body: `{"images":[{"url":"https://cdn/d.jpg"},{"url":"https://cdn/ignored.jpg"}]}`,
			want: "https://cdn/d.jpg",
		},
		{
			name: "wrapped in output",
			body: `{"output":{"image":{"url":"https://cdn/e.jpg"}}}`,
			want: "https://cdn/e.jpg",
		},
		{
			name: "output with images array",
			body: `{"output":{"images":[{"url":"https://cdn/f.jpg"}]}}`,
			want: "https://cdn/f.jpg",
		},
		{
			name: "nested object wins over flat field",
			body: `{"image":{"url":"https://cdn/primary.jpg"},"image_url":"https://cdn/secondary.jpg"}`,
			want: "https://cdn/primary.jpg",
		},
		{
			name: "no image anywhere",
			body: `{"request_id":"abc","status":"COMPLETED"}`,
			want: "",
		},
		{
			name: "empty image url",
			body: `{"image":{"url":""}}`,
			want: "",
		},
		{
			name: "not json",
			body: `<html>bad gateway</html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fal.Normalize([]byte(tt.body))
			assert.Equal(t, tt.want, result.ImageURL)
			assert.Equal(t, tt.body, string(result.Raw))
		})
	}
}

func TestNormalize_VideoShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "nested video object",
			body: `{"image":{"url":"https://cdn/a.jpg"},"video":{"url":"https://cdn/a.mp4"}}`,
			want: "https://cdn/a.mp4",
		},
		{
			name: "snake_case video_url",
			body: `{"video_url":"https://cdn/b.mp4"}`,
			want: "https://cdn/b.mp4",
		},
		{
			name: "camelCase videoUrl",
			body: `{"videoUrl":"https://cdn/c.mp4"}`,
			want: "https://cdn/c.mp4",
		},
		{
			name: "wrapped in output",
			body: `{"output":{"video":{"url":"https://cdn/d.mp4"}}}`,
			want: "https://cdn/d.mp4",
		},
		{
			name: "image only",
			body: `{"image":{"url":"https://cdn/a.jpg"}}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fal.Normalize([]byte(tt.body))
			assert.Equal(t, tt.want, result.VideoURL)
		})
	}
}
