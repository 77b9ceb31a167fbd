// internal/storage/sniff_test.go
package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectImageType(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want string
	}{
		{
			name: "正常系: JPEG",
			head: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0x01},
			want: "image/jpeg",
		},
		{
			name: "正常系: PNG",
			head: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D},
			want: "image/png",
		},
		{
			name: "正常系: GIF87a",
			head: []byte("GIF87a\x01\x00\x01\x00\x80\x00"),
			want: "image/gif",
		},
		{
			name: "正常系: GIF89a",
			head: []byte("GIF89a\x01\x00\x01\x00\x80\x00"),
			want: "image/gif",
		},
		{
			name: "正常系: WebP",
			head: []byte("RIFF\x24\x00\x00\x00WEBPVP8 "),
			want: "image/webp",
		},
		{
			name: "異常系: RIFFだがWebPではない（WAV）",
			head: []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
			want: "",
		},
		{
			name: "異常系: PDF",
			head: []byte("%PDF-1.7\n%\xE2\xE3\xCF\xD3"),
			want: "",
		},
		{
			name: "異常系: SVG（テキスト）",
			head: []byte("<svg xmlns=\"http://www.w3.org/2000/svg\">"),
			want: "",
		},
		{
			name: "異常系: 空データ",
			head: []byte{},
			want: "",
		},
		{
			name: "異常系: 短すぎるデータ",
			head: []byte{0xFF, 0xD8},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectImageType(tt.head))
		})
	}
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", ExtensionFor("image/jpeg"))
	assert.Equal(t, ".png", ExtensionFor("image/png"))
	assert.Equal(t, ".gif", ExtensionFor("image/gif"))
	assert.Equal(t, ".webp", ExtensionFor("image/webp"))
	assert.Equal(t, "", ExtensionFor("application/octet-stream"))
}
