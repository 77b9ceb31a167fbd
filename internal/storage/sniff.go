package storage

import "bytes"

// 許可する画像形式。先頭バイト列で判定する
var (
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	pngMagic  = []byte{0x89, 0x50, 0x4e, 0x47}
	gifMagic  = []byte("GIF8")
	riffMagic = []byte("RIFF")
	webpMagic = []byte("WEBP")
)

// DetectImageType は先頭バイトから画像形式を判定します。
// Content-Typeヘッダは偽装できるため、申告値ではなく実データを見る。
// 対応形式でない場合は空文字列を返す。
func DetectImageType(head []byte) string {
	switch {
	case bytes.HasPrefix(head, jpegMagic):
		return "image/jpeg"
	case bytes.HasPrefix(head, pngMagic):
		return "image/png"
	case bytes.HasPrefix(head, gifMagic):
		return "image/gif"
	case bytes.HasPrefix(head, riffMagic) && len(head) >= 12 && bytes.Equal(head[8:12], webpMagic):
		return "image/webp"
	default:
		return ""
	}
}

// ExtensionFor は判定済みMIMEタイプに対応する拡張子を返します
func ExtensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
