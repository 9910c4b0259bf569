// Package qrcode renders PNG QR codes, used to share deep links with a phone.
//
// Codes use Medium error correction (about 15% recoverable damage), which
// handles screen glare and print quality well for short URLs.
//
//	png, err := qrcode.Generate("demoapp://?screen=combine", 256)
//
//	uri, err := qrcode.GenerateBase64Image("demoapp://?screen=combine", 0) // DefaultSize
//	fmt.Printf(`<img src="%s" alt="QR Code">`, uri)
//
// Sizes are in pixels per side. Zero selects DefaultSize; values outside
// [MinSize, MaxSize] return ErrInvalidSize.
package qrcode
