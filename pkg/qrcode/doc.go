// Package qrcode generates PNG QR codes with base64 encoding support.
//
// The storefront encodes order tracking URLs into QR codes printed on
// receipts. Codes use medium error correction, which recovers from roughly
// 15% data corruption and suits both screen display and printed receipts.
//
// Generate raw PNG bytes:
//
//	png, err := qrcode.Generate("https://freshmart.example/orders/FM-000042", 256)
//	if err != nil {
//		return err
//	}
//
// Generate a base64 data URI for direct HTML embedding:
//
//	dataURI, err := qrcode.GenerateBase64Image("https://freshmart.example/orders/FM-000042", 256)
//	// <img src="..." alt="Order QR">
//
// Recommended sizes: 128px for icons, 256px for standard web and mobile
// scanning, 512px and up for print.
package qrcode
