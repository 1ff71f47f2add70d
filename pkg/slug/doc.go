// Package slug generates URL-safe slugs from arbitrary strings with
// Unicode normalization.
//
// It converts text to web-friendly identifiers by stripping diacritics,
// replacing special characters with separators, and offering length limits
// and collision-resistant suffixes. The storefront uses it for product and
// vendor URLs.
//
// Basic usage:
//
//	slug.Make("Hello, World!")          // "hello-world"
//	slug.Make("Café & Restaurant")      // "cafe-restaurant"
//	slug.Make("Straße in München")      // "strasse-in-munchen"
//
// With options:
//
//	slug.Make("Long article title here",
//		slug.MaxLength(20),
//		slug.WithSuffix(6),
//	)
//	// "long-article-a7b2x9"
//
//	slug.Make("Product Name",
//		slug.Separator("_"),
//		slug.Lowercase(false),
//	)
//	// "Product_Name"
//
// Custom replacements handle symbols that deserve words:
//
//	slug.Make("Tea & Coffee", slug.CustomReplace(map[string]string{"&": "and"}))
//	// "tea-and-coffee"
//
// Length limits count runes, not bytes, so multibyte characters truncate
// correctly. Random suffixes draw from a lowercase alphanumeric alphabet
// using crypto/rand.
package slug
