// Package imagecheck scores product photos for blur and watermark
// overlays before they are accepted into the catalog.
//
// Both checks are pure functions of the pixel buffer. Sharpness is the
// variance of a Laplacian filter over the grayscale image: crisp photos
// produce high variance, blurry ones produce values near zero. Watermark
// confidence compares edge density in the central band of the frame,
// where overlay text usually sits, against the rest of the image.
//
// The thresholds are tunable, not fixed truths. The defaults (sharpness
// variance 150, watermark confidence 25) were calibrated against vendor
// photo submissions and suit typical product photography; adjust them per
// deployment via Thresholds.
//
//	report, err := imagecheck.Analyze(photoBytes, imagecheck.DefaultThresholds())
//	if err != nil {
//		return err
//	}
//	if !report.OK() {
//		// reject the upload, report.Blurry / report.WatermarkSuspected say why
//	}
//
// Large images are downscaled before analysis so cost stays bounded and
// scores stay comparable across source resolutions.
package imagecheck
