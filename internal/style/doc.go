// Package style compiles background presets into style declarations.
//
// # Overview
//
// A preset.Preset is declarative: a variant tag plus loosely specified
// parameters. Compile turns it into a Declaration holding concrete CSS
// background values. The UI layer (a browser page, the terminal picker, the
// /api/style.css endpoint) applies the declaration; this package never
// touches a surface itself.
//
// # Variants
//
//   - solid: background-color = colors[0]
//   - linearGradient: linear-gradient(direction, colors...)
//   - radialGradient: radial-gradient(size at position, c0 40%, c1 100%), not tiled
//   - grid: two ruled gradients tiled at gridSize, line colour from colors[1]
//     with gridOpacity applied as alpha
//   - pattern: one of the fixed recipes in patterns.go
//
// Every parameter has a default, so any preset renders.
//
// # Fallbacks
//
// Compile is total. An unknown variant or pattern type produces a flat fill of
// colors[0] and a warning on the compiler's logger. Callers that would rather
// reject such presets up front use preset.Validate in strict mode.
//
// # Colours
//
// HexToRGBA only converts #rrggbb values. Anything else (named colours,
// rgba(), hsl()) passes through untouched because it already encodes its own
// opacity.
package style
