// Package shortcode finds icon shortcodes in label text and plans their
// replacement.
//
// A shortcode is an icon name wrapped in a configurable identifier, for
// example ":LiStar:" with the identifier ":". Matches are located against
// the original label; Plan turns them into spans against the progressively
// shortened text, subtracting the length of every token already removed in
// the same pass.
package shortcode
