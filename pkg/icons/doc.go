// Package icons loads SVG icon packs and looks icons up by prefixed name.
//
// An icon pack is a directory of SVG files. Every icon is registered under
// the pack prefix followed by the PascalCase file name, so the file
// `lucide-icons/arrow-left.svg` becomes `LiArrowLeft`.
package icons
