package types

// EntryType distinguishes files from folders
type EntryType int

const (
	EntryFile EntryType = iota
	EntryFolder
)

// String returns the lowercase type name
func (t EntryType) String() string {
	switch t {
	case EntryFile:
		return "file"
	case EntryFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// Entry is a file or folder node of the host's tree. Path is slash
// separated and relative to the vault root.
type Entry struct {
	Path string
	Name string
	Type EntryType
}

// Assignment is the resolved icon bound to a path
type Assignment struct {
	Path               string `json:"path" yaml:"path"`
	IconNameWithPrefix string `json:"iconNameWithPrefix" yaml:"icon"`
	FromCustomRule     bool   `json:"fromCustomRule" yaml:"from_custom_rule"`
}

// ShortcodeMatch is one icon shortcode found in a label. Index is a rune
// offset into the original, unmodified label text.
type ShortcodeMatch struct {
	Token string
	Name  string
	Index int
}

// Len returns the token length in runes
func (m ShortcodeMatch) Len() int {
	return len([]rune(m.Token))
}
