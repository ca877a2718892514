package common

// WindowRule is a compile-time (class, instance, title) match that assigns
// a tag mask, floating flag and preferred monitor to newly managed clients.
// Modeled on the teacher's WindowIgnore matching (store/client.go IsIgnored),
// generalized from "ignore" to "place".
type WindowRule struct {
	Class      string
	Instance   string
	Title      string
	Tags       uint32 // 0 means "keep the tags of the currently selected monitor"
	IsFloating bool
	Monitor    int // -1 means "monitor the client already appeared on"
}

// Configuration is compile-time per spec.md §1 Non-goals: rules, key
// bindings, colors and gaps are constants, never parsed at runtime.
type Configuration struct {
	Tags []string

	BorderWidth         int
	BorderColorNormal   uint32
	BorderColorSelected uint32

	SnapPixels int
	GapPixels  int

	Mfact           float64
	MfactMin        float64
	MfactMax        float64
	NMaster         int
	ResizeHints     bool
	LockFullscreen  bool

	AltBarClass string // WM_CLASS of the external status bar

	Rules []WindowRule
}

// Config is the single compile-time configuration value, analogous to the
// teacher's common.Config package variable populated from defaults instead
// of a parsed file.
var Config = Configuration{
	Tags: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},

	BorderWidth:         1,
	BorderColorNormal:   0x444444,
	BorderColorSelected: 0x005577,

	SnapPixels: 32,
	GapPixels:  0,

	Mfact:          0.55,
	MfactMin:       0.05,
	MfactMax:       0.95,
	NMaster:        1,
	ResizeHints:    false,
	LockFullscreen: true,

	AltBarClass: "dwm-bar",

	Rules: []WindowRule{
		{Class: "Gimp", Tags: 0, IsFloating: true, Monitor: -1},
		{Class: "firefox", Instance: "", Title: "", Tags: 1 << 8, IsFloating: false, Monitor: -1},
	},
}

// TagMask is the bitmask covering every configured tag.
func TagMask() uint32 {
	return uint32(1)<<len(Config.Tags) - 1
}
