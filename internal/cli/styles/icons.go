package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconHeart     = "\uf004" // heart
	IconGo        = "\ue627" // go gopher

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info

	IconFolder   = "\uf07b" // folder
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconFile     = "\uf15b" // file

	IconCursor = "\uf054" // chevron-right

	// Layouts
	IconLayout   = "\uf009" // th-large
	IconGroup    = "\uf0db" // columns
	IconPanel    = "\uf2d0" // window-maximize
	IconFloating = "\uf2d2" // window-restore
	IconPopout   = "\uf08e" // external-link
	IconLock     = "\uf023" // lock
	IconHidden   = "\uf070" // eye-slash
	IconClock    = "\uf017" // clock
	IconExpand   = "\uf065" // expand
	IconCollapse = "\uf066" // compress
)
