// Package input implements the Normal/Insert/Leader input state machine of
// spec.md §4.5, including the jk/kj dual-key Insert-exit trick and the
// leader which-key tree (grounded on
// original_source/src/input/which_key.rs, supplemented per SPEC_FULL.md §12
// with a bookmarks submenu).
package input

// LeaderAction is one terminal action a leader-key path can resolve to.
type LeaderAction int

const (
	ActionBookmarkJump LeaderAction = iota
	ActionBookmarkSet
	ActionBookmarkDelete
	ActionSearchOpen
	ActionNewProject
	ActionCloseSession
	ActionArchive
	ActionUnarchive
	ActionCycleArchiveFilter
	ActionRefresh
	ActionYankPath
	ActionToggleDangerous
	ActionAddConversation
	ActionCreateWorktree
	ActionWorktreeSearch
)

// Command is one node of the which-key tree: either a leaf bound to an
// action (optionally carrying a bookmark slot 1-9) or a submenu.
type Command struct {
	Key         rune
	Label       string
	Action      LeaderAction
	HasAction   bool
	BookmarkSlot int // only meaningful when Action is one of the Bookmark* actions
	Subcommands []Command
}

func leaf(key rune, label string, action LeaderAction) Command {
	return Command{Key: key, Label: label, Action: action, HasAction: true}
}

func bookmarkLeaf(key rune, slot int, action LeaderAction) Command {
	return Command{Key: key, Label: "slot " + string(rune('0'+slot)), Action: action, HasAction: true, BookmarkSlot: slot}
}

func submenu(key rune, label string, subs []Command) Command {
	return Command{Key: key, Label: label, Subcommands: subs}
}

func (c Command) IsSubmenu() bool {
	return len(c.Subcommands) > 0
}

// RootTimeoutMS is the auto-cancel timeout for an empty leader path (spec.md
// §4.5: "Root-level auto-timeout after 2 s of no keys").
const RootTimeoutMS = 2000

// bookmarkSlots builds the nine digit-keyed leaves '1'..'9' for a bookmark
// action, shared by the jump/mark/delete submenus.
func bookmarkSlots(action LeaderAction) []Command {
	cmds := make([]Command, 0, 9)
	for slot := 1; slot <= 9; slot++ {
		cmds = append(cmds, bookmarkLeaf(rune('0'+slot), slot, action))
	}
	return cmds
}

// DefaultTree builds the default leader command tree.
func DefaultTree() []Command {
	bookmarks := append(bookmarkSlots(ActionBookmarkJump),
		submenu('m', "mark", bookmarkSlots(ActionBookmarkSet)),
		submenu('d', "delete", bookmarkSlots(ActionBookmarkDelete)),
	)
	return []Command{
		submenu('b', "bookmarks", bookmarks),
		leaf('/', "search", ActionSearchOpen),
		leaf('n', "new project", ActionNewProject),
		leaf('c', "close session", ActionCloseSession),
		leaf('a', "add conversation", ActionAddConversation),
		submenu('x', "archive", []Command{
			leaf('a', "archive", ActionArchive),
			leaf('u', "unarchive", ActionUnarchive),
			leaf('f', "cycle filter", ActionCycleArchiveFilter),
		}),
		submenu('w', "worktree", []Command{
			leaf('w', "from group", ActionCreateWorktree),
			leaf('s', "search", ActionWorktreeSearch),
		}),
		leaf('r', "refresh", ActionRefresh),
		leaf('y', "yank path", ActionYankPath),
		leaf('D', "dangerous mode", ActionToggleDangerous),
	}
}

// WhichKeyConfig holds the leader command tree.
type WhichKeyConfig struct {
	Commands []Command
}

// NewWhichKeyConfig builds a config with the default command tree.
func NewWhichKeyConfig() WhichKeyConfig {
	return WhichKeyConfig{Commands: DefaultTree()}
}

// CommandsAtPath returns the commands available at path, or (nil, false) if
// the path does not resolve to a submenu.
func (w WhichKeyConfig) CommandsAtPath(path []rune) ([]Command, bool) {
	current := w.Commands
	for _, key := range path {
		cmd, ok := findCommand(current, key)
		if !ok || !cmd.IsSubmenu() {
			return nil, false
		}
		current = cmd.Subcommands
	}
	return current, true
}

func findCommand(cmds []Command, key rune) (Command, bool) {
	for _, c := range cmds {
		if c.Key == key {
			return c, true
		}
	}
	return Command{}, false
}

// LeaderKeyResultKind discriminates the outcome of processing one key while
// in Leader mode.
type LeaderKeyResultKind int

const (
	LeaderExecute LeaderKeyResultKind = iota
	LeaderSubmenu
	LeaderCancel
)

// LeaderKeyResult is the outcome of WhichKeyConfig.ProcessKey.
type LeaderKeyResult struct {
	Kind   LeaderKeyResultKind
	Action LeaderAction
	Slot   int
}

// ProcessKey resolves one key press at the given path, per spec.md §4.5's
// leader-processing rules.
func (w WhichKeyConfig) ProcessKey(path []rune, key rune) LeaderKeyResult {
	commands, ok := w.CommandsAtPath(path)
	if !ok {
		return LeaderKeyResult{Kind: LeaderCancel}
	}
	cmd, ok := findCommand(commands, key)
	if !ok {
		return LeaderKeyResult{Kind: LeaderCancel}
	}
	if cmd.HasAction {
		return LeaderKeyResult{Kind: LeaderExecute, Action: cmd.Action, Slot: cmd.BookmarkSlot}
	}
	if cmd.IsSubmenu() {
		return LeaderKeyResult{Kind: LeaderSubmenu}
	}
	return LeaderKeyResult{Kind: LeaderCancel}
}

// SubmenuTitle renders the display title for the submenu at path, matching
// which_key.rs's submenu_title (capitalized label, or "Leader" at the root).
func (w WhichKeyConfig) SubmenuTitle(path []rune) string {
	if len(path) == 0 {
		return "Leader"
	}
	current := w.Commands
	title := ""
	for _, key := range path {
		cmd, ok := findCommand(current, key)
		if !ok {
			break
		}
		title = cmd.Label
		current = cmd.Subcommands
	}
	return capitalize(title)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
