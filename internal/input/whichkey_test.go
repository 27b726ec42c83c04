package input

import "testing"

func TestCommandsAtRootIncludesBookmarkAndSearchKeys(t *testing.T) {
	cfg := NewWhichKeyConfig()
	commands, ok := cfg.CommandsAtPath(nil)
	if !ok {
		t.Fatalf("root path should resolve")
	}
	if _, found := findCommand(commands, 'b'); !found {
		t.Fatalf("expected root command 'b' (bookmarks)")
	}
	if _, found := findCommand(commands, '/'); !found {
		t.Fatalf("expected root command '/' (search)")
	}
}

func TestCommandsAtBookmarkPathIncludesSlotAndMarkKeys(t *testing.T) {
	cfg := NewWhichKeyConfig()
	commands, ok := cfg.CommandsAtPath([]rune{'b'})
	if !ok {
		t.Fatalf("path [b] should resolve to the bookmarks submenu")
	}
	if _, found := findCommand(commands, '1'); !found {
		t.Fatalf("expected bookmark slot '1'")
	}
	if _, found := findCommand(commands, 'm'); !found {
		t.Fatalf("expected 'm' (mark submenu)")
	}
}

func TestProcessKeyExecutesBookmarkJumpForSlotKey(t *testing.T) {
	cfg := NewWhichKeyConfig()
	result := cfg.ProcessKey([]rune{'b'}, '1')
	if result.Kind != LeaderExecute || result.Action != ActionBookmarkJump || result.Slot != 1 {
		t.Fatalf("result = %+v, want Execute(BookmarkJump, slot=1)", result)
	}
}

func TestProcessKeyReturnsSubmenuForGroupKey(t *testing.T) {
	cfg := NewWhichKeyConfig()
	result := cfg.ProcessKey(nil, 'b')
	if result.Kind != LeaderSubmenu {
		t.Fatalf("result.Kind = %v, want LeaderSubmenu", result.Kind)
	}
}

func TestProcessKeyCancelsForUnboundKey(t *testing.T) {
	cfg := NewWhichKeyConfig()
	result := cfg.ProcessKey(nil, 'z')
	if result.Kind != LeaderCancel {
		t.Fatalf("result.Kind = %v, want LeaderCancel", result.Kind)
	}
}

func TestSubmenuTitleReturnsCorrectLabelForEachPath(t *testing.T) {
	cfg := NewWhichKeyConfig()
	if got := cfg.SubmenuTitle(nil); got != "Leader" {
		t.Fatalf("SubmenuTitle(nil) = %q, want Leader", got)
	}
	if got := cfg.SubmenuTitle([]rune{'b'}); got != "Bookmarks" {
		t.Fatalf("SubmenuTitle([b]) = %q, want Bookmarks", got)
	}
}

func TestBookmarkMarkAndDeleteSubmenusResolve(t *testing.T) {
	cfg := NewWhichKeyConfig()
	markResult := cfg.ProcessKey([]rune{'b', 'm'}, '5')
	if markResult.Kind != LeaderExecute || markResult.Action != ActionBookmarkSet || markResult.Slot != 5 {
		t.Fatalf("mark result = %+v, want Execute(BookmarkSet, slot=5)", markResult)
	}
	delResult := cfg.ProcessKey([]rune{'b', 'd'}, '9')
	if delResult.Kind != LeaderExecute || delResult.Action != ActionBookmarkDelete || delResult.Slot != 9 {
		t.Fatalf("delete result = %+v, want Execute(BookmarkDelete, slot=9)", delResult)
	}
}
