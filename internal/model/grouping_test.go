package model

import "testing"

func TestExtractGroupKeyWorktree(t *testing.T) {
	key := ExtractGroupKey("/home/me/project/.git/worktrees/feature-x")
	if key.Kind != GroupWorktree {
		t.Fatalf("Kind = %v, want GroupWorktree", key.Kind)
	}
	if key.RepoPath != "/home/me/project/.git" {
		t.Fatalf("RepoPath = %q", key.RepoPath)
	}
	if key.Branch != "worktrees/feature-x" {
		t.Fatalf("Branch = %q", key.Branch)
	}
}

func TestExtractGroupKeyDirectory(t *testing.T) {
	key := ExtractGroupKey("/home/me/projects/widget")
	if key.Kind != GroupDirectory {
		t.Fatalf("Kind = %v, want GroupDirectory", key.Kind)
	}
	if key.Parent != "projects" || key.Project != "widget" {
		t.Fatalf("Parent=%q Project=%q", key.Parent, key.Project)
	}
}

func TestExtractGroupKeyUngroupedFallback(t *testing.T) {
	key := ExtractGroupKey("widget")
	if key.Kind != GroupUngrouped {
		t.Fatalf("Kind = %v, want GroupUngrouped", key.Kind)
	}
	if key.Path != "widget" {
		t.Fatalf("Path = %q", key.Path)
	}
}

func TestGroupConversationsOrdering(t *testing.T) {
	convs := []*Conversation{
		{SessionID: "a", ProjectPath: "/home/me/projects/old", ModifiedAtMS: 100},
		{SessionID: "b", ProjectPath: "/home/me/projects/new", ModifiedAtMS: 300},
		{SessionID: "c", ProjectPath: "/home/me/projects/new", ModifiedAtMS: 200},
	}

	groups := GroupConversations(convs)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups[0].DisplayName() != "new" {
		t.Fatalf("groups[0].DisplayName() = %q, want %q", groups[0].DisplayName(), "new")
	}
	if len(groups[0].Conversations) != 2 {
		t.Fatalf("len(groups[0].Conversations) = %d, want 2", len(groups[0].Conversations))
	}
	if groups[0].Conversations[0].SessionID != "b" {
		t.Fatalf("groups[0].Conversations[0].SessionID = %q, want %q", groups[0].Conversations[0].SessionID, "b")
	}
}

func TestGroupConversationsIncrementalPreservesOrderAndPrependsNewGroups(t *testing.T) {
	previous := GroupConversations([]*Conversation{
		{SessionID: "a", ProjectPath: "/home/me/projects/old", ModifiedAtMS: 100},
		{SessionID: "b", ProjectPath: "/home/me/projects/new", ModifiedAtMS: 300},
	})
	if previous[0].DisplayName() != "new" || previous[1].DisplayName() != "old" {
		t.Fatalf("unexpected initial order: %q, %q", previous[0].DisplayName(), previous[1].DisplayName())
	}

	// "old" receives a fresh message, which would bump it to the front on a
	// full reload; a brand-new project also appears.
	updated := []*Conversation{
		{SessionID: "a", ProjectPath: "/home/me/projects/old", ModifiedAtMS: 999},
		{SessionID: "b", ProjectPath: "/home/me/projects/new", ModifiedAtMS: 300},
		{SessionID: "c", ProjectPath: "/home/me/projects/fresh", ModifiedAtMS: 500},
	}

	groups := GroupConversationsIncremental(updated, previous)
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}
	if groups[0].DisplayName() != "fresh" {
		t.Fatalf("groups[0].DisplayName() = %q, want the new group prepended first", groups[0].DisplayName())
	}
	if groups[1].DisplayName() != "new" || groups[2].DisplayName() != "old" {
		t.Fatalf("existing groups did not preserve their previous order: %q, %q", groups[1].DisplayName(), groups[2].DisplayName())
	}
}

func TestGroupConversationsIncrementalDropsGroupsWithNoConversationsLeft(t *testing.T) {
	previous := GroupConversations([]*Conversation{
		{SessionID: "a", ProjectPath: "/home/me/projects/old", ModifiedAtMS: 100},
		{SessionID: "b", ProjectPath: "/home/me/projects/new", ModifiedAtMS: 300},
	})

	groups := GroupConversationsIncremental([]*Conversation{
		{SessionID: "b", ProjectPath: "/home/me/projects/new", ModifiedAtMS: 300},
	}, previous)

	if len(groups) != 1 || groups[0].DisplayName() != "new" {
		t.Fatalf("groups = %+v, want only %q", groups, "new")
	}
}
