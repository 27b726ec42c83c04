package model

import (
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// normalizePathCase cleans a path and, on Windows, lowercases it so two
// spellings of the same case-insensitive path land in the same GroupKey,
// generalizing the teacher's model.NormalizePathCase (there, used to
// compare worktree paths; here, to keep grouping stable across path
// spellings).
func normalizePathCase(path string) string {
	clean := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		return strings.ToLower(clean)
	}
	return clean
}

// ExtractGroupKey derives a GroupKey from a project path, mirroring
// grouping.rs's extract_group_key: a path containing a ".git" segment
// splits into repo_path (up to and including ".git") and branch (everything
// after); otherwise the path splits into parent-dir-name/project-name.
func ExtractGroupKey(projectPath string) GroupKey {
	projectPath = normalizePathCase(projectPath)
	if idx := strings.Index(projectPath, ".git/"); idx >= 0 {
		repoPath := projectPath[:idx+len(".git")]
		branch := projectPath[idx+len(".git/"):]
		if branch != "" {
			return GroupKey{Kind: GroupWorktree, RepoPath: repoPath, Branch: branch}
		}
	}

	trimmed := strings.TrimRight(projectPath, "/")
	lastSlash := strings.LastIndex(trimmed, "/")
	if lastSlash > 0 {
		parent := trimmed[:lastSlash]
		project := trimmed[lastSlash+1:]
		parentName := parent
		if idx := strings.LastIndex(parent, "/"); idx >= 0 {
			parentName = parent[idx+1:]
		}
		if parentName != "" && project != "" {
			return GroupKey{Kind: GroupDirectory, Parent: parentName, Project: project}
		}
	}

	return GroupKey{Kind: GroupUngrouped, Path: projectPath}
}

// GroupConversations buckets conversations by their project path's GroupKey,
// sorts groups descending by MaxTimestamp, and sorts conversations within
// each group descending by ModifiedAtMS. This is the full-reload ordering
// of spec.md §3 ("Groups are ordered by their most recent conversation
// timestamp on full reload"), grounded on
// `original_source/src/app/mod.rs`'s `load_conversations_full` (run on
// initial load and manual refresh).
func GroupConversations(conversations []*Conversation) []*ConversationGroup {
	byKey, order := bucketByGroupKey(conversations)

	groups := make([]*ConversationGroup, 0, len(order))
	for _, keyStr := range order {
		groups = append(groups, byKey[keyStr])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].MaxTimestamp() > groups[j].MaxTimestamp()
	})

	return groups
}

// GroupConversationsIncremental buckets conversations the same way
// GroupConversations does, but instead of re-sorting every group by
// recency, it preserves previous's group order and prepends any
// brand-new group (sorted by recency among themselves, same tie-break the
// full reload uses). This is spec.md §3's incremental-reload ordering rule
// ("they preserve previous positions with new groups prepended"), grounded
// on `original_source/src/app/mod.rs`'s `load_conversations_preserve_order`
// (run on watcher-triggered and unmatched-ephemeral-death reloads).
func GroupConversationsIncremental(conversations []*Conversation, previous []*ConversationGroup) []*ConversationGroup {
	byKey, order := bucketByGroupKey(conversations)

	seen := make(map[string]bool, len(previous))
	existing := make([]*ConversationGroup, 0, len(previous))
	for _, prev := range previous {
		keyStr := prev.Key.String()
		if group, ok := byKey[keyStr]; ok {
			existing = append(existing, group)
			seen[keyStr] = true
		}
	}

	var fresh []*ConversationGroup
	for _, keyStr := range order {
		if !seen[keyStr] {
			fresh = append(fresh, byKey[keyStr])
		}
	}
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].MaxTimestamp() > fresh[j].MaxTimestamp()
	})

	return append(fresh, existing...)
}

// bucketByGroupKey buckets conversations by GroupKey and sorts each
// resulting group's conversations descending by ModifiedAtMS, returning
// both the bucket map and the keys in first-encountered order (used as the
// recency tie-break both orderings share).
func bucketByGroupKey(conversations []*Conversation) (map[string]*ConversationGroup, []string) {
	byKey := make(map[string]*ConversationGroup)
	var order []string

	for _, c := range conversations {
		key := ExtractGroupKey(c.ProjectPath)
		keyStr := key.String()
		group, ok := byKey[keyStr]
		if !ok {
			group = &ConversationGroup{Key: key}
			byKey[keyStr] = group
			order = append(order, keyStr)
		}
		group.Conversations = append(group.Conversations, c)
	}

	for _, keyStr := range order {
		group := byKey[keyStr]
		sort.SliceStable(group.Conversations, func(i, j int) bool {
			return group.Conversations[i].ModifiedAtMS > group.Conversations[j].ModifiedAtMS
		})
	}

	return byKey, order
}
