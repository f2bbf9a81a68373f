package ui

import "github.com/dlukegordon/majjit/internal/cmdtree"

// Action is a jj operation reachable through the command trie.
type Action int

const (
	ActionNone Action = iota
	ActionNew
	ActionAbandon
	ActionUndo
	ActionEdit
	ActionDescribe
	ActionCommit
	ActionSquash
	ActionGitFetch
	ActionGitPush
	ActionBookmarkSetMaster
)

// interactive reports whether the action hands the terminal to jj.
func (a Action) interactive() bool {
	switch a {
	case ActionDescribe, ActionCommit, ActionSquash:
		return true
	}
	return false
}

func newCommandTrie() (*cmdtree.Trie[Action], error) {
	return cmdtree.New([]cmdtree.Binding[Action]{
		{Seq: []string{"n"}, Help: "new child change", Group: "Change", Action: ActionNew},
		{Seq: []string{"a"}, Help: "abandon change", Group: "Change", Action: ActionAbandon},
		{Seq: []string{"e"}, Help: "edit change", Group: "Change", Action: ActionEdit},
		{Seq: []string{"d"}, Help: "describe change", Group: "Change", Action: ActionDescribe},
		{Seq: []string{"c"}, Help: "commit working copy", Group: "Change", Action: ActionCommit},
		{Seq: []string{"s"}, Help: "squash into parent", Group: "Change", Action: ActionSquash},
		{Seq: []string{"u"}, Help: "undo last operation", Group: "Repo", Action: ActionUndo},
		{Seq: []string{"g", "f"}, Help: "git fetch", Group: "Git", Action: ActionGitFetch},
		{Seq: []string{"g", "p"}, Help: "git push", Group: "Git", Action: ActionGitPush},
		{Seq: []string{"b", "s", "m"}, Help: "set bookmark master here", Group: "Bookmark", Action: ActionBookmarkSetMaster},
	})
}
