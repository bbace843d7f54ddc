// Package vault adapts a directory tree to the collaborators the rule engine
// consumes.
//
// A Vault resolves slash-separated, vault-relative paths to entries through
// an afero filesystem. An Explorer renders those entries into a dom region the
// way a host file explorer would: one row per entry, the row's
// `tree-item-self` node carrying `data-path` and serving as render target for
// icons. A Watcher turns fsnotify events into create, delete and rename calls.
package vault
