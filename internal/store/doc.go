// Package store provides SQLite-backed persistence for captures, drafts,
// cards, and study sessions. Consumers depend on their own narrow interfaces
// (declared next to the code that uses them), so this package only has to
// satisfy those capability contracts rather than export interfaces of its own.
package store
